package mock

import "github.com/fwojciec/diffreview"

// Compile-time interface verification.
var _ diffreview.WidgetProvider = (*WidgetProvider)(nil)

// WidgetProvider is a mock implementation of diffreview.WidgetProvider.
type WidgetProvider struct {
	WidgetsFn func(newPath, fromVersion, toVersion string) map[string]string
}

func (w *WidgetProvider) Widgets(newPath, fromVersion, toVersion string) map[string]string {
	return w.WidgetsFn(newPath, fromVersion, toVersion)
}
