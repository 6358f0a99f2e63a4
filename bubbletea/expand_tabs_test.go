package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/diffreview/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	spaces := func(n int) string { return strings.Repeat(" ", n) }

	tests := []struct {
		name string
		in   string
		col  int
		want string
	}{
		{"leaves text without tabs alone", "x := 1", 0, "x := 1"},
		{"expands a leading tab to the first stop", "\treturn", 0, spaces(8) + "return"},
		{"expands nested indentation", "\t\t}", 0, spaces(16) + "}"},
		{"aligns a tab after text", "case\t1", 0, "case" + spaces(4) + "1"},
		{"moves a tab on a stop to the next stop", "abcdefgh\t", 0, "abcdefgh" + spaces(8)},
		{"continues from the column of a previous token", "\tx", 5, spaces(3) + "x"},
		{"counts wide characters as two columns", "日本\t", 0, "日本" + spaces(4)},
		{"handles an empty token", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bubbletea.ExpandTabs(tt.in, tt.col))
		})
	}
}
