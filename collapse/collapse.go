// Package collapse decides whether each file of a diff is shown expanded or
// collapsed.
//
// A file starts without a preference and follows a derived default. It
// adopts an explicit state when the user toggles it, when a collapse-all or
// expand-all broadcast disagrees with what it currently shows, or when it is
// first marked completed. Every transition is computed once, when its event
// happens.
package collapse

import "github.com/fwojciec/diffreview"

// maxExpandedHunks is the largest hunk count a file may have and still be
// expanded by default.
const maxExpandedHunks = 5

// State is the stored collapse preference of a file.
type State int

const (
	// Unset means the file follows its derived default.
	Unset State = iota
	Expanded
	Collapsed
)

func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case Expanded:
		return "expanded"
	case Collapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Signal is the value of the session-wide broadcast slot.
type Signal int

const (
	// SignalUnset means no broadcast is in effect.
	SignalUnset Signal = iota
	SignalCollapsed
	SignalExpanded
)

// SignalFor returns the broadcast that collapses or expands every file.
func SignalFor(collapsed bool) Signal {
	if collapsed {
		return SignalCollapsed
	}
	return SignalExpanded
}

// DefaultCollapsed reports whether a file is collapsed when no preference
// exists: deleted files and files with more than five hunks are.
func DefaultCollapsed(op diffreview.FileOp, hunkCount int) bool {
	return op == diffreview.FileDeleted || hunkCount > maxExpandedHunks
}

// File is the collapse state of one file.
type File struct {
	state     State
	op        diffreview.FileOp
	hunkCount int
	completed bool
}

// NewFile returns the state of a file with no preference.
func NewFile(op diffreview.FileOp, hunkCount int) *File {
	return &File{
		op:        op,
		hunkCount: hunkCount,
	}
}

// State returns the stored preference.
func (f *File) State() State {
	return f.state
}

// Collapsed returns the effective collapse value used for rendering.
func (f *File) Collapsed() bool {
	switch f.state {
	case Expanded:
		return false
	case Collapsed:
		return true
	default:
		return DefaultCollapsed(f.op, f.hunkCount)
	}
}

// Completed reports whether the file is marked completed.
func (f *File) Completed() bool {
	return f.completed
}

// Observe adopts a broadcast that disagrees with the effective value.
// It reports whether the file changed.
func (f *File) Observe(sig Signal) bool {
	if sig == SignalUnset {
		return false
	}
	collapsed := sig == SignalCollapsed
	if collapsed == f.Collapsed() {
		return false
	}
	f.set(collapsed)
	return true
}

// Complete records the completion flag. When a broadcast is in effect it is
// observed instead of auto-collapsing. Otherwise a file that becomes
// completed without a preference collapses.
func (f *File) Complete(done bool, sig Signal) {
	wasCompleted := f.completed
	f.completed = done

	if sig != SignalUnset {
		f.Observe(sig)
		return
	}
	if done && !wasCompleted && f.state == Unset {
		f.state = Collapsed
	}
}

// Toggle flips the file to the opposite of its effective value.
func (f *File) Toggle() {
	f.set(!f.Collapsed())
}

func (f *File) set(collapsed bool) {
	if collapsed {
		f.state = Collapsed
	} else {
		f.state = Expanded
	}
}

// Session holds the collapse state of every file of a diff and the single
// broadcast slot shared by them.
type Session struct {
	signal Signal
	files  []*File
}

// NewSession creates a session over files with an empty broadcast slot.
func NewSession(files []*File) *Session {
	return &Session{files: files}
}

// ForDiff creates a session with one file per file of diff.
func ForDiff(diff *diffreview.Diff) *Session {
	if diff == nil {
		return NewSession(nil)
	}
	files := make([]*File, len(diff.Files))
	for i, fd := range diff.Files {
		files[i] = NewFile(fd.Operation, len(fd.Hunks))
	}
	return NewSession(files)
}

// Signal returns the current broadcast.
func (s *Session) Signal() Signal {
	return s.signal
}

// Len returns the number of files.
func (s *Session) Len() int {
	return len(s.files)
}

// File returns the state of file i.
func (s *Session) File(i int) *File {
	return s.files[i]
}

// Collapsed returns the effective collapse value of file i.
func (s *Session) Collapsed(i int) bool {
	return s.files[i].Collapsed()
}

// Broadcast writes sig to the slot and delivers it to every file.
func (s *Session) Broadcast(sig Signal) {
	s.signal = sig
	for _, f := range s.files {
		f.Observe(sig)
	}
}

// Toggle handles the collapse control of file i. With allFiles set, it
// broadcasts the opposite of file i's effective value to every file.
// Otherwise it clears the broadcast and flips only file i.
func (s *Session) Toggle(i int, allFiles bool) {
	if i < 0 || i >= len(s.files) {
		return
	}
	if allFiles {
		s.Broadcast(SignalFor(!s.files[i].Collapsed()))
		return
	}
	s.signal = SignalUnset
	s.files[i].Toggle()
}

// Complete sets the completion flag of file i.
func (s *Session) Complete(i int, done bool) {
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files[i].Complete(done, s.signal)
}
