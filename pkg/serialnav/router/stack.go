package router

import "github.com/BrandonKowalski/serialnav/pkg/serialnav"

// StackEntry represents a single entry in a navigation stack.
// It stores the controller and any resume state the screen left behind
// (scroll position, selected index) for when it becomes visible again.
type StackEntry struct {
	Controller *serialnav.Controller
	Resume     any
}

// Stack is one navigation stack: the root stack, or the stack opened by a
// presented controller.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a stack holding root.
func NewStack(root *serialnav.Controller) *Stack {
	s := &Stack{entries: make([]StackEntry, 0, 4)}
	if root != nil {
		s.Push(root, nil)
	}
	return s
}

// Push adds a new entry to the stack.
func (s *Stack) Push(c *serialnav.Controller, resume any) {
	s.entries = append(s.entries, StackEntry{
		Controller: c,
		Resume:     resume,
	})
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if s.IsEmpty() {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if s.IsEmpty() {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// IndexOf returns the position of c counted from the root, or -1.
func (s *Stack) IndexOf(c *serialnav.Controller) int {
	for i, e := range s.entries {
		if e.Controller == c {
			return i
		}
	}
	return -1
}

// Entry returns the entry for c, or nil.
func (s *Stack) Entry(c *serialnav.Controller) *StackEntry {
	if i := s.IndexOf(c); i >= 0 {
		return &s.entries[i]
	}
	return nil
}

// Truncate pops down to the first n entries and returns the removed ones, top first.
func (s *Stack) Truncate(n int) []StackEntry {
	var removed []StackEntry
	for s.Len() > max(n, 0) {
		removed = append(removed, *s.Pop())
	}
	return removed
}

// Controllers returns the controllers root first.
func (s *Stack) Controllers() []*serialnav.Controller {
	out := make([]*serialnav.Controller, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Controller
	}
	return out
}

