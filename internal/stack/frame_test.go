package stack

import "testing"

func TestNewFrame(t *testing.T) {
	f := NewFrame("main.run", "/src/app/main.go", 12, nil)

	if f.ID == "" {
		t.Error("ID should be set")
	}
	if f.Locals == nil {
		t.Error("Locals should not be nil")
	}
	if other := NewFrame("main.run", "/src/app/main.go", 12, nil); other.ID == f.ID {
		t.Errorf("frames share ID %q", f.ID)
	}
}

func TestFrame_FileName(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected string
	}{
		{"with file", "/src/app/main.lua", "main.lua"},
		{"no file", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Frame{File: tt.file}
			if got := f.FileName(); got != tt.expected {
				t.Errorf("FileName() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestNewCallStack(t *testing.T) {
	frames := []*Frame{
		NewFrame("inner", "a.lua", 3, map[string]any{"x": 1}),
		NewFrame("middle", "a.lua", 9, nil),
		NewFrame("outer", "a.lua", 20, nil),
	}
	frames[2].Back = frames[0]

	cs := NewCallStack(1, "main", frames)

	if cs.Top() != frames[0] {
		t.Error("Top() should be the first frame")
	}
	if frames[0].Back != frames[1] || frames[1].Back != frames[2] {
		t.Error("frames not linked through Back")
	}
	if frames[2].Back != nil {
		t.Error("outermost frame should have no Back")
	}
	if cs.ThreadID != 1 || cs.ThreadName != "main" {
		t.Errorf("thread = %d/%q", cs.ThreadID, cs.ThreadName)
	}
}

func TestCallStack_Empty(t *testing.T) {
	cs := NewCallStack(0, "main", nil)
	if cs.Top() != nil {
		t.Error("Top() of empty stack should be nil")
	}
}
