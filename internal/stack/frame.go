package stack

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Frame represents a stack frame of the inspected program.
type Frame struct {
	// ID is the unique frame identifier.
	ID string

	// Function is the function name.
	Function string

	// File is the source file path.
	File string

	// Line is the current line in the source.
	Line int

	// Locals maps local variable names to their values.
	Locals map[string]any

	// Back is the calling frame (nil for the outermost frame).
	Back *Frame
}

// NewFrame creates a frame with a fresh identifier.
func NewFrame(function, file string, line int, locals map[string]any) *Frame {
	if locals == nil {
		locals = make(map[string]any)
	}
	return &Frame{
		ID:       uuid.NewString(),
		Function: function,
		File:     file,
		Line:     line,
		Locals:   locals,
	}
}

// FileName returns the base name of the source file, or empty string if unavailable.
func (f *Frame) FileName() string {
	if f.File == "" {
		return ""
	}
	return filepath.Base(f.File)
}

// CallStack represents the call stack of one thread of execution.
type CallStack struct {
	// ThreadID is the thread this call stack belongs to.
	ThreadID int

	// ThreadName is the name of the thread.
	ThreadName string

	// Frames are the stack frames in order (top of stack first).
	Frames []*Frame
}

// NewCallStack links the frames (top of stack first) through Back and
// returns the call stack.
func NewCallStack(threadID int, name string, frames []*Frame) *CallStack {
	for i := 0; i < len(frames)-1; i++ {
		frames[i].Back = frames[i+1]
	}
	if len(frames) > 0 {
		frames[len(frames)-1].Back = nil
	}
	return &CallStack{
		ThreadID:   threadID,
		ThreadName: name,
		Frames:     frames,
	}
}

// Top returns the innermost frame, or nil for an empty stack.
func (c *CallStack) Top() *Frame {
	if len(c.Frames) == 0 {
		return nil
	}
	return c.Frames[0]
}
