package luahost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/varwire/internal/dump"
	"github.com/dshills/varwire/internal/logging"
	"github.com/dshills/varwire/internal/registry"
)

// DefaultExecutionTimeout bounds a single DoFile or DoString call.
const DefaultExecutionTimeout = 5 * time.Second

// Output formats.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

// State wraps a gopher-lua state with the dump builtins installed.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	dumper           *dump.Dumper
	out              io.Writer
	format           string
	logger           *zap.Logger

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the execution timeout for Lua calls. Zero
// disables the timeout.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.executionTimeout = d
		}
	}
}

// WithDumper sets the dumper used by the builtins. The default classifies
// with the Lua host table.
func WithDumper(d *dump.Dumper) StateOption {
	return func(s *State) {
		if d != nil {
			s.dumper = d
		}
	}
}

// WithOutput sets where dump output is written. The default is stdout.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.out = w
		}
	}
}

// WithFormat selects FormatXML or FormatJSON output.
func WithFormat(format string) StateOption {
	return func(s *State) {
		s.format = strings.ToLower(format)
	}
}

// WithLogger sets the logger for write failures.
func WithLogger(l *zap.Logger) StateOption {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
		out:              os.Stdout,
		format:           FormatXML,
		logger:           logging.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.format != FormatXML && s.format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, s.format)
	}
	if s.dumper == nil {
		s.dumper = dump.New(
			dump.WithClassifier(registry.New(registry.HostLua)),
			dump.WithSink(logging.NewZapSink(s.logger)),
		)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	installSandbox(s.L)
	s.installBuiltins()

	return s, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package.
}

// installSandbox removes the base functions that load code from outside
// the script.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile executes a Lua file. Execution is synchronous.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua string. Execution is synchronous.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error {
		return s.L.DoString(code)
	})
}

// SetArgs exposes args to the script as the global table arg.
func (s *State) SetArgs(args []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.L.NewTable()
	for i, a := range args {
		t.RawSetInt(i+1, lua.LString(a))
	}
	s.L.SetGlobal("arg", t)
}

func (s *State) run(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := doWithRecovery(fn)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// doWithRecovery executes a function with panic recovery.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// GetGlobal returns a global variable.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close closes the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// write sends dump output to the configured writer.
func (s *State) write(text string) {
	if text == "" {
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(s.out, text); err != nil {
		s.logger.Warn("writing dump output failed", zap.Error(err))
	}
}
