// Package terminal saves the controlling tty's mode before the UI takes it
// over and puts it back on every way out of the process.
package terminal

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/atomicstack/pman/internal/apperr"
)

var (
	isTerminal = term.IsTerminal
	getState   = term.GetState
	restore    = term.Restore
	exit       = os.Exit
	notify     = signal.Notify
	stopNotify = signal.Stop
	after      = time.After

	output io.Writer = os.Stdout
)

// shutdownGrace is how long a signalled process waits for the UI's own
// shutdown before forcing the terminal back.
const shutdownGrace = 2 * time.Second

// resetScreen leaves the alternate screen and shows the cursor.
const resetScreen = ansi.ResetModeAltScreenSaveCursor + ansi.SetModeTextCursorEnable

// Guard holds a saved tty state. Release is idempotent.
type Guard struct {
	fd      int
	state   *term.State
	once    sync.Once
	err     error
	signals chan os.Signal
	done    chan struct{}
	stopped chan struct{}
}

// Acquire saves the state of fd and arranges for it to be restored when the
// process receives SIGINT, SIGTERM or SIGHUP. A non-terminal fd yields a
// guard whose Release does nothing.
func Acquire(fd int) (*Guard, error) {
	g := &Guard{fd: fd, done: make(chan struct{}), stopped: make(chan struct{})}
	if !isTerminal(fd) {
		close(g.done)
		close(g.stopped)
		return g, nil
	}
	state, err := getState(fd)
	if err != nil {
		return nil, apperr.Terminal(err)
	}
	g.state = state
	g.signals = make(chan os.Signal, 1)
	notify(g.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go g.watch()
	return g, nil
}

// watch waits for a signal. The UI listens for SIGINT and SIGTERM itself, so
// the guard only forces the terminal back if the UI has not released it
// within shutdownGrace.
func (g *Guard) watch() {
	defer close(g.stopped)
	select {
	case sig := <-g.signals:
		select {
		case <-g.done:
			return
		case <-after(shutdownGrace):
		}
		_ = g.abort()
		code := 1
		if s, ok := sig.(syscall.Signal); ok {
			code = 128 + int(s)
		}
		exit(code)
	case <-g.done:
	}
}

// abort is Release for abnormal exits, where the screen may still be in the
// UI's alternate buffer.
func (g *Guard) abort() error {
	select {
	case <-g.done:
		return g.err
	default:
	}
	if g.state != nil {
		_, _ = io.WriteString(output, resetScreen)
	}
	return g.Release()
}

// Release restores the saved state. Only the first call does any work.
func (g *Guard) Release() error {
	g.once.Do(func() {
		if g.state == nil {
			return
		}
		stopNotify(g.signals)
		close(g.done)
		if err := restore(g.fd, g.state); err != nil {
			g.err = apperr.Terminal(err)
		}
	})
	return g.err
}

// Recover is deferred around the UI: a panic restores the terminal before
// it keeps unwinding.
func (g *Guard) Recover() {
	if r := recover(); r != nil {
		_ = g.abort()
		panic(r)
	}
}
