package terminal

import (
	"bytes"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/atomicstack/pman/internal/apperr"
)

type stubs struct {
	restored int
	exitCode chan int
	signals  chan<- os.Signal
	grace    chan time.Time
	out      *bytes.Buffer
}

func stubTerminal(t *testing.T, tty bool) *stubs {
	t.Helper()
	s := &stubs{exitCode: make(chan int, 1), grace: make(chan time.Time, 1), out: &bytes.Buffer{}}
	prevIs, prevGet, prevRestore, prevExit := isTerminal, getState, restore, exit
	prevNotify, prevStop, prevAfter, prevOutput := notify, stopNotify, after, output
	isTerminal = func(int) bool { return tty }
	getState = func(int) (*term.State, error) { return &term.State{}, nil }
	restore = func(int, *term.State) error {
		s.restored++
		return nil
	}
	exit = func(code int) { s.exitCode <- code }
	notify = func(c chan<- os.Signal, _ ...os.Signal) { s.signals = c }
	stopNotify = func(chan<- os.Signal) {}
	after = func(time.Duration) <-chan time.Time { return s.grace }
	output = s.out
	t.Cleanup(func() {
		isTerminal, getState, restore, exit = prevIs, prevGet, prevRestore, prevExit
		notify, stopNotify, after, output = prevNotify, prevStop, prevAfter, prevOutput
	})
	return s
}

func TestReleaseRestoresOnce(t *testing.T) {
	s := stubTerminal(t, true)
	g, err := Acquire(0)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	_ = g.Release()
	if s.restored != 1 {
		t.Fatalf("expected one restore, got %d", s.restored)
	}
}

func TestNonTerminalIsNoop(t *testing.T) {
	s := stubTerminal(t, false)
	g, err := Acquire(0)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := g.Release(); err != nil || s.restored != 0 {
		t.Fatalf("expected no restore, got %d (%v)", s.restored, err)
	}
}

func TestAcquireFailure(t *testing.T) {
	stubTerminal(t, true)
	getState = func(int) (*term.State, error) { return nil, errors.New("ioctl") }
	if _, err := Acquire(0); apperr.KindOf(err) != apperr.KindTerminal {
		t.Fatalf("expected terminal error, got %v", err)
	}
}

func TestRecoverRestoresAndRepanics(t *testing.T) {
	s := stubTerminal(t, true)
	g, err := Acquire(0)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected panic to propagate, got %v", r)
		}
		if s.restored != 1 {
			t.Fatalf("expected restore on panic, got %d", s.restored)
		}
		if !bytes.Contains(s.out.Bytes(), []byte(ansi.ResetModeAltScreenSaveCursor)) {
			t.Fatalf("expected alt screen exit on panic, got %q", s.out.String())
		}
	}()
	func() {
		defer g.Recover()
		panic("boom")
	}()
}

func TestSignalForcesResetAfterGrace(t *testing.T) {
	s := stubTerminal(t, true)
	if _, err := Acquire(0); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	s.signals <- syscall.SIGTERM
	s.grace <- time.Now()
	if code := <-s.exitCode; code != 128+int(syscall.SIGTERM) {
		t.Fatalf("unexpected exit code %d", code)
	}
	if s.restored != 1 {
		t.Fatalf("expected restore before exit, got %d", s.restored)
	}
	want := ansi.ResetModeAltScreenSaveCursor + ansi.SetModeTextCursorEnable
	if s.out.String() != want {
		t.Fatalf("expected %q written before exit, got %q", want, s.out.String())
	}
}

func TestSignalDefersToOrderlyShutdown(t *testing.T) {
	s := stubTerminal(t, true)
	g, err := Acquire(0)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	s.signals <- syscall.SIGTERM
	if err := g.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	<-g.stopped
	select {
	case code := <-s.exitCode:
		t.Fatalf("unexpected forced exit %d", code)
	default:
	}
	if s.restored != 1 || s.out.Len() != 0 {
		t.Fatalf("expected plain restore, got restored=%d out=%q", s.restored, s.out.String())
	}
}
