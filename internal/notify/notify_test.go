package notify

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBus struct {
	method string
	args   []interface{}
	err    error
}

func (f *fakeBus) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.method = method
	f.args = args
	return &dbus.Call{Err: f.err}
}

func TestDBusNotifySendsFreedesktopCall(t *testing.T) {
	bus := &fakeBus{}
	closed := false
	n := NewDBus("PasswordHashTool", "dialog-password", 4000)
	n.connect = func() (caller, func() error, error) {
		return bus, func() error { closed = true; return nil }, nil
	}

	if err := n.Notify(context.Background(), "Hash copied", "Paste it where you need it."); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if bus.method != "org.freedesktop.Notifications.Notify" {
		t.Fatalf("unexpected method %q", bus.method)
	}
	if len(bus.args) != 8 {
		t.Fatalf("expected 8 arguments, got %d", len(bus.args))
	}
	if bus.args[0] != "PasswordHashTool" || bus.args[3] != "Hash copied" {
		t.Fatalf("unexpected arguments %v", bus.args)
	}
	if timeout, ok := bus.args[7].(int32); !ok || timeout != 4000 {
		t.Fatalf("expected int32 timeout 4000, got %#v", bus.args[7])
	}
	if !closed {
		t.Fatalf("expected connection to be closed")
	}
}

func TestDBusNotifyErrors(t *testing.T) {
	n := NewDBus("app", "", -1)
	n.connect = func() (caller, func() error, error) {
		return nil, nil, errors.New("no session bus")
	}
	if err := n.Notify(context.Background(), "s", "b"); err == nil {
		t.Fatalf("expected connect failure")
	}

	n.connect = func() (caller, func() error, error) {
		return &fakeBus{err: errors.New("service unknown")}, func() error { return nil }, nil
	}
	if err := n.Notify(context.Background(), "s", "b"); err == nil {
		t.Fatalf("expected call failure")
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Notify(context.Background(), "s", "b"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestNewDBusClampsTimeout(t *testing.T) {
	if n := NewDBus("app", "", math.MaxInt); n.timeout != math.MaxInt32 {
		t.Fatalf("expected clamp to MaxInt32, got %d", n.timeout)
	}
	if n := NewDBus("app", "", -5); n.timeout != -1 {
		t.Fatalf("expected clamp to -1, got %d", n.timeout)
	}
}
