package notify

import (
	"context"
	"fmt"
	"math"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Notifier shows a short message to the user outside the terminal.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }

type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBus sends notifications over the freedesktop session bus.
type DBus struct {
	appName string
	icon    string
	timeout int32
	connect func() (caller, func() error, error)
}

// NewDBus returns a notifier that connects to the session bus per message.
// timeoutMs of -1 lets the notification server decide. Values outside the
// int32 range the bus carries are clamped.
func NewDBus(appName, icon string, timeoutMs int) *DBus {
	switch {
	case timeoutMs > math.MaxInt32:
		timeoutMs = math.MaxInt32
	case timeoutMs < -1:
		timeoutMs = -1
	}
	return &DBus{
		appName: appName,
		icon:    icon,
		timeout: int32(timeoutMs),
		connect: sessionBus,
	}
}

func sessionBus() (caller, func() error, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, nil, fmt.Errorf("session bus: %w", err)
	}
	return conn.Object(notifyDest, notifyPath), conn.Close, nil
}

// Notify posts summary and body as a desktop notification.
func (n *DBus) Notify(ctx context.Context, summary, body string) error {
	obj, closeFn, err := n.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	call := obj.CallWithContext(ctx, notifyMethod, 0,
		n.appName,
		uint32(0),
		n.icon,
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		n.timeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}
