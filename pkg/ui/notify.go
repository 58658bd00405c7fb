// Package ui holds the narrow ports the booking core uses to talk to the
// presentation layer. The core never renders anything itself; it emits
// toasts and asks yes/no questions through these interfaces.
package ui

import "time"

const (
	ToastSuccess = "success"
	ToastError   = "error"
)

type Toast struct {
	Type    string
	Title   string
	Message string
	// Dismiss is the auto-dismiss delay; zero means the renderer's default.
	Dismiss time.Duration
}

// Notifier receives user-facing notifications. Implementations must not
// block; the core calls this from the same goroutine that mutates state.
type Notifier interface {
	Notify(toast Toast)
}

// Confirmer asks the user a blocking yes/no question, used before
// destructive actions such as address deletion.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NopNotifier discards all toasts.
type NopNotifier struct{}

func (NopNotifier) Notify(Toast) {}

// StaticConfirmer always answers the same way. Useful as a default and in
// tests.
type StaticConfirmer bool

func (c StaticConfirmer) Confirm(string) bool { return bool(c) }
