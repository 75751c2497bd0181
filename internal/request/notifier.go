package request

//go:generate $MOCKGEN -source=notifier.go -destination=mocks/notifier_mock.go

import (
	"context"
	"time"
)

// MessageType is the severity of a user-facing message.
type MessageType string

// Message types understood by notifiers.
const (
	MessageTypeSuccess MessageType = "success"
	MessageTypeInfo    MessageType = "info"
	MessageTypeWarning MessageType = "warning"
	MessageTypeError   MessageType = "error"
)

// MessageDuration is how long a transient error message stays visible.
const MessageDuration = 5 * time.Second

// Message is a transient user-facing notification.
type Message struct {
	Text     string
	Type     MessageType
	Duration time.Duration
}

// ConfirmDialog is a blocking question with two answers.
type ConfirmDialog struct {
	Title        string
	Text         string
	ConfirmLabel string
	CancelLabel  string
	Type         MessageType
}

// forcedLogoutDialog is shown when the backend reports the session is gone.
//
//nolint:gochecknoglobals // Immutable dialog template.
var forcedLogoutDialog = ConfirmDialog{
	Title:        "Confirm logout",
	Text:         "You have been logged out, you can cancel to stay on this page, or log in again",
	ConfirmLabel: "Re-Login",
	CancelLabel:  "Cancel",
	Type:         MessageTypeWarning,
}

// Notifier displays messages to the user.
type Notifier interface {
	// Message shows a transient notification.
	Message(ctx context.Context, msg Message)
	// Confirm shows a blocking dialog and reports whether the user accepted it.
	Confirm(ctx context.Context, dialog ConfirmDialog) (bool, error)
}

// SessionHandler owns the local session state.
type SessionHandler interface {
	// ResetToken forgets the session token.
	ResetToken(ctx context.Context) error
	// Reload restarts the application state after a reset.
	Reload(ctx context.Context) error
}
