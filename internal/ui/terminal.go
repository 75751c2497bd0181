// Package ui renders user-facing notifications on a terminal.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/oshokin/admin-client/internal/request"
)

// Terminal implements request.Notifier on a reader/writer pair.
type Terminal struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewTerminal creates and returns a new Terminal.
// With assumeYes every confirmation is accepted without reading in.
func NewTerminal(in io.Reader, out io.Writer, assumeYes bool) *Terminal {
	return &Terminal{
		in:        bufio.NewReader(in),
		out:       out,
		assumeYes: assumeYes,
	}
}

// Message prints msg tagged with its type.
func (t *Terminal) Message(_ context.Context, msg request.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "[%s] %s\n", strings.ToUpper(string(msg.Type)), msg.Text) //nolint:errcheck // Best effort.
}

// Confirm prints dialog and reads the answer from a single line.
// An empty answer or end of input declines.
func (t *Terminal) Confirm(ctx context.Context, dialog request.ConfirmDialog) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(t.out, "%s\n%s\n[%s/%s]: ", //nolint:errcheck // Best effort.
		dialog.Title, dialog.Text, dialog.ConfirmLabel, dialog.CancelLabel)

	if t.assumeYes {
		fmt.Fprintln(t.out, dialog.ConfirmLabel) //nolint:errcheck // Best effort.

		return true, nil
	}

	answer, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return isAccepted(answer, dialog.ConfirmLabel), nil
}

func isAccepted(answer, confirmLabel string) bool {
	answer = strings.TrimSpace(answer)

	switch {
	case answer == "":
		return false
	case strings.EqualFold(answer, "y"), strings.EqualFold(answer, "yes"):
		return true
	default:
		return strings.EqualFold(answer, confirmLabel)
	}
}
