package request

import (
	"context"
	"time"
)

// ToastDuration is the display time used for business error toasts.
const ToastDuration = 5 * time.Second

// Toast is a short, non-blocking message.
type Toast struct {
	Title    string
	Duration time.Duration
}

// Modal is a blocking question with confirm and cancel buttons.
type Modal struct {
	Title       string
	Content     string
	ConfirmText string
	CancelText  string
}

// Notifier presents feedback to the user.
type Notifier interface {
	Toast(ctx context.Context, t Toast)
	// Modal blocks until the user answers. confirmed is false on cancel.
	Modal(ctx context.Context, m Modal) (confirmed bool, err error)
	Loading(ctx context.Context, title string)
	HideLoading(ctx context.Context)
}

// LoginHandler runs after the user agrees to log in again.
type LoginHandler func(ctx context.Context)

type nopNotifier struct{}

func (nopNotifier) Toast(context.Context, Toast)               {}
func (nopNotifier) Modal(context.Context, Modal) (bool, error) { return false, nil }
func (nopNotifier) Loading(context.Context, string)            {}
func (nopNotifier) HideLoading(context.Context)                {}

// NopNotifier discards everything and cancels every modal.
func NopNotifier() Notifier { return nopNotifier{} }
