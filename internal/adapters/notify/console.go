// Package notify presents toasts, modals and loading indicators on a terminal.
package notify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
)

// ErrNoAnswer is returned when the input closes before the user answers a modal.
var ErrNoAnswer = errors.New("no answer")

// Console writes feedback to out and reads modal answers from in.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
	// assumeYes answers every modal with confirm without reading input.
	assumeYes bool

	// answers is fed by the single goroutine that owns in. A line read
	// while no modal is waiting is kept for the next one.
	readOnce sync.Once
	answers  chan answer
}

type answer struct {
	line string
	err  error
}

// Option applies a configuration option to the Console.
type Option func(*Console)

// WithAssumeYes confirms every modal.
func WithAssumeYes(yes bool) Option {
	return func(c *Console) { c.assumeYes = yes }
}

// NewConsole creates a notifier on the given streams. A nil in cancels every modal.
func NewConsole(out io.Writer, in io.Reader, opts ...Option) *Console {
	c := &Console{out: out}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Toast(_ context.Context, t request.Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, "! %s\n", t.Title)
}

// Modal prints the question and waits for y/n. The mutex is held while waiting
// so toasts from other calls do not interleave with the prompt.
func (c *Console) Modal(ctx context.Context, m request.Modal) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintf(c.out, "== %s ==\n%s\n", m.Title, m.Content)
	if c.assumeYes {
		_, _ = fmt.Fprintf(c.out, "[%s]\n", m.ConfirmText)
		return true, nil
	}
	if c.in == nil {
		return false, nil
	}
	_, _ = fmt.Fprintf(c.out, "%s (y) / %s (n): ", m.ConfirmText, m.CancelText)

	c.readOnce.Do(c.startReader)

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a, ok := <-c.answers:
		if !ok {
			return false, fmt.Errorf("%w: %w", ErrNoAnswer, io.EOF)
		}
		if a.err != nil && strings.TrimSpace(a.line) == "" {
			return false, fmt.Errorf("%w: %w", ErrNoAnswer, a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes", "ok":
			return true, nil
		default:
			return false, nil
		}
	}
}

// startReader reads lines from in until it fails. The channel is closed
// after the failing read has been delivered.
func (c *Console) startReader() {
	c.answers = make(chan answer)
	go func() {
		defer close(c.answers)
		for {
			line, err := c.in.ReadString('\n')
			c.answers <- answer{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

func (c *Console) Loading(_ context.Context, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, "... %s\n", title)
}

func (c *Console) HideLoading(context.Context) {}
