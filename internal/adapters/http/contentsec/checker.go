package contentsec

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// Fetcher sends a call without envelope handling. request.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, method, url string, body any, opts ...request.CallOption) (int, []byte, error)
}

// Checker runs content security checks.
type Checker struct {
	f        Fetcher
	notifier request.Notifier
	tr       *i18n.Translator
	log      logger.Logger
	metrics  *metrics.Manager
}

// Option applies a configuration option to the Checker.
type Option func(*Checker)

// WithNotifier sets where Show presents results.
func WithNotifier(n request.Notifier) Option {
	return func(c *Checker) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithTranslator sets the language of result messages.
func WithTranslator(t *i18n.Translator) Option {
	return func(c *Checker) {
		if t != nil {
			c.tr = t
		}
	}
}

// WithLogger sets the checker logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Checker) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a checker sending through f.
func New(f Fetcher, opts ...Option) *Checker {
	c := &Checker{
		f:        f,
		notifier: request.NopNotifier(),
		tr:       i18n.English(),
		metrics:  metrics.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("contentsec")
	}
	return c
}

// Validate checks a request before it is sent.
func Validate(req Request) error {
	if req.Content == "" {
		return ErrEmptyContent
	}
	if !req.Scene.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidScene, req.Scene)
	}
	if utf8.RuneCountInString(req.Content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// CheckText validates req and asks the backend for a verdict. Invalid input
// is returned as an error; every other failure yields an unsuccessful Result
// that needs review.
func (c *Checker) CheckText(ctx context.Context, req Request) (Result, error) {
	if err := Validate(req); err != nil {
		return Result{}, err
	}

	status, body, err := c.f.Fetch(ctx, http.MethodPost, CheckPath, req, request.Silent())
	if err != nil {
		return c.failed(ctx, err.Error()), nil
	}
	if status != http.StatusOK {
		return c.failed(ctx, fmt.Sprintf("status %d", status)), nil
	}

	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return c.failed(ctx, "decode: "+err.Error()), nil
	}
	if resp.ErrCode != 0 {
		msg := resp.ErrMsg
		if msg == "" {
			msg = c.tr.Sprintf(i18n.CheckUnavailable)
		}
		return c.failed(ctx, msg), nil
	}
	if resp.Result == nil {
		return c.failed(ctx, "missing result"), nil
	}

	c.metrics.RecordContentCheck(string(resp.Result.Suggest))
	return Result{
		Success:    true,
		Suggest:    resp.Result.Suggest,
		Label:      resp.Result.Label,
		LabelDesc:  c.tr.Sprintf(resp.Result.Label.Desc()),
		Detail:     resp.Detail,
		TraceID:    resp.TraceID,
		IsPassed:   resp.Result.Suggest == SuggestPass,
		NeedReview: resp.Result.Suggest == SuggestReview,
		IsRisky:    resp.Result.Suggest == SuggestRisky,
	}, nil
}

// failed blocks publication until a human has looked at the text.
func (c *Checker) failed(ctx context.Context, reason string) Result {
	c.log.Warn(ctx, "content check failed", logger.String("reason", reason))
	c.metrics.RecordContentCheck("error")
	return Result{Success: false, Error: reason, IsPassed: false, NeedReview: true, IsRisky: false}
}

// joinNonEmpty joins the non-empty parts with newlines.
func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// CheckLostFound screens a lost-and-found notice.
func (c *Checker) CheckLostFound(ctx context.Context, title, content, contactInfo string) (Result, error) {
	return c.CheckText(ctx, Request{
		Content: joinNonEmpty(title, content, contactInfo),
		Scene:   SceneForum,
		Title:   title,
	})
}

// CheckPost screens a community post.
func (c *Checker) CheckPost(ctx context.Context, title, content string) (Result, error) {
	return c.CheckText(ctx, Request{
		Content: joinNonEmpty(title, content),
		Scene:   SceneForum,
		Title:   title,
	})
}

// CheckComment screens a comment.
func (c *Checker) CheckComment(ctx context.Context, content, nickname string) (Result, error) {
	return c.CheckText(ctx, Request{Content: content, Scene: SceneComment, Nickname: nickname})
}

// Batch checks all requests concurrently and returns results in input order.
// The first validation error aborts the batch.
func (c *Checker) Batch(ctx context.Context, reqs []Request) ([]Result, error) {
	if len(reqs) == 0 {
		return []Result{}, nil
	}
	for i, r := range reqs {
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	out := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range reqs {
		g.Go(func() error {
			res, err := c.CheckText(gctx, r)
			out[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ShowMessages override the texts used by Show.
type ShowMessages struct {
	Pass   string
	Review string
	Risky  string
}

// Show presents a result: a toast on pass or failure, a modal on review or risk.
func (c *Checker) Show(ctx context.Context, res Result, msgs ShowMessages) {
	if msgs.Pass == "" {
		msgs.Pass = c.tr.Sprintf(i18n.CheckPassed)
	}
	if msgs.Review == "" {
		msgs.Review = c.tr.Sprintf(i18n.CheckReview)
	}
	if msgs.Risky == "" {
		msgs.Risky = c.tr.Sprintf(i18n.CheckRisky)
	}

	switch {
	case !res.Success:
		title := res.Error
		if title == "" {
			title = c.tr.Sprintf(i18n.CheckUnavailable)
		}
		c.notifier.Toast(ctx, request.Toast{Title: title})
	case res.IsPassed:
		c.notifier.Toast(ctx, request.Toast{Title: msgs.Pass})
	case res.NeedReview:
		c.alert(ctx, c.tr.Sprintf(i18n.CheckNoticeTitle), msgs.Review)
	case res.IsRisky:
		c.alert(ctx, c.tr.Sprintf(i18n.CheckRiskyTitle), c.tr.Sprintf(i18n.CheckViolation, msgs.Risky, res.LabelDesc))
	}
}

// alert shows a modal with only a confirm button.
func (c *Checker) alert(ctx context.Context, title, content string) {
	if _, err := c.notifier.Modal(ctx, request.Modal{Title: title, Content: content, ConfirmText: c.tr.Sprintf(i18n.ModalOK)}); err != nil {
		c.log.Warn(ctx, "content check modal failed", logger.Error(err))
	}
}
