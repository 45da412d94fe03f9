package api

import (
	"context"
	"encoding/json"
)

// FeedbackService covers /edu/feedback.
type FeedbackService struct{ crud }

func newFeedbackService(r Requester) *FeedbackService {
	return &FeedbackService{crud{r: r, base: "/edu/feedback"}}
}

func (s *FeedbackService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/feedback/miniprogram", params)
}

func (s *FeedbackService) Submit(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/feedback/submit", body)
}

// Append adds a follow-up note to an open feedback.
func (s *FeedbackService) Append(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/feedback/append", body)
}

func (s *FeedbackService) Withdraw(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/feedback/withdraw", body)
}

func (s *FeedbackService) Progress(ctx context.Context, feedbackID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/feedback/progress/"+seg(feedbackID), nil)
}

func (s *FeedbackService) StatusMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/feedback/status/map", nil)
}

// LostFoundService covers /edu/found.
type LostFoundService struct{ crud }

func newLostFoundService(r Requester) *LostFoundService {
	return &LostFoundService{crud{r: r, base: "/edu/found"}}
}

func (s *LostFoundService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/found/miniprogram", params)
}

func (s *LostFoundService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/found/detail/"+seg(id), nil)
}

func (s *LostFoundService) Submit(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/found/submit", body)
}

func (s *LostFoundService) MarkResolved(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/found/markResolved", body)
}

func (s *LostFoundService) TagsMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/found/tags/map", nil)
}
