package api

import (
	"context"
	"encoding/json"
)

// QAService covers campus questions and answers (/api/qa).
type QAService struct{ r Requester }

func (s *QAService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/qa/list", params)
}

func (s *QAService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/qa/"+seg(id), nil)
}

func (s *QAService) Publish(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/qa", body)
}

func (s *QAService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/qa/"+seg(id), nil)
}

func (s *QAService) Like(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/qa/"+seg(id)+"/like", nil)
}

func (s *QAService) Unlike(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/qa/"+seg(id)+"/like", nil)
}

func (s *QAService) Comments(ctx context.Context, id string, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/qa/"+seg(id)+"/comments", params)
}

func (s *QAService) Comment(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/qa/"+seg(id)+"/comments", body)
}

func (s *QAService) DeleteComment(ctx context.Context, qaID, commentID string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/qa/"+seg(qaID)+"/comments/"+seg(commentID), nil)
}
