package api

import (
	"context"
	"encoding/json"
)

// CheckinService covers check-in tasks (/edu/task) and records (/edu/record).
type CheckinService struct{ r Requester }

// CurrentTask returns the task open right now, if any.
func (s *CheckinService) CurrentTask(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/task/current", nil)
}

// ValidateLocation asks the backend whether a position is inside the task fence.
func (s *CheckinService) ValidateLocation(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/task/validateLocation", body)
}

func (s *CheckinService) Tasks(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/task/list", params)
}

func (s *CheckinService) TaskDetail(ctx context.Context, taskID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/task/"+seg(taskID), nil)
}

func (s *CheckinService) CreateTask(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/task", body)
}

func (s *CheckinService) UpdateTask(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/edu/task", body)
}

func (s *CheckinService) DeleteTasks(ctx context.Context, taskIDs ...string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/edu/task/"+ids(taskIDs), nil)
}

func (s *CheckinService) Submit(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/record/submit", body)
}

func (s *CheckinService) MyRecords(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/record/myRecords", params)
}

func (s *CheckinService) Records(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/record/list", params)
}

func (s *CheckinService) RecordDetail(ctx context.Context, recordID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/record/"+seg(recordID), nil)
}

func (s *CheckinService) Statistics(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/record/statistics", params)
}

func (s *CheckinService) DeleteRecords(ctx context.Context, recordIDs ...string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/edu/record/"+ids(recordIDs), nil)
}
