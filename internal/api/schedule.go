package api

import (
	"context"
	"encoding/json"
)

// ScheduleService covers /edu/schedule.
type ScheduleService struct{ crud }

func newScheduleService(r Requester) *ScheduleService {
	return &ScheduleService{crud{r: r, base: "/edu/schedule"}}
}

// Get returns the timetable shown in the mini-program.
func (s *ScheduleService) Get(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/schedule/miniprogram", params)
}

func (s *ScheduleService) CurrentWeek(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/schedule/currentWeek", params)
}

func (s *ScheduleService) NextCourse(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/schedule/nextCourse", nil)
}
