package api

import (
	"context"
	"encoding/json"
)

// ActivityService covers /edu/activity and /edu/participant.
type ActivityService struct{ r Requester }

// List returns the mini-program activity feed.
func (s *ActivityService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/activity/miniprogram", params)
}

func (s *ActivityService) Detail(ctx context.Context, id string, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/activity/detail/"+seg(id), params)
}

func (s *ActivityService) Enroll(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/activity/enroll", body)
}

// CancelEnroll sends both ids in the query string with an empty body.
func (s *ActivityService) CancelEnroll(ctx context.Context, studentID, activityID string) (json.RawMessage, error) {
	return s.r.Post(ctx, withQuery("/edu/activity/cancelEnroll", "studentId", studentID, "activityId", activityID), nil)
}

func (s *ActivityService) SignIn(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/activity/signIn", body)
}

// GenerateQRCode returns the sign-in code of an activity.
func (s *ActivityService) GenerateQRCode(ctx context.Context, activityID, operatorID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/activity/generateQRCode/"+seg(activityID), Params{"operatorId": operatorID})
}

func (s *ActivityService) Participants(ctx context.Context, activityID string, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/activity/participants/"+seg(activityID), params)
}

func (s *ActivityService) Finish(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/activity/finish", body)
}

func (s *ActivityService) Complete(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/activity/complete", body)
}

func (s *ActivityService) TypesMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/activity/types/map", nil)
}

func (s *ActivityService) Create(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/activity", body)
}

func (s *ActivityService) Update(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/edu/activity", body)
}

// Delete removes one or more activities.
func (s *ActivityService) Delete(ctx context.Context, activityIDs ...string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/edu/activity/"+ids(activityIDs), nil)
}

func (s *ActivityService) ParticipantList(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/participant/list", params)
}

func (s *ActivityService) ParticipantDetail(ctx context.Context, participantID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/participant/"+seg(participantID), nil)
}
