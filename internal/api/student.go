package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
)

// StudentService covers /edu/student.
type StudentService struct{ r Requester }

// LoginResult is the part of the login envelope the client keeps.
type LoginResult struct {
	Token string          `json:"token"`
	Data  json.RawMessage `json:"data,omitempty"`
	Msg   string          `json:"msg,omitempty"`
}

// ParseLogin reads the token out of a raw login envelope.
func ParseLogin(raw json.RawMessage) (LoginResult, error) {
	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("decode login response: %w", err)
	}
	if res.Token == "" && len(res.Data) > 0 {
		var inner struct {
			Token string `json:"token"`
		}
		if json.Unmarshal(res.Data, &inner) == nil {
			res.Token = inner.Token
		}
	}
	if res.Token == "" {
		return res, fmt.Errorf("login response has no token")
	}
	return res, nil
}

// Login authenticates with student number and password. Returns the whole envelope.
func (s *StudentService) Login(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/login", body, request.Raw())
}

// LoginByWechat authenticates with a WeChat code. Returns the whole envelope.
func (s *StudentService) LoginByWechat(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/loginByWechat", body, request.Raw())
}

func (s *StudentService) BindPhone(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/bindPhone", body)
}

func (s *StudentService) UpdateProfile(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/updateProfile", body)
}

func (s *StudentService) UpdatePassword(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/updatePassword", body)
}

func (s *StudentService) MyActivities(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/myActivities", body)
}

func (s *StudentService) MyOrganizations(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/myOrganizations", body)
}

func (s *StudentService) MyGrowthRecords(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/student/myGrowthRecords", body)
}

func (s *StudentService) Detail(ctx context.Context, studentID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/student/"+seg(studentID), nil)
}

func (s *StudentService) Info(ctx context.Context, studentID string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/student/getStudentInfo", Params{"studentId": studentID})
}

func (s *StudentService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/student/list", params)
}
