package api

import (
	"context"
	"encoding/json"
)

// UserService covers the marketplace account (/api/user).
type UserService struct{ r Requester }

func (s *UserService) Login(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/user/login", body)
}

func (s *UserService) WechatPhoneLogin(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/user/wechat-phone-login", body)
}

func (s *UserService) BindWechatPhone(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/user/bind-wechat-phone", body)
}

// MockLogin is served by development backends only.
func (s *UserService) MockLogin(ctx context.Context) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/user/mock-login", nil)
}

func (s *UserService) Info(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/user/info", nil)
}

func (s *UserService) UpdateInfo(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/user/info", body)
}

func (s *UserService) Logout(ctx context.Context) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/user/logout", nil)
}

func (s *UserService) ChangePassword(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/user/password", body)
}
