package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session describes the stored login.
type Session struct {
	Token     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    jwt.MapClaims
	UserInfo  json.RawMessage
}

// Expired reports whether the token carries an expiry before now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SaveLogin stores the token and, when present, the user profile.
func SaveLogin(ctx context.Context, s Storage, token string, userInfo json.RawMessage) error {
	if err := s.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if len(userInfo) == 0 || string(userInfo) == "null" {
		return nil
	}
	return s.Set(ctx, KeyUserInfo, string(userInfo))
}

// ClearLogin drops every key tied to the logged-in user.
func ClearLogin(ctx context.Context, s Storage) error {
	return s.Remove(ctx, KeyToken, KeyUserInfo, KeyScheduleCache)
}

// LoadSession reads the stored token and decodes its claims.
// Signatures are not verified; the backend remains the authority.
// An opaque token yields a Session with empty claims and ErrOpaqueToken.
func LoadSession(ctx context.Context, s Storage) (Session, error) {
	token, err := Lookup(ctx, s, KeyToken)
	if err != nil {
		return Session{}, err
	}
	if token == "" {
		return Session{}, ErrNoSession
	}
	info, err := Lookup(ctx, s, KeyUserInfo)
	if err != nil {
		return Session{}, err
	}

	sess, err := Inspect(token)
	if info != "" {
		sess.UserInfo = json.RawMessage(info)
	}
	return sess, err
}

// Inspect decodes token claims without verifying the signature.
func Inspect(token string) (Session, error) {
	sess := Session{Token: token}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return sess, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}
	sess.Claims = claims
	if sub, err := claims.GetSubject(); err == nil {
		sess.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		sess.IssuedAt = iat.Time
	}
	return sess, nil
}
