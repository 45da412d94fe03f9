package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/storage"
)

type sessionView struct {
	Subject   string         `json:"subject,omitempty" yaml:"subject,omitempty"`
	IssuedAt  string         `json:"issuedAt,omitempty" yaml:"issuedAt,omitempty"`
	ExpiresAt string         `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	Expired   bool           `json:"expired" yaml:"expired"`
	Claims    map[string]any `json:"claims,omitempty" yaml:"claims,omitempty"`
	UserInfo  any            `json:"userInfo,omitempty" yaml:"userInfo,omitempty"`
}

func viewSession(s storage.Session) sessionView {
	v := sessionView{
		Subject: s.Subject,
		Expired: s.Expired(time.Now()),
		Claims:  s.Claims,
	}
	if !s.IssuedAt.IsZero() {
		v.IssuedAt = s.IssuedAt.Format(time.RFC3339)
	}
	if !s.ExpiresAt.IsZero() {
		v.ExpiresAt = s.ExpiresAt.Format(time.RFC3339)
	}
	if len(s.UserInfo) > 0 {
		v.UserInfo = decodeLoose(s.UserInfo)
	}
	return v
}

func loginCmd(e *env) *cobra.Command {
	var username, password, wechatCode string

	c := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				body   map[string]string
				wechat bool
			)
			switch {
			case wechatCode != "":
				body, wechat = map[string]string{"code": wechatCode}, true
			case username != "" && password != "":
				body = map[string]string{"username": username, "password": password}
			default:
				return errors.New("either --code or both --username and --password are required")
			}
			sess, err := e.svc.Login(cmd.Context(), body, wechat)
			if err != nil {
				return err
			}
			return e.print(viewSession(sess))
		},
	}
	c.Flags().StringVarP(&username, "username", "u", "", "Student number")
	c.Flags().StringVarP(&password, "password", "p", "", "Password")
	c.Flags().StringVar(&wechatCode, "code", "", "WeChat login code")
	return c
}

func logoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.svc.Logout(cmd.Context())
		},
	}
}

func whoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := e.svc.Session(cmd.Context())
			if err != nil && !errors.Is(err, storage.ErrOpaqueToken) {
				return err
			}
			return e.print(viewSession(sess))
		},
	}
}
