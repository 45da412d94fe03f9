// Package contentsec screens user text through the backend's content security check.
package contentsec

import (
	"encoding/json"
	"errors"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
)

// CheckPath is the backend endpoint proxying the WeChat text check.
const CheckPath = "/api/security/checkText"

// MaxContentLength is the longest text accepted, in characters.
const MaxContentLength = 2500

// Validation errors. Everything else is reported through Result.
var (
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrInvalidScene   = errors.New("scene must be between 1 and 4")
	ErrContentTooLong = errors.New("content must not exceed 2500 characters")
)

// Scene tells the checker where the text will be shown.
type Scene int

const (
	SceneProfile   Scene = 1
	SceneComment   Scene = 2
	SceneForum     Scene = 3
	SceneSocialLog Scene = 4
)

// Valid reports whether s is a known scene.
func (s Scene) Valid() bool { return s >= SceneProfile && s <= SceneSocialLog }

// Suggest is the checker's verdict.
type Suggest string

const (
	SuggestPass   Suggest = "pass"
	SuggestReview Suggest = "review"
	SuggestRisky  Suggest = "risky"
)

// Label classifies what the checker found.
type Label int

const (
	LabelNormal    Label = 100
	LabelAd        Label = 10001
	LabelPolitics  Label = 20001
	LabelPorn      Label = 20002
	LabelAbuse     Label = 20003
	LabelIllegal   Label = 20006
	LabelFraud     Label = 20008
	LabelVulgar    Label = 20012
	LabelCopyright Label = 20013
	LabelOther     Label = 21000
)

var labelDesc = map[Label]string{
	LabelNormal:    i18n.LabelNormal,
	LabelAd:        i18n.LabelAd,
	LabelPolitics:  i18n.LabelPolitics,
	LabelPorn:      i18n.LabelPorn,
	LabelAbuse:     i18n.LabelAbuse,
	LabelIllegal:   i18n.LabelIllegal,
	LabelFraud:     i18n.LabelFraud,
	LabelVulgar:    i18n.LabelVulgar,
	LabelCopyright: i18n.LabelCopyright,
	LabelOther:     i18n.LabelOther,
}

// Desc returns the message key describing l, "unknown" for unlisted labels.
func (l Label) Desc() string {
	if d, ok := labelDesc[l]; ok {
		return d
	}
	return i18n.LabelUnknown
}

// Request is the text to check.
type Request struct {
	Content  string `json:"content"`
	Scene    Scene  `json:"scene"`
	Title    string `json:"title,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	// Signature only applies to SceneProfile.
	Signature string `json:"signature,omitempty"`
}

// Result is the outcome of a check. When Success is false the text must not
// be published without review.
type Result struct {
	Success    bool            `json:"success"`
	Suggest    Suggest         `json:"suggest,omitempty"`
	Label      Label           `json:"label,omitempty"`
	LabelDesc  string          `json:"labelDesc,omitempty"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	TraceID    string          `json:"traceId,omitempty"`
	IsPassed   bool            `json:"isPassed"`
	NeedReview bool            `json:"needReview"`
	IsRisky    bool            `json:"isRisky"`
	Error      string          `json:"error,omitempty"`
}

// checkResponse is the backend reply.
type checkResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	Result  *struct {
		Suggest Suggest `json:"suggest"`
		Label   Label   `json:"label"`
	} `json:"result"`
	Detail  json.RawMessage `json:"detail"`
	TraceID string          `json:"trace_id"`
}
