// Package api maps every backend endpoint to a method.
//
// Each resource has a service holding a Requester. Methods are a direct
// mapping from verb, path and params to a call; payloads stay opaque JSON.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
)

// Params are query or body fields.
type Params map[string]any

// Requester is the subset of request.Client used by the services.
type Requester interface {
	Get(ctx context.Context, url string, params any, opts ...request.CallOption) (json.RawMessage, error)
	Post(ctx context.Context, url string, body any, opts ...request.CallOption) (json.RawMessage, error)
	Put(ctx context.Context, url string, body any, opts ...request.CallOption) (json.RawMessage, error)
	Delete(ctx context.Context, url string, params any, opts ...request.CallOption) (json.RawMessage, error)
	Upload(ctx context.Context, url, filePath string, form map[string]string, opts ...request.CallOption) (json.RawMessage, error)
}

// Client groups every service.
type Client struct {
	Student      *StudentService
	Activity     *ActivityService
	Community    *CommunityService
	Organization *OrganizationService
	Checkin      *CheckinService
	Competition  *CompetitionService
	Showcase     *ShowcaseService
	Feedback     *FeedbackService
	LostFound    *LostFoundService
	Schedule     *ScheduleService
	School       *SchoolService
	Semester     *SemesterService
	Landmark     *LandmarkService
	Quantitative *QuantitativeService
	Goods        *GoodsService
	Order        *OrderService
	Address      *AddressService
	QA           *QAService
	User         *UserService
	Upload       *UploadService
}

// New attaches every service to r.
func New(r Requester) *Client {
	return &Client{
		Student:      &StudentService{r: r},
		Activity:     &ActivityService{r: r},
		Community:    &CommunityService{r: r},
		Organization: &OrganizationService{r: r},
		Checkin:      &CheckinService{r: r},
		Competition:  newCompetitionService(r),
		Showcase:     newShowcaseService(r),
		Feedback:     newFeedbackService(r),
		LostFound:    newLostFoundService(r),
		Schedule:     newScheduleService(r),
		School:       newSchoolService(r),
		Semester:     newSemesterService(r),
		Landmark:     newLandmarkService(r),
		Quantitative: newQuantitativeService(r),
		Goods:        &GoodsService{r: r},
		Order:        &OrderService{r: r},
		Address:      &AddressService{r: r},
		QA:           &QAService{r: r},
		User:         &UserService{r: r},
		Upload:       newUploadService(r),
	}
}

// seg escapes a single path segment.
func seg(v any) string {
	return url.PathEscape(fmt.Sprint(v))
}

// ids joins batch ids with commas for paths like /edu/activity/1,2,3.
func ids(v []string) string {
	parts := make([]string, len(v))
	for i, id := range v {
		parts[i] = url.PathEscape(id)
	}
	return strings.Join(parts, ",")
}

// withQuery appends key/value pairs to path.
func withQuery(path string, kv ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return path + "?" + q.Encode()
}
