package contentsec

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/storage"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

type fakeFetcher struct {
	mu     sync.Mutex
	bodies []Request
	fn     func(req Request) (int, []byte, error)
}

func (f *fakeFetcher) Fetch(_ context.Context, method, url string, body any, _ ...request.CallOption) (int, []byte, error) {
	req, _ := body.(Request)
	f.mu.Lock()
	f.bodies = append(f.bodies, req)
	f.mu.Unlock()
	if method != http.MethodPost || url != CheckPath {
		return http.StatusNotFound, nil, nil
	}
	return f.fn(req)
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

type recordingNotifier struct {
	toasts []string
	modals []request.Modal
}

func (r *recordingNotifier) Toast(_ context.Context, t request.Toast) {
	r.toasts = append(r.toasts, t.Title)
}
func (r *recordingNotifier) Modal(_ context.Context, m request.Modal) (bool, error) {
	r.modals = append(r.modals, m)
	return true, nil
}
func (r *recordingNotifier) Loading(context.Context, string) {}
func (r *recordingNotifier) HideLoading(context.Context)     {}

func verdict(suggest Suggest, label Label) func(Request) (int, []byte, error) {
	return func(Request) (int, []byte, error) {
		body, _ := json.Marshal(map[string]any{
			"errcode":  0,
			"errmsg":   "ok",
			"result":   map[string]any{"suggest": suggest, "label": label},
			"trace_id": "trace-1",
		})
		return http.StatusOK, body, nil
	}
}

func newChecker(f Fetcher, opts ...Option) *Checker {
	base := []Option{
		WithLogger(logger.Nop()),
		WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	}
	return New(f, append(base, opts...)...)
}

func TestValidate(t *testing.T) {
	Convey("Given requests to validate", t, func() {
		So(Validate(Request{Content: "hi", Scene: SceneForum}), ShouldBeNil)
		So(errors.Is(Validate(Request{Scene: SceneForum}), ErrEmptyContent), ShouldBeTrue)
		So(errors.Is(Validate(Request{Content: "hi", Scene: 0}), ErrInvalidScene), ShouldBeTrue)
		So(errors.Is(Validate(Request{Content: "hi", Scene: 5}), ErrInvalidScene), ShouldBeTrue)

		Convey("Then length counts characters, not bytes", func() {
			So(Validate(Request{Content: strings.Repeat("字", MaxContentLength), Scene: SceneComment}), ShouldBeNil)
			So(errors.Is(Validate(Request{Content: strings.Repeat("a", MaxContentLength+1), Scene: SceneComment}), ErrContentTooLong), ShouldBeTrue)
		})
	})
}

func TestCheckText(t *testing.T) {
	Convey("Given a checker", t, func() {
		ctx := context.Background()

		Convey("When the text passes", func() {
			f := &fakeFetcher{fn: verdict(SuggestPass, LabelNormal)}
			res, err := newChecker(f).CheckText(ctx, Request{Content: "hello", Scene: SceneForum})

			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.IsPassed, ShouldBeTrue)
			So(res.NeedReview, ShouldBeFalse)
			So(res.Label, ShouldEqual, LabelNormal)
			So(res.LabelDesc, ShouldEqual, i18n.LabelNormal)
			So(res.TraceID, ShouldEqual, "trace-1")
		})

		Convey("When the text is risky", func() {
			f := &fakeFetcher{fn: verdict(SuggestRisky, LabelAbuse)}
			res, err := newChecker(f, WithTranslator(i18n.New("zh-CN"))).CheckText(ctx, Request{Content: "x", Scene: SceneComment})

			So(err, ShouldBeNil)
			So(res.IsRisky, ShouldBeTrue)
			So(res.LabelDesc, ShouldEqual, "辱骂")
		})

		Convey("When the label is not known", func() {
			f := &fakeFetcher{fn: verdict(SuggestReview, Label(99999))}
			res, _ := newChecker(f).CheckText(ctx, Request{Content: "x", Scene: SceneSocialLog})

			So(res.NeedReview, ShouldBeTrue)
			So(res.LabelDesc, ShouldEqual, i18n.LabelUnknown)
		})

		Convey("When the input is invalid", func() {
			f := &fakeFetcher{fn: verdict(SuggestPass, LabelNormal)}
			_, err := newChecker(f).CheckText(ctx, Request{Content: "", Scene: SceneForum})

			So(errors.Is(err, ErrEmptyContent), ShouldBeTrue)
			So(f.calls(), ShouldEqual, 0)
		})

		Convey("When the backend fails in any way", func() {
			cases := map[string]func(Request) (int, []byte, error){
				"network": func(Request) (int, []byte, error) { return 0, nil, errors.New("down") },
				"status":  func(Request) (int, []byte, error) { return http.StatusBadGateway, nil, nil },
				"garbage": func(Request) (int, []byte, error) { return http.StatusOK, []byte("<html>"), nil },
				"errcode": func(Request) (int, []byte, error) {
					return http.StatusOK, []byte(`{"errcode":87014,"errmsg":"risky content"}`), nil
				},
				"no result": func(Request) (int, []byte, error) { return http.StatusOK, []byte(`{"errcode":0}`), nil },
			}
			for name, fn := range cases {
				res, err := newChecker(&fakeFetcher{fn: fn}).CheckText(ctx, Request{Content: "x", Scene: SceneForum})
				So(err, ShouldBeNil)
				So(res.Success, ShouldBeFalse)
				So(res.NeedReview, ShouldBeTrue)
				So(res.IsPassed, ShouldBeFalse)
				So(res.IsRisky, ShouldBeFalse)
				So(res.Error, ShouldNotBeEmpty)
				if name == "errcode" {
					So(res.Error, ShouldEqual, "risky content")
				}
			}
		})
	})
}

func TestHelpers(t *testing.T) {
	Convey("Given the convenience checks", t, func() {
		ctx := context.Background()
		f := &fakeFetcher{fn: verdict(SuggestPass, LabelNormal)}
		c := newChecker(f)

		Convey("Then lost-and-found joins the non-empty parts", func() {
			_, err := c.CheckLostFound(ctx, "Lost card", "", "138")
			So(err, ShouldBeNil)
			So(f.bodies[0].Content, ShouldEqual, "Lost card\n138")
			So(f.bodies[0].Scene, ShouldEqual, SceneForum)
			So(f.bodies[0].Title, ShouldEqual, "Lost card")
		})

		Convey("Then posts use the forum scene", func() {
			_, _ = c.CheckPost(ctx, "T", "body")
			So(f.bodies[0].Content, ShouldEqual, "T\nbody")
			So(f.bodies[0].Scene, ShouldEqual, SceneForum)
		})

		Convey("Then comments carry the nickname", func() {
			_, _ = c.CheckComment(ctx, "nice", "amy")
			So(f.bodies[0].Scene, ShouldEqual, SceneComment)
			So(f.bodies[0].Nickname, ShouldEqual, "amy")
		})
	})
}

func TestBatch(t *testing.T) {
	Convey("Given several texts", t, func() {
		ctx := context.Background()
		f := &fakeFetcher{fn: func(r Request) (int, []byte, error) {
			if r.Content == "bad" {
				return verdict(SuggestRisky, LabelPorn)(r)
			}
			return verdict(SuggestPass, LabelNormal)(r)
		}}
		c := newChecker(f)

		Convey("When all are valid", func() {
			out, err := c.Batch(ctx, []Request{
				{Content: "ok", Scene: SceneForum},
				{Content: "bad", Scene: SceneForum},
				{Content: "ok", Scene: SceneComment},
			})

			Convey("Then results keep input order", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 3)
				So(out[0].IsPassed, ShouldBeTrue)
				So(out[1].IsRisky, ShouldBeTrue)
				So(out[2].IsPassed, ShouldBeTrue)
			})
		})

		Convey("When one is invalid", func() {
			_, err := c.Batch(ctx, []Request{{Content: "ok", Scene: SceneForum}, {Content: "ok", Scene: 9}})

			Convey("Then nothing is sent", func() {
				So(errors.Is(err, ErrInvalidScene), ShouldBeTrue)
				So(f.calls(), ShouldEqual, 0)
			})
		})

		Convey("When empty", func() {
			out, err := c.Batch(ctx, nil)
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}

func TestShow(t *testing.T) {
	Convey("Given a checker with a recording notifier", t, func() {
		ctx := context.Background()
		n := &recordingNotifier{}
		c := newChecker(&fakeFetcher{}, WithNotifier(n))

		Convey("Then a pass toasts", func() {
			c.Show(ctx, Result{Success: true, IsPassed: true}, ShowMessages{})
			So(n.toasts, ShouldResemble, []string{i18n.CheckPassed})
		})

		Convey("Then a failure toasts the error", func() {
			c.Show(ctx, Result{Success: false, NeedReview: true, Error: "boom"}, ShowMessages{})
			So(n.toasts, ShouldResemble, []string{"boom"})
			So(n.modals, ShouldBeEmpty)
		})

		Convey("Then review opens a notice", func() {
			c.Show(ctx, Result{Success: true, NeedReview: true}, ShowMessages{Review: "wait"})
			So(n.modals, ShouldHaveLength, 1)
			So(n.modals[0].Title, ShouldEqual, i18n.CheckNoticeTitle)
			So(n.modals[0].Content, ShouldEqual, "wait")
		})

		Convey("Then risky content names the violation", func() {
			c.Show(ctx, Result{Success: true, IsRisky: true, LabelDesc: "fraud"}, ShowMessages{})
			So(n.modals, ShouldHaveLength, 1)
			So(n.modals[0].Title, ShouldEqual, i18n.CheckRiskyTitle)
			So(n.modals[0].Content, ShouldEqual, i18n.CheckRisky+"\nviolation type: fraud")
		})
	})
}

func TestCheckThroughClient(t *testing.T) {
	Convey("Given a request client against a test server", t, func() {
		var gotAuth, gotPath string
		var got Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"errcode":0,"result":{"suggest":"pass","label":100}}`)
		}))
		defer srv.Close()

		store := storage.NewMemoryStore()
		So(store.Set(context.Background(), storage.KeyToken, "tok"), ShouldBeNil)
		client := request.New(
			request.WithBaseURL(srv.URL),
			request.WithStorage(store),
			request.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
		)

		res, err := newChecker(client).CheckComment(context.Background(), "hello", "amy")

		Convey("Then the check goes through base URL and auth", func() {
			So(err, ShouldBeNil)
			So(res.IsPassed, ShouldBeTrue)
			So(gotPath, ShouldEqual, CheckPath)
			So(gotAuth, ShouldEqual, "Bearer tok")
			So(got.Scene, ShouldEqual, SceneComment)
			So(got.Nickname, ShouldEqual, "amy")
		})
	})
}
