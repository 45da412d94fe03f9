package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func fakeBackend() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/edu/student/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"code":200,"msg":"ok","token":"opaque-token","data":{"name":"Li"}}`)
	})
	mux.HandleFunc("/edu/activity/list", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer opaque-token" {
			_, _ = io.WriteString(w, `{"code":401,"msg":"expired"}`)
			return
		}
		_, _ = io.WriteString(w, `{"code":200,"msg":"ok","total":1,"rows":[{"id":1,"page":"`+r.URL.Query().Get("pageNum")+`"}]}`)
	})
	return httptest.NewServer(mux)
}

type result struct {
	out, errOut string
	err         error
}

func invoke(args ...string) result {
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(""), &out, &errOut)
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func TestCommands(t *testing.T) {
	Convey("Given a backend and a sqlite credential file", t, func() {
		srv := fakeBackend()
		defer srv.Close()
		dir := t.TempDir()
		t.Setenv("CAMPUS_CONFIG", "")
		t.Setenv("CAMPUS_BASE_URL", srv.URL)
		t.Setenv("CAMPUS_STORAGE_PATH", filepath.Join(dir, "campus.db"))
		t.Setenv("CAMPUS_LOCALE", "en")

		Convey("When calling a protected endpoint without logging in", func() {
			r := invoke("activity", "list", "--yes")

			Convey("Then the login prompt is answered and the handler runs", func() {
				So(r.err, ShouldNotBeNil)
				So(r.errOut, ShouldContainSubstring, "== login required ==")
				So(r.errOut, ShouldContainSubstring, "campusctl login")
			})
		})

		Convey("When logging in", func() {
			r := invoke("login", "-u", "2024001", "-p", "secret")
			So(r.err, ShouldBeNil)

			Convey("Then the session persists across runs", func() {
				who := invoke("whoami")
				So(who.err, ShouldBeNil)
				So(who.out, ShouldContainSubstring, `"name": "Li"`)

				list := invoke("activity", "list", "--page", "2")
				So(list.err, ShouldBeNil)
				var body map[string]any
				So(json.Unmarshal([]byte(list.out), &body), ShouldBeNil)
				So(body["total"], ShouldEqual, float64(1))
				So(list.out, ShouldContainSubstring, `"page": "2"`)
			})

			Convey("Then the generic call can print YAML", func() {
				c := invoke("call", "get", "/edu/activity/list", "-q", "pageNum=3", "-o", "yaml")
				So(c.err, ShouldBeNil)
				So(c.out, ShouldContainSubstring, "total: 1")
				So(c.out, ShouldContainSubstring, `page: "3"`)
			})

			Convey("Then logout forgets the token", func() {
				So(invoke("logout").err, ShouldBeNil)
				So(invoke("whoami").err, ShouldNotBeNil)
			})
		})

		Convey("When login flags are missing", func() {
			So(invoke("login").err, ShouldNotBeNil)
		})

		Convey("When the metrics file cannot be written", func() {
			t.Setenv("CAMPUS_METRICS_FILE", filepath.Join(dir, "missing", "metrics.prom"))
			r := invoke("distance", "0", "0", "0", "1")

			Convey("Then the command fails and says why", func() {
				So(r.err, ShouldNotBeNil)
				So(r.out, ShouldContainSubstring, "111.3 km")
				So(r.errOut, ShouldContainSubstring, "Error: create metrics file")
			})
		})

		Convey("When a metrics file is configured", func() {
			path := filepath.Join(dir, "metrics.prom")
			t.Setenv("CAMPUS_METRICS_FILE", path)
			_ = invoke("call", "GET", "/edu/activity/list", "--silent")

			Convey("Then the registry is dumped on exit", func() {
				b, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, "campus_api_requests_total")
			})
		})
	})
}

func TestOfflineCommands(t *testing.T) {
	Convey("Given commands that need no backend", t, func() {
		t.Setenv("CAMPUS_CONFIG", "")
		t.Setenv("CAMPUS_STORAGE_PATH", "")

		Convey("Then distance prints meters and a display string", func() {
			r := invoke("distance", "0", "0", "0", "1")
			So(r.err, ShouldBeNil)
			So(r.out, ShouldContainSubstring, `"display": "111.3 km"`)
		})

		Convey("Then bad coordinates are rejected", func() {
			So(invoke("distance", "a", "0", "0", "1").err, ShouldNotBeNil)
		})

		Convey("Then richtext summaries strip markup", func() {
			f := filepath.Join(t.TempDir(), "a.html")
			So(os.WriteFile(f, []byte("<p>hello <b>world</b></p>"), 0o600), ShouldBeNil)
			r := invoke("richtext", f, "--summary", "5")
			So(r.err, ShouldBeNil)
			So(r.out, ShouldEqual, "hello...\n")
		})

		Convey("Then an unknown output format fails", func() {
			So(invoke("distance", "0", "0", "0", "1", "-o", "xml").err, ShouldNotBeNil)
		})
	})
}

func TestHelpers(t *testing.T) {
	Convey("Given key=value arguments", t, func() {
		p, err := parsePairs([]string{"a=1", "b=x=y"})
		So(err, ShouldBeNil)
		So(p["a"], ShouldEqual, "1")
		So(p["b"], ShouldEqual, "x=y")

		_, err = parsePairs([]string{"novalue"})
		So(err, ShouldNotBeNil)

		So(withPairs("/x", nil), ShouldEqual, "/x")
		So(withPairs("/x?a=1", map[string]any{"b": "2 3"}), ShouldEqual, "/x?a=1&b=2+3")
	})
}
