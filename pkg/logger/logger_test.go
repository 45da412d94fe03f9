package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithJSON(true)), ShouldBeNil)
		defer func() { _ = Init() }()

		Convey("When logging at info", func() {
			Get().Info(context.Background(), "request sent", String("method", "GET"), Int("status", 200))

			Convey("Then the record carries the fields", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "request sent")
				So(rec["method"], ShouldEqual, "GET")
				So(rec["status"], ShouldEqual, float64(200))
			})
		})

		Convey("When logging at debug with the default level", func() {
			Get().Debug(context.Background(), "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("DEBUG"), ShouldBeNil)
			Get().Debug(context.Background(), "visible")

			Convey("Then the record is written", func() {
				So(buf.String(), ShouldContainSubstring, "visible")
			})
		})

		Convey("When a named logger logs an error", func() {
			Named("request").Error(context.Background(), "failed", Error(errors.New("boom")))

			Convey("Then the name and error are attached", func() {
				So(buf.String(), ShouldContainSubstring, `"logger":"request"`)
				So(buf.String(), ShouldContainSubstring, "boom")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(SetLevelString("warning"), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given the no-op logger", t, func() {
		l := Nop()

		Convey("Then logging does not panic", func() {
			So(func() {
				l.Error(context.Background(), "dropped")
				l.Named("x").Info(context.Background(), "dropped")
			}, ShouldNotPanic)
		})
	})
}
