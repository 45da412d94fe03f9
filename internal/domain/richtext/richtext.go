// Package richtext prepares backend HTML for display in the mini-program.
package richtext

import (
	"errors"
	"io"
	"maps"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// DefaultSummaryLength is used by Summary when n is not positive.
const DefaultSummaryLength = 100

var defaultStyles = map[string]string{
	"h2":         "font-size: 32rpx; font-weight: bold; color: #333; margin: 30rpx 0 20rpx 0;",
	"h3":         "font-size: 30rpx; font-weight: bold; color: #333; margin: 25rpx 0 15rpx 0;",
	"p":          "margin-bottom: 20rpx; line-height: 1.8; color: #666; white-space: pre-wrap;",
	"ul":         "margin: 20rpx 0; padding-left: 40rpx;",
	"li":         "margin-bottom: 15rpx; line-height: 1.6; color: #666;",
	"div":        "line-height: 1.8; color: #666; white-space: pre-wrap;",
	"img":        "max-width: 100%; height: auto; display: block; margin: 20rpx 0;",
	"strong":     "font-weight: bold; color: #333;",
	"em":         "font-style: italic; color: #666;",
	"blockquote": "border-left: 4rpx solid #e0e0e0; padding-left: 20rpx; margin: 20rpx 0; color: #999;",
}

// DefaultStyles returns a copy of the built-in tag styles.
func DefaultStyles() map[string]string {
	return maps.Clone(defaultStyles)
}

// rewrite walks content token by token. fn may return a replacement for a
// start tag; everything else is copied through untouched.
func rewrite(content string, fn func(t html.Token) (html.Token, bool)) string {
	var b strings.Builder
	b.Grow(len(content))
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				b.Write(z.Raw())
			}
			return b.String()
		}
		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.WriteString(raw)
			continue
		}
		if t, ok := fn(z.Token()); ok {
			b.WriteString(t.String())
			continue
		}
		b.WriteString(raw)
	}
}

// Format sets a style attribute on every styled tag. overrides replace or
// extend the defaults per tag name. Other attributes are kept.
func Format(content string, overrides map[string]string) string {
	if content == "" {
		return ""
	}
	styles := DefaultStyles()
	maps.Copy(styles, overrides)

	return rewrite(content, func(t html.Token) (html.Token, bool) {
		style, ok := styles[t.Data]
		if !ok {
			return t, false
		}
		t.Attr = setAttr(t.Attr, "style", style)
		return t, true
	})
}

func setAttr(attrs []html.Attribute, key, val string) []html.Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: key, Val: val})
}

// Clean strips all markup and returns the decoded text.
func Clean(content string) string {
	if content == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.WriteString(z.Token().Data)
		}
	}
}

// Summary returns at most n characters of the plain text, with "..." appended
// when it was cut.
func Summary(content string, n int) string {
	if n <= 0 {
		n = DefaultSummaryLength
	}
	text := []rune(Clean(content))
	if len(text) <= n {
		return string(text)
	}
	return string(text[:n]) + "..."
}

// AddImagePreview numbers every img tag with a data-index attribute so a tap
// handler can find its position in Images.
func AddImagePreview(content string) string {
	if content == "" {
		return ""
	}
	idx := 0
	return rewrite(content, func(t html.Token) (html.Token, bool) {
		if t.Data != "img" {
			return t, false
		}
		attr := html.Attribute{Key: "data-index", Val: strconv.Itoa(idx)}
		idx++
		t.Attr = append([]html.Attribute{attr}, t.Attr...)
		return t, true
	})
}

// Images lists the src of every img tag in document order.
func Images(content string) []string {
	var out []string
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return out
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		t := z.Token()
		if t.Data != "img" {
			continue
		}
		for _, a := range t.Attr {
			if a.Key == "src" && a.Val != "" {
				out = append(out, a.Val)
				break
			}
		}
	}
}
