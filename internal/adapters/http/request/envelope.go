package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const successCode = 200

// envelope is the backend response wrapper {code, msg, data, ...}.
type envelope map[string]json.RawMessage

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if env == nil {
		return nil, fmt.Errorf("%w: envelope is null", ErrDecode)
	}
	return env, nil
}

// code returns the envelope code, 0 when absent or not a number.
func (e envelope) code() int {
	raw, ok := e["code"]
	if !ok {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return int(i)
}

// text returns a string field, empty when absent or not a string.
func (e envelope) text(key string) string {
	raw, ok := e[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// payload returns data when the key exists (even null), else the envelope without strip keys.
func (e envelope) payload(strip ...string) (json.RawMessage, error) {
	if data, ok := e["data"]; ok {
		return data, nil
	}
	rest := make(map[string]json.RawMessage, len(e))
	for k, v := range e {
		rest[k] = v
	}
	for _, k := range strip {
		delete(rest, k)
	}
	b, err := json.Marshal(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return b, nil
}

// prefixURL rewrites a relative "url" field as base+url.
func (e envelope) prefixURL(base string) {
	u := e.text("url")
	if u == "" || strings.HasPrefix(u, "http") {
		return
	}
	b, err := json.Marshal(base + u)
	if err != nil {
		return
	}
	e["url"] = b
}
