package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/api"
)

// decodeLoose returns raw decoded, or raw as a string when it is not JSON.
func decodeLoose(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// parsePairs turns k=v arguments into params.
func parsePairs(pairs []string) (api.Params, error) {
	out := api.Params{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", p)
		}
		out[k] = v
	}
	return out, nil
}

func callCmd(e *env) *cobra.Command {
	var (
		query  []string
		data   string
		raw    bool
		silent bool
	)

	c := &cobra.Command{
		Use:   "call METHOD PATH",
		Short: "Send any request through the envelope handling",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, path := strings.ToUpper(args[0]), args[1]
			params, err := parsePairs(query)
			if err != nil {
				return err
			}
			var body any
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				body = json.RawMessage(data)
			}

			var opts []request.CallOption
			if raw {
				opts = append(opts, request.Raw())
			}
			if silent {
				opts = append(opts, request.Silent())
			}

			rc := e.svc.Requests()
			ctx := cmd.Context()
			var res json.RawMessage
			switch method {
			case http.MethodGet:
				res, err = rc.Get(ctx, path, params, opts...)
			case http.MethodDelete:
				res, err = rc.Delete(ctx, path, params, opts...)
			case http.MethodPost:
				res, err = rc.Post(ctx, withPairs(path, params), body, opts...)
			case http.MethodPut:
				res, err = rc.Put(ctx, withPairs(path, params), body, opts...)
			default:
				return fmt.Errorf("unsupported method %q", method)
			}
			if err != nil {
				return err
			}
			return e.print(res)
		},
	}
	c.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter key=value (repeatable)")
	c.Flags().StringVarP(&data, "data", "d", "", "JSON body for POST and PUT")
	c.Flags().BoolVar(&raw, "raw", false, "Print the whole envelope")
	c.Flags().BoolVar(&silent, "silent", false, "Do not show error toasts")
	return c
}

// withPairs appends params to a path used with a JSON body.
func withPairs(path string, params api.Params) string {
	if len(params) == 0 {
		return path
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, fmt.Sprint(v))
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}
