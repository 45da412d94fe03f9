package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/contentsec"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/api"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/domain/geo"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/domain/richtext"
)

func uploadCmd(e *env) *cobra.Command {
	var kind, studentID string

	c := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			up := e.svc.API().Upload
			ctx := cmd.Context()

			var (
				out []json.RawMessage
				err error
			)
			switch kind {
			case "image":
				out, err = up.Images(ctx, args)
			case "common":
				out, err = up.CommonMany(ctx, args, api.CommonOptions{StudentID: studentID})
			case "video", "file":
				for _, p := range args {
					var res json.RawMessage
					if kind == "video" {
						res, err = up.Video(ctx, p)
					} else {
						res, err = up.File(ctx, p)
					}
					if err != nil {
						break
					}
					out = append(out, res)
				}
			default:
				return fmt.Errorf("unsupported kind %q (expected image|video|file|common)", kind)
			}
			if err != nil {
				return err
			}
			if len(out) == 1 {
				return e.print(out[0])
			}
			return e.print(decodeAll(out))
		},
	}
	c.Flags().StringVar(&kind, "kind", "common", "Upload endpoint: image|video|file|common")
	c.Flags().StringVar(&studentID, "student-id", "", "Student id sent with common uploads")
	return c
}

func decodeAll(raws []json.RawMessage) []any {
	out := make([]any, len(raws))
	for i, r := range raws {
		out[i] = decodeLoose(r)
	}
	return out
}

func checkCmd(e *env) *cobra.Command {
	var scene int
	var show bool

	c := &cobra.Command{
		Use:   "check TEXT",
		Short: "Run the content security check on TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := e.svc.Content()
			res, err := checker.CheckText(cmd.Context(), contentsec.Request{Content: args[0], Scene: contentsec.Scene(scene)})
			if err != nil {
				return err
			}
			if show {
				checker.Show(cmd.Context(), res, contentsec.ShowMessages{})
			}
			return e.print(res)
		},
	}
	c.Flags().IntVar(&scene, "scene", int(contentsec.SceneForum), "1 profile, 2 comment, 3 forum, 4 social log")
	c.Flags().BoolVar(&show, "show", false, "Present the verdict through the notifier")
	return c
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func geocodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "geocode LAT LNG",
		Short: "Resolve coordinates to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			addr, err := e.svc.Geocoder().Reverse(cmd.Context(), v[0], v[1])
			if err != nil {
				return err
			}
			return e.print(addr)
		},
	}
}

type distanceView struct {
	Meters  float64 `json:"meters" yaml:"meters"`
	Display string  `json:"display" yaml:"display"`
}

func distanceCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "distance LAT1 LNG1 LAT2 LNG2",
		Short: "Great-circle distance between two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			d := geo.Distance(geo.Point{Lat: v[0], Lng: v[1]}, geo.Point{Lat: v[2], Lng: v[3]})
			return e.print(distanceView{Meters: d, Display: geo.FormatDistance(d)})
		},
	}
}

func richtextCmd(e *env) *cobra.Command {
	var summary int
	var plain, preview bool

	c := &cobra.Command{
		Use:   "richtext FILE",
		Short: "Format backend HTML for display",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			content := string(b)
			var out string
			switch {
			case summary > 0:
				out = richtext.Summary(content, summary)
			case plain:
				out = richtext.Clean(content)
			default:
				out = richtext.Format(content, nil)
				if preview {
					out = richtext.AddImagePreview(out)
				}
			}
			_, err = fmt.Fprintln(e.out, out)
			return err
		},
	}
	c.Flags().IntVar(&summary, "summary", 0, "Print a plain summary of N characters")
	c.Flags().BoolVar(&plain, "plain", false, "Print plain text")
	c.Flags().BoolVar(&preview, "preview", false, "Number images for preview")
	return c
}
