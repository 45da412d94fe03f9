package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/api"
)

// pageFlags adds the pageNum/pageSize pair every list endpoint accepts.
func pageFlags(c *cobra.Command, num, size *int, extra *[]string) {
	c.Flags().IntVar(num, "page", 1, "Page number")
	c.Flags().IntVar(size, "size", 10, "Page size")
	c.Flags().StringArrayVarP(extra, "query", "q", nil, "Extra filter key=value (repeatable)")
}

func pageParams(num, size int, extra []string) (api.Params, error) {
	p, err := parsePairs(extra)
	if err != nil {
		return nil, err
	}
	p["pageNum"] = strconv.Itoa(num)
	p["pageSize"] = strconv.Itoa(size)
	return p, nil
}

func activityCmd(e *env) *cobra.Command {
	c := &cobra.Command{Use: "activity", Short: "Browse campus activities"}

	var num, size int
	var extra []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := pageParams(num, size, extra)
			if err != nil {
				return err
			}
			res, err := e.svc.API().Activity.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return e.print(res)
		},
	}
	pageFlags(list, &num, &size, &extra)

	var studentID string
	detail := &cobra.Command{
		Use:   "detail ID",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params api.Params
			if studentID != "" {
				params = api.Params{"studentId": studentID}
			}
			res, err := e.svc.API().Activity.Detail(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return e.print(res)
		},
	}
	detail.Flags().StringVar(&studentID, "student-id", "", "Include enrollment state for this student")

	c.AddCommand(list, detail)
	return c
}

func postCmd(e *env) *cobra.Command {
	c := &cobra.Command{Use: "post", Short: "Browse community posts"}

	var num, size int
	var extra []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := pageParams(num, size, extra)
			if err != nil {
				return err
			}
			res, err := e.svc.API().Community.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return e.print(res)
		},
	}
	pageFlags(list, &num, &size, &extra)

	detail := &cobra.Command{
		Use:   "detail ID",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.svc.API().Community.Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.print(res)
		},
	}

	c.AddCommand(list, detail)
	return c
}
