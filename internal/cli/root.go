// Package cli implements the campusctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/notify"
	service "github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/app"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/config"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// env carries the process streams and the service shared by every command.
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	output  string
	yes     bool
	baseURL string
	locale  string
	debug   bool

	cfg *config.Config
	svc *service.Service
}

// Execute runs campusctl with the process arguments.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one command line. The service is stopped even when the
// command fails. Cobra prints command errors; teardown errors are printed here.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	cmd, e := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if terr := e.teardown(ctx); terr != nil {
		fmt.Fprintln(errOut, "Error:", terr)
		if err == nil {
			err = terr
		}
	}
	return err
}

func newRootCmd(in io.Reader, out, errOut io.Writer) (*cobra.Command, *env) {
	e := &env{in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:               "campusctl",
		Short:             "Command line client for the campus mini-program backend",
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	f := cmd.PersistentFlags()
	f.StringVarP(&e.output, "output", "o", "json", "Output format: json|yaml")
	f.BoolVarP(&e.yes, "yes", "y", false, "Answer yes to every prompt")
	f.StringVar(&e.baseURL, "base-url", "", "Override base_url")
	f.StringVar(&e.locale, "locale", "", "Override locale (zh-CN, en)")
	f.BoolVar(&e.debug, "debug", false, "Log at debug level")

	cmd.AddCommand(
		loginCmd(e),
		logoutCmd(e),
		whoamiCmd(e),
		callCmd(e),
		activityCmd(e),
		postCmd(e),
		uploadCmd(e),
		checkCmd(e),
		geocodeCmd(e),
		distanceCmd(e),
		richtextCmd(e),
	)
	return cmd, e
}

// setup loads configuration and starts the service.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if e.baseURL != "" {
		cfg.BaseURL = e.baseURL
	}
	if e.locale != "" {
		cfg.Locale = e.locale
	}
	if e.debug {
		cfg.LogLevel = "debug"
	}
	e.cfg = cfg

	if err := logger.Init(logger.WithWriter(e.errOut), logger.WithJSON(cfg.LogJSON)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	console := notify.NewConsole(e.errOut, e.in, notify.WithAssumeYes(e.yes))
	e.svc = service.New(
		service.WithConfig(cfg),
		service.WithLogger(logger.Named("service")),
		service.WithNotifier(console),
		service.WithLoginHandler(func(context.Context) {
			fmt.Fprintln(e.errOut, "run `campusctl login` to sign in again")
		}),
	)
	return e.svc.Start(ctx)
}

// teardown dumps metrics when configured and stops the service.
func (e *env) teardown(ctx context.Context) error {
	if e.svc == nil {
		return nil
	}
	defer func() {
		e.svc.Stop()
		e.svc = nil
	}()

	if e.cfg.MetricsFile == "" {
		return nil
	}
	f, err := os.Create(e.cfg.MetricsFile)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()
	if err := metrics.WriteText(f, metrics.GetRegistry()); err != nil {
		return err
	}
	logger.Get().Debug(ctx, "metrics written", logger.String("path", e.cfg.MetricsFile))
	return nil
}
