package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	weatherform "github.com/goliatone/go-weatherform"
	"github.com/goliatone/go-weatherform/internal/config"
	"github.com/goliatone/go-weatherform/pkg/client"
	"github.com/goliatone/go-weatherform/pkg/contract"
	"github.com/goliatone/go-weatherform/pkg/controller"
	"github.com/goliatone/go-weatherform/pkg/page"
	"github.com/goliatone/go-weatherform/pkg/prompt"
	"github.com/goliatone/go-weatherform/pkg/render"
	"github.com/goliatone/go-weatherform/pkg/renderers/vanilla"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}

type flagValues struct {
	configPath  string
	endpoint    string
	output      string
	outFile     string
	interactive bool
	timeout     time.Duration
	logLevel    string
	layout      string
	strict      bool
	theme       string
	variant     string
	notice      string
	fields      map[string]*string
}

// run executes one form submission and returns the process exit status: 0
// when a prediction was rendered, 1 otherwise, 2 on usage errors. A nil
// driver selects the terminal prompt driver for -interactive.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver prompt.Driver) int {
	apiContract, err := weatherform.LoadContract(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("weatherform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := defineFlags(fs, apiContract)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(config.WithFile(flags.configPath))
	if err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 2
	}
	applyFlags(fs, flags, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cfg.LogLevel)

	registry, err := weatherform.NewRendererRegistry(vanilla.WithTheme(cfg.Theme, cfg.Variant))
	if err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 2
	}
	if !registry.Has(cfg.Output) {
		fmt.Fprintf(stderr, "weatherform: unknown output %q (available: %s)\n", cfg.Output, strings.Join(registry.List(), ", "))
		return 2
	}

	clientOpts := []client.Option{
		client.WithLogger(logger),
		client.WithTimeout(cfg.Timeout),
		client.WithResponseValidator(apiContract),
	}
	if cfg.Breaker.Threshold > 0 {
		clientOpts = append(clientOpts, client.WithBreaker(cfg.Breaker.Threshold, cfg.Breaker.OpenTimeout))
	}
	if cfg.StrictContract {
		clientOpts = append(clientOpts, client.WithStrictContract())
	}
	predictor, err := client.New(cfg.Endpoint, clientOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 2
	}

	doc := weatherform.NewDocument(apiContract, page.WithLayout(page.Layout(cfg.Layout)))
	ctrl, err := controller.New(doc, predictor, controller.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 1
	}
	ctrl.Init()

	if err := page.Prefill(doc, cfg.Values, false); err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 2
	}

	if cfg.Interactive {
		if driver == nil {
			driver = prompt.NewSurveyDriver(stdout)
		}
		if err := prompt.Fill(ctx, driver, apiContract.Fields(), doc); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(stderr, "weatherform: aborted")
			} else {
				fmt.Fprintf(stderr, "weatherform: %v\n", err)
			}
			return 1
		}
	}

	outcome := ctrl.Submit(ctx)
	logger.Debug("submission finished", "outcome", string(outcome))

	out, _, err := registry.Render(ctx, cfg.Output, doc.Snapshot(), render.RenderOptions{
		Fields:   apiContract.Fields(),
		Notice:   flags.notice,
		Endpoint: predictor.Endpoint(),
	})
	if err != nil {
		fmt.Fprintf(stderr, "weatherform: %v\n", err)
		return 1
	}

	if flags.outFile != "" {
		if err := os.WriteFile(flags.outFile, out, 0o644); err != nil {
			fmt.Fprintf(stderr, "weatherform: write output: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Prediction written to %s\n", flags.outFile)
	} else if _, err := stdout.Write(out); err != nil {
		return 1
	}

	if outcome != controller.OutcomePredicted {
		return 1
	}
	return 0
}

func defineFlags(fs *flag.FlagSet, apiContract *contract.Contract) *flagValues {
	flags := &flagValues{fields: make(map[string]*string)}
	fs.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&flags.endpoint, "endpoint", "", "prediction endpoint URL")
	fs.StringVar(&flags.output, "output", "", "output format: pretty, json or html")
	fs.StringVar(&flags.outFile, "out-file", "", "write the rendered output to a file instead of stdout")
	fs.BoolVar(&flags.interactive, "interactive", false, "prompt for every field before submitting")
	fs.DurationVar(&flags.timeout, "timeout", 0, "request timeout (0 waits for the server)")
	fs.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&flags.layout, "layout", "", "page layout: basic or extended")
	fs.BoolVar(&flags.strict, "strict", false, "fail when the response does not match the contract")
	fs.StringVar(&flags.theme, "theme", "", "html theme")
	fs.StringVar(&flags.variant, "variant", "", "html theme variant")
	fs.StringVar(&flags.notice, "notice", "", "notice markup shown above the result")

	for _, field := range apiContract.Fields() {
		usage := field.DisplayLabel()
		if field.Default != "" {
			usage += fmt.Sprintf(" (contract default %q)", field.Default)
		}
		if len(field.Options) > 0 {
			usage += ": " + strings.Join(field.Options, ", ")
		}
		flags.fields[field.Name] = fs.String(field.Name, "", usage)
	}
	return flags
}

// applyFlags layers explicitly set flags over cfg.
func applyFlags(fs *flag.FlagSet, flags *flagValues, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoint":
			cfg.Endpoint = flags.endpoint
		case "output":
			cfg.Output = flags.output
		case "interactive":
			cfg.Interactive = flags.interactive
		case "timeout":
			cfg.Timeout = flags.timeout
		case "log-level":
			cfg.LogLevel = flags.logLevel
		case "layout":
			cfg.Layout = flags.layout
		case "strict":
			cfg.StrictContract = flags.strict
		case "theme":
			cfg.Theme = flags.theme
		case "variant":
			cfg.Variant = flags.variant
		default:
			if value, ok := flags.fields[f.Name]; ok {
				cfg.SetValue(f.Name, *value)
			}
		}
	})
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
