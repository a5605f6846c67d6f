// Command insights prints analytics for a records file without starting the
// HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	app "github.com/okian/moviemonday/internal/app"
	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/pkg/logger"
)

// Supported commands.
const (
	cmdAggregate   = "aggregate"
	cmdChart       = "chart"
	cmdFacts       = "facts"
	cmdConnections = "connections"
)

var errUsage = errors.New("usage")

// options holds the parsed command line.
type options struct {
	Command  string
	Records  string
	Week     string
	Max      int
	Category string
	Metric   string
	Limit    int
	Verbose  bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "insights:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parse(args, stderr)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		return err
	}
	if !opts.Verbose {
		_ = logger.SetLevelString("warn")
	}

	svc := app.New(
		app.WithLogger(logger.Named("insights")),
		app.WithRecordsPath(opts.Records),
		app.WithReadOnly(true),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	var out any
	switch opts.Command {
	case cmdAggregate:
		out = svc.Aggregate(ctx)
	case cmdChart:
		out, err = chart(ctx, svc, opts)
	case cmdFacts:
		out, err = svc.Facts(ctx, model.ID(opts.Week), opts.Max)
	case cmdConnections:
		out, err = svc.Connections(ctx, model.ID(opts.Week))
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func chart(ctx context.Context, svc *app.Service, opts options) ([]model.ChartPoint, error) {
	category, err := aggregate.ParseCategory(opts.Category)
	if err != nil {
		return nil, err
	}
	metric, err := aggregate.ParseMetric(opts.Metric)
	if err != nil {
		return nil, err
	}
	return svc.Chart(ctx, category, metric, opts.Limit)
}

func parse(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("insights", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Records, "records", "", "path to a JSON array of weekly records (required)")
	fs.StringVar(&opts.Week, "week", "", "week id for facts and connections")
	fs.IntVar(&opts.Max, "max", 0, "maximum facts to print (0 uses the default)")
	fs.StringVar(&opts.Category, "category", string(aggregate.Genres), "chart category")
	fs.StringVar(&opts.Metric, "metric", string(aggregate.MetricTotal), "chart metric")
	fs.IntVar(&opts.Limit, "limit", 0, "chart size (0 uses the default)")
	fs.BoolVar(&opts.Verbose, "verbose", false, "enable info logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: insights [options] <%s|%s|%s|%s>\n\n",
			cmdAggregate, cmdChart, cmdFacts, cmdConnections)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 || opts.Records == "" {
		fs.Usage()
		return opts, errUsage
	}
	opts.Command = fs.Arg(0)

	switch opts.Command {
	case cmdAggregate, cmdChart:
	case cmdFacts, cmdConnections:
		if opts.Week == "" {
			return opts, fmt.Errorf("%w: %s needs -week", errUsage, opts.Command)
		}
	default:
		fs.Usage()
		return opts, fmt.Errorf("%w: unknown command %q", errUsage, opts.Command)
	}
	return opts, nil
}
