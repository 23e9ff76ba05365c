// Command report prints the analytics views as terminal tables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
	"golang.org/x/text/language"

	"github.com/okian/innings/internal/adapters/dataset"
	"github.com/okian/innings/internal/adapters/render"
	app "github.com/okian/innings/internal/app"
	"github.com/okian/innings/internal/config"
	"github.com/okian/innings/internal/domain/views"
	"github.com/okian/innings/pkg/logger"
)

const narrowTerminal = 80

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "report:", err)
		}
		stop()
		os.Exit(1)
	}
}

type options struct {
	view  string
	team  string
	limit int
	lang  string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.view, "view", "all", "view to print, or all")
	fs.StringVar(&o.team, "team", "", "also print this team's record")
	fs.IntVar(&o.limit, "limit", -1, "rows per ranking (default from config)")
	fs.StringVar(&o.lang, "lang", "en", "locale for number formatting")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log := logger.Named("report")

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	ids := views.All()
	if opts.view != "all" {
		id, err := views.ParseID(opts.view)
		if err != nil {
			return err
		}
		ids = []views.ID{id}
	}
	tag, err := language.Parse(opts.lang)
	if err != nil {
		return fmt.Errorf("lang %q: %w", opts.lang, err)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(dataset.NewStore(cfg.MatchesPath, cfg.DeliveriesPath, dataset.WithLogger(log))),
		app.WithDefaultTopN(cfg.DefaultTopN),
		app.WithMaxTopN(cfg.MaxTopN),
		app.WithDeathOvers(cfg.DeathOverLow, cfg.DeathOverHigh),
		app.WithPreviewRows(cfg.PreviewRows),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	r := render.New(stdout, render.WithLanguage(tag), render.WithBarWidth(barWidth(stdout)))

	summary, err := svc.Summary(ctx)
	if err != nil {
		return err
	}
	blocks := []string{r.Summary(summary)}

	for _, id := range ids {
		p := svc.DefaultParams(id)
		if opts.limit >= 0 {
			p.TopN = opts.limit
		}
		res, err := svc.View(ctx, id, p)
		if err != nil {
			return err
		}
		blocks = append(blocks, r.View(res))
	}

	if opts.team != "" {
		s, err := svc.Team(ctx, opts.team)
		if err != nil {
			return err
		}
		blocks = append(blocks, r.Team(s))
	}

	return r.Write(blocks...)
}

// barWidth shrinks bars on narrow terminals and keeps the default elsewhere.
func barWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 24
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width < narrowTerminal {
		return 10
	}
	return 24
}
