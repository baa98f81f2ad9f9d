package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newspulse/pkg/config"
	"github.com/umputun/newspulse/pkg/content"
	"github.com/umputun/newspulse/pkg/dashboard"
	"github.com/umputun/newspulse/pkg/livefeed"
	"github.com/umputun/newspulse/pkg/newsapi"
	"github.com/umputun/newspulse/pkg/repository"
	"github.com/umputun/newspulse/pkg/stream"
	"github.com/umputun/newspulse/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting newspulse version %s", revision)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called above
	}
	lgr.Printf("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	sanitizer := content.NewSanitizer()
	feed := livefeed.NewBuffer(cfg.Feed.Capacity)

	// router and keepalive refer to each other through the pong callback
	var keepalive *stream.Keepalive
	router := stream.NewRouter(stream.RouterParams{
		Feed:    feed,
		Cleaner: sanitizer,
		OnPong:  func() { keepalive.Pong() },
	})
	client := stream.NewClient(stream.Config{
		URL:                  cfg.Stream.URL,
		ReconnectDelay:       cfg.Stream.ReconnectDelay,
		MaxReconnectAttempts: cfg.Stream.MaxReconnectAttempts,
		DialTimeout:          cfg.Stream.DialTimeout,
		Topics:               cfg.Stream.Topics,
	}, stream.WSDialer{}, router)
	keepalive = stream.NewKeepalive(stream.KeepaliveParams{
		Pinger:      client,
		Health:      client.Health(),
		Interval:    cfg.Stream.PingInterval,
		PongTimeout: cfg.Stream.PongTimeout,
	})

	api := newsapi.New(newsapi.Params{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		RetryAttempts: cfg.API.RetryAttempts,
		Limit:         cfg.API.Limit,
		Cleaner:       sanitizer,
	})

	dashParams := dashboard.Params{
		Source:       api,
		Feed:         feed,
		PollInterval: cfg.API.PollInterval,
		ArchiveKeep:  cfg.Archive.Keep,
	}
	if cfg.Archive.Enabled {
		repos, err := repository.NewRepositories(ctx, repository.Config{DSN: cfg.Archive.DSN})
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() {
			if err := repos.Close(); err != nil {
				lgr.Printf("[WARN] can't close archive, %v", err)
			}
		}()
		dashParams.Archive = repos.Article
		dashParams.Filters = repos.Setting
		lgr.Printf("[INFO] archive enabled, keep %d articles", cfg.Archive.Keep)
	}
	dash := dashboard.New(dashParams)

	status := &connectionStatus{health: client.Health(), router: router, keepalive: keepalive, feed: feed}
	srv := server.New(cfg, dash, client, status, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return client.Run(gctx) })
	g.Go(func() error {
		keepalive.Run(gctx)
		return nil
	})
	g.Go(func() error { return dash.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		logHealth(gctx, client.Health())
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// logHealth reports connection state changes
func logHealth(ctx context.Context, health *stream.Health) {
	updates, unsubscribe := health.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case h, ok := <-updates:
			if !ok {
				return
			}
			if h.LastError != "" {
				lgr.Printf("[INFO] stream %s, attempts %d, %s", h.State, h.Attempts, h.LastError)
				continue
			}
			lgr.Printf("[INFO] stream %s", h.State)
		}
	}
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
