package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/jobtrack/jobtrack-go/internal/client"
	"github.com/jobtrack/jobtrack-go/internal/config"
	"github.com/jobtrack/jobtrack-go/internal/dashboard"
	"github.com/jobtrack/jobtrack-go/internal/session"
	"github.com/jobtrack/jobtrack-go/internal/view"
)

// app is everything a command needs, wired from config.
type app struct {
	cfg      *config.Config
	session  *session.Session
	ctrl     *dashboard.Controller
	renderer *view.Renderer
	clock    clockwork.Clock

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	closer io.Closer
}

func newApp(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer, clock clockwork.Clock) (*app, error) {
	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sess := session.New(store)

	var opts []client.Option
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.HTTPTimeout))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	api := client.New(cfg.APIURL, sess, opts...)

	slog.Debug("jobtrack configured", "api_url", cfg.APIURL, "token_store", cfg.TokenStore)

	return &app{
		cfg:      cfg,
		session:  sess,
		ctrl:     dashboard.NewController(api, sess),
		renderer: view.NewRenderer(clock),
		clock:    clock,
		in:       bufio.NewReader(stdin),
		out:      stdout,
		errOut:   stderr,
		closer:   closer,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (session.Store, io.Closer, error) {
	switch cfg.TokenStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), nil, nil
	case config.StoreSQLite:
		store, err := session.OpenSQLiteStore(ctx, cfg.TokenPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening session database: %w", err)
		}
		return store, store, nil
	default:
		return session.NewFileStore(cfg.TokenPath), nil, nil
	}
}

func (a *app) close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		slog.Warn("failed to close session store", "error", err)
	}
}

// render prints the dashboard as it stands after a command.
func (a *app) render() {
	if err := a.renderer.Dashboard(a.out, a.ctrl.State()); err != nil {
		slog.Warn("failed to write dashboard", "error", err)
	}
}

// prompt asks for field and reads one line from stdin. Input is echoed.
func (a *app) prompt(field string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", field)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(field), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
