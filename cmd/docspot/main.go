// Command docspot is the terminal client for the booking service. Every
// command runs against the configured backend; only the signed-in identity
// survives between invocations.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"docspot/internal/backend"
	"docspot/internal/config"
	"docspot/internal/logging"
	"docspot/internal/remote"
	"docspot/internal/session"
	"docspot/internal/store"
	"docspot/internal/view"
)

type app struct {
	log      *logrus.Logger
	storage  store.Storage
	svc      backend.Service
	sess     *session.Store
	ws       *view.Workspace
	restored bool
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	var svc backend.Service
	closers := []func() error{st.Close}
	switch cfg.Backend {
	case config.BackendGRPC:
		c, err := remote.Dial(cfg.BackendAddr, log)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		svc = c
		closers = append(closers, c.Close)
	default:
		svc = backend.NewSimulated(backend.WithLatency(cfg.Latency), backend.WithLogger(log))
	}

	a := build(st, svc, log)
	a.closers = closers
	return a, nil
}

func build(st store.Storage, svc backend.Service, log *logrus.Logger) *app {
	sess := session.New(st, svc, log)
	return &app{
		log:     log,
		storage: st,
		svc:     svc,
		sess:    sess,
		ws:      view.NewWorkspace(sess, svc, log),
	}
}

// restore loads the persisted identity once per process.
func (a *app) restore(ctx context.Context) {
	if a.restored {
		return
	}
	a.restored = true
	a.sess.Restore(ctx)
}

func (a *app) Close() {
	a.ws.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Warn("close failed")
		}
	}
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := rootCmd(a)
	root.AddCommand(shellCmd(a))
	err = root.ExecuteContext(ctx)
	a.Close()
	if err != nil {
		os.Exit(1)
	}
}
