package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	adapthttp "bodycomp/internal/adapter/http"
	"bodycomp/internal/app"
	"bodycomp/internal/metrics"
)

// ServeCmd runs the HTTP API and web UI.
type ServeCmd struct {
	Addr string `help:"Listen address. Overrides BODYCOMP_ADDR."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if !cfg.AuthDisabled && cfg.OwnerUsername == "" {
		return errors.New("BODYCOMP_OWNER_USERNAME is required unless BODYCOMP_AUTH_DISABLED=true")
	}

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	var opts []app.Option
	if cfg.MetricsEnabled {
		m = metrics.New()
		opts = append(opts, app.WithRecorder(m))
	}
	entries, backend, closeFn, err := ctx.entries(base, opts...)
	if err != nil {
		return err
	}
	defer closeFn()

	charts := app.NewChartsService(entries)
	authSvc := app.NewAuthService(app.Owner{Username: cfg.OwnerUsername, PasswordHash: cfg.OwnerPasswordHash}, backend.Sessions)

	srv := adapthttp.New(entries, charts, authSvc, cfg.WebDir)
	if cfg.AuthDisabled {
		log.Printf("authentication disabled")
		srv.WithoutAuth()
	}
	if cfg.TrustForwardAuth {
		proxies, err := cfg.ProxyPrefixes()
		if err != nil {
			return err
		}
		log.Printf("trusting Remote-User from %d proxy prefixes", len(proxies))
		srv.WithForwardAuth(proxies)
	}
	if cfg.OIDC.Enabled() {
		oc, err := adapthttp.NewOIDCConfig(base, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return err
		}
		srv.WithOIDC(oc)
	}
	if m != nil {
		srv.WithMetrics(m, m.Handler())
	}

	go pruneSessions(base, authSvc, time.Hour)

	hs := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()
	log.Printf("listening on %s (store=%s, %d entries)", cfg.Addr, cfg.Store, len(entries.List()))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-base.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

func pruneSessions(ctx context.Context, authSvc *app.AuthService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := authSvc.PruneSessions(ctx); err != nil {
				log.Printf("prune sessions: %v", err)
			}
		}
	}
}

// HashPasswordCmd prints the bcrypt hash for BODYCOMP_OWNER_PASSWORD_HASH.
type HashPasswordCmd struct {
	Password string `arg:"" optional:"" help:"Password to hash. Read from stdin when omitted."`
}

func (c *HashPasswordCmd) Run(ctx *Context) error {
	password := c.Password
	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	hash, err := app.HashPassword(password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(ctx.Out, hash)
	return nil
}
