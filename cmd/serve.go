package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/dependency"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shopbot HTTP server and chat channels",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	c, err := dependency.New(cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}
	log := c.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.Janitor().Start(); err != nil {
		return err
	}
	defer c.Janitor().Stop()

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Server().Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := c.AgentLoop().Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("agent loop: %w", err)
		}
		return nil
	})

	if names := c.Channels().EnabledChannels(); len(names) > 0 {
		log.Info("starting chat channels", "channels", names)
		g.Go(func() error {
			if err := c.Channels().StartAll(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("channels: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	fmt.Printf("%s shopbot is up on %s\n", logo, cfg.Server.Addr)
	return g.Wait()
}
