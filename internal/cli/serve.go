package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/logger"
	transport "trivia-quiz/internal/transport/http"
	"trivia-quiz/web"
)

// NewServeCmd builds the subcommand that serves the browser UI.
func NewServeCmd(configPath, port *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz in the browser over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
	cmd.Flags().StringVar(port, "port", os.Getenv("PORT"), "port to listen on (overrides config)")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, "")
	if err != nil {
		return err
	}
	defer log.Sync()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	wsHandler := transport.NewWSHandler(d.categories, d.questions, d.opts, log)
	router := transport.NewRouter(wsHandler, d.categories, web.Handler(), log)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting trivia server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
