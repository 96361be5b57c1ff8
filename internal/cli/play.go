package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/logger"
	"trivia-quiz/internal/tui"
)

// NewPlayCmd builds the subcommand that runs the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath)
		},
	}
}

func runPlay(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// The terminal belongs to the UI, so logs go to a file.
	log, err := logger.New(cfg.Env, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	var game *app.Game
	ui := tui.New(func(ev app.Event) { game.Post(ev) })
	game = app.NewGame(d.categories, d.questions, ui, log, d.opts)

	go func() {
		if err := game.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("game stopped", zap.Error(err))
		}
	}()

	log.Info("terminal session started")
	return ui.Run()
}
