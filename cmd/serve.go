package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mxsolis/contentbot/internal/bot"
	"github.com/mxsolis/contentbot/internal/repositories"
	"github.com/mxsolis/contentbot/internal/services"
	"github.com/mxsolis/contentbot/internal/shared"
	"github.com/mxsolis/contentbot/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve wires the full bot stack and long-polls until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(config.Credentials.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}

	engine := r.buildEngine(config, db, true)

	b := bot.NewBot(bot.Opts{
		API:       api,
		Access:    repositories.NewUserRepository(db),
		Ideas:     repositories.NewIdeaRepository(db),
		Pipeline:  engine,
		Languages: config.Content.Languages,
		Logger:    r.logger,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.writeOK("bot running as @%s, press Ctrl-C to stop", api.Self.UserName)

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	r.logger.Info("bot stopped")
	return nil
}

// buildEngine assembles the generation pipeline from config. publish=false
// swaps the workspace mirror for a no-op, used by the offline generate
// command.
func (r *Runner) buildEngine(config *shared.Config, db *sql.DB, publish bool) *tasks.PipelineEngine {
	languages := config.Content.Languages

	var publisher services.Publisher = services.NopPublisher{}
	if publish && config.Credentials.Notion.Token != "" {
		publisher = services.NewNotionService(
			config.Credentials.Notion.Token,
			config.Credentials.Notion.DatabaseID,
			languages,
			"",
			r.logger,
		)
	}

	return tasks.NewPipelineEngine(tasks.PipelineOpts{
		Store: repositories.NewIdeaRepository(db),
		Generator: services.NewGeminiService(
			config.Credentials.Gemini.APIKey,
			config.Credentials.Gemini.Model,
			languages,
			"",
			r.logger,
		),
		Media:     services.NewPexelsService(config.Credentials.Pexels.APIKey, "", r.logger),
		Publisher: publisher,
		Languages: languages,
		Logger:    r.logger,
	})
}
