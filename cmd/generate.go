package main

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/mxsolis/contentbot/internal/shared"
	"github.com/urfave/cli/v3"
)

// Generate runs the pipeline once from the command line, useful for testing
// credentials and prompt quality without going through the bot.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if config.Credentials.Gemini.APIKey == "" {
		return fmt.Errorf("%w: gemini api key", shared.ErrMissingConfig)
	}

	category := cmd.String("category")
	userID := cmd.Int("user")

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	engine := r.buildEngine(config, db, cmd.Bool("publish"))

	r.writeTitle(fmt.Sprintf("Generating idea in %q", category))
	idea, err := engine.GenerateAndSave(ctx, int64(userID), category)
	if err != nil {
		r.writeErr("generation failed")
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(idea, cmd.Bool("pretty"))
	}

	printer := pp.New()
	printer.SetOutput(r.output)
	printer.SetColoringEnabled(cmd.Bool("pretty"))
	printer.Println(idea)

	r.writeOK("idea saved")
	return nil
}
