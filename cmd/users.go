package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mxsolis/contentbot/internal/repositories"
	"github.com/mxsolis/contentbot/internal/shared"
	"github.com/urfave/cli/v3"
)

func parseUserID(cmd *cli.Command) (int64, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: user id %q", shared.ErrInvalidInput, raw)
	}
	return id, nil
}

// UsersAllow adds a Telegram user id to the allow-list.
func (r *Runner) UsersAllow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseUserID(cmd)
	if err != nil {
		return err
	}

	config := r.loadConfig(cmd.String("config"))
	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewUserRepository(db).Allow(ctx, id); err != nil {
		return err
	}
	r.writeOK("user %d allowed", id)
	return nil
}

// UsersRevoke removes a Telegram user id from the allow-list.
func (r *Runner) UsersRevoke(ctx context.Context, cmd *cli.Command) error {
	id, err := parseUserID(cmd)
	if err != nil {
		return err
	}

	config := r.loadConfig(cmd.String("config"))
	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewUserRepository(db).Revoke(ctx, id); err != nil {
		return err
	}
	r.writeOK("user %d revoked", id)
	return nil
}
