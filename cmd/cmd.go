// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the config file and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file and initialize the database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// serveCommand runs the Telegram bot until interrupted.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the Telegram bot",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Serve,
	}
}

// migrateCommand handles schema migrations.
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Database migration commands",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply pending migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateUp,
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateDown,
			},
		},
	}
}

// generateCommand runs the generation pipeline once, without the bot.
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate one idea from the command line",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "category",
				Usage:    "Category to generate the idea in",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "user",
				Usage: "User id to attribute the idea to",
				Value: 0,
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "Mirror the idea to the workspace",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the idea as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Generate,
	}
}

// usersCommand manages the allow-list.
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage the allow-list",
		Commands: []*cli.Command{
			{
				Name:  "allow",
				Usage: "Add a Telegram user id to the allow-list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersAllow,
			},
			{
				Name:  "revoke",
				Usage: "Remove a Telegram user id from the allow-list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersRevoke,
			},
		},
	}
}
