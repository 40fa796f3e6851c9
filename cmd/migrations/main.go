package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/footagedesk/catalogsync/pkg/config"
	"github.com/footagedesk/catalogsync/pkg/database"
	"github.com/footagedesk/catalogsync/pkg/migrations"
	"github.com/joho/godotenv"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	newMigrator := func() *migrate.Migrator {
		return migrate.NewMigrator(db, migrations.Migrations)
	}

	app := &cli.App{
		Name:  "migrations",
		Usage: "manage the catalogsync schema",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					migrator := newMigrator()
					if err := migrator.Init(c.Context); err != nil {
						return err
					}

					group, err := migrator.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.ID == 0 {
						fmt.Println("schema already up to date")
						return nil
					}

					fmt.Printf("applied %s\n", group)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "revert the most recent migration group",
				Action: func(c *cli.Context) error {
					group, err := newMigrator().Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.ID == 0 {
						fmt.Println("nothing to roll back")
						return nil
					}

					fmt.Printf("rolled back %s\n", group)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "show applied and pending migrations",
				Action: func(c *cli.Context) error {
					ms, err := newMigrator().MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}

					fmt.Printf("migrations: %s\n", ms)
					fmt.Printf("pending: %s\n", ms.Unapplied())
					fmt.Printf("last group: %s\n", ms.LastGroup())
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "scaffold a new Go migration file",
				ArgsUsage: "<name words>",
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), "_")
					mf, err := newMigrator().CreateGoMigration(
						c.Context,
						name,
						migrate.WithGoTemplate(migrationTemplate),
					)
					if err != nil {
						return err
					}

					fmt.Printf("created %s (%s)\n", mf.Name, mf.Path)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
`
