package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app"
	authjwt "github.com/Black-And-White-Club/hackathon-judging/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/Black-And-White-Club/hackathon-judging/config"
	"github.com/Black-And-White-Club/hackathon-judging/db/bundb"
	"github.com/Black-And-White-Club/hackathon-judging/db/seed"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "hackathon-judging",
		Usage: "hackathon judging and leaderboard service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			seedCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			return application.Run(ctx)
		},
	}
}

func seedCommand() *cli.Command {
	defaults := seed.DefaultOptions()
	return &cli.Command{
		Name:  "seed",
		Usage: "create a fake hackathon with judges, projects and criteria",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "teams", Value: defaults.Teams},
			&cli.IntFlag{Name: "projects-per-team", Value: defaults.ProjectsPerTeam},
			&cli.IntFlag{Name: "judges", Value: defaults.Judges},
			&cli.IntFlag{Name: "participants", Value: defaults.Participants},
			&cli.IntFlag{Name: "criteria", Value: defaults.Criteria},
			&cli.Int64Flag{Name: "seed", Usage: "random seed; defaults to the current time"},
			&cli.DurationFlag{Name: "token-ttl", Value: 24 * time.Hour, Usage: "lifetime of the printed bearer tokens"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runSeed(c, cfg)
		},
	}
}

func runSeed(c *cli.Context, cfg *config.Config) error {
	ctx := c.Context
	logger := observability.NewLogger(cfg.Observability.Environment, config.ToObsConfig(cfg).LogLevel, os.Stderr)

	db, err := bundb.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := bundb.Migrate(ctx, db, logger); err != nil {
		return err
	}

	var gen *seed.Generator
	if c.IsSet("seed") {
		gen = seed.NewGenerator(c.Int64("seed"))
	} else {
		gen = seed.NewGenerator()
	}

	res, err := gen.Seed(ctx, db, seed.Options{
		Teams:           c.Int("teams"),
		ProjectsPerTeam: c.Int("projects-per-team"),
		Judges:          c.Int("judges"),
		Participants:    c.Int("participants"),
		Criteria:        c.Int("criteria"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Seed:         %d\n", gen.SeedValue())
	fmt.Printf("Hackathon:    %s\n", res.HackathonID)
	fmt.Printf("Organizer:    %s\n", res.OrganizerID)
	for _, id := range res.JudgeIDs {
		fmt.Printf("Judge:        %s\n", id)
	}

	if cfg.JWT.Secret == "" {
		return nil
	}
	provider := authjwt.NewProvider(cfg.JWT.Secret)
	ttl := c.Duration("token-ttl")
	token, err := provider.GenerateToken(res.OrganizerID, ttl)
	if err != nil {
		return err
	}
	fmt.Printf("Organizer token: %s\n", token)
	for _, id := range res.JudgeIDs {
		token, err := provider.GenerateToken(id, ttl)
		if err != nil {
			return err
		}
		fmt.Printf("Judge %s token: %s\n", id, token)
	}
	return nil
}
