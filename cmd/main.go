package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"financequest/cmd/cachejobs"
	"financequest/src/app"
	"financequest/src/database"
	"financequest/src/scheduler"
	"financequest/src/security"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var Version string

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, "reading .env:", err)
	}
	setupLogger()

	cliApp := cli.NewApp()
	cliApp.Name = "FinanceQuest CMD"
	cliApp.Usage = "The FinanceQuest market cache command line interface"
	cliApp.Version = Version

	cliApp.Commands = []cli.Command{
		updateCacheCMD,
		cleanupGamesCMD,
		prefetchCMD,
		backfillCMD,
		schedulerCMD,
		hashSecretCMD,
	}

	if err := cliApp.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger() {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

var (
	updateCacheCMD = cli.Command{
		Name:  "update_cache",
		Usage: "fetch the latest end-of-day closes",
		Action: withJobs("update_cache", func(ctx context.Context, c *cli.Context, jobs *cachejobs.CacheJobs) error {
			return jobs.UpdateCache(ctx)
		}),
		Description: `Refresh yesterday and today for the whole asset universe`,
	}
	cleanupGamesCMD = cli.Command{
		Name:  "cleanup_games",
		Usage: "delete completed games past retention",
		Action: withJobs("cleanup_games", func(ctx context.Context, c *cli.Context, jobs *cachejobs.CacheJobs) error {
			return jobs.CleanupGames(ctx)
		}),
		Description: `Delete completed games whose last update is older than CLEANUP_RETENTION_DAYS`,
	}
	prefetchCMD = cli.Command{
		Name:  "prefetch",
		Usage: "warm the cache for a game start date",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "start-date", Usage: "YYYY-MM-DD, defaults to the previous business day"},
		},
		Action: withJobs("prefetch", func(ctx context.Context, c *cli.Context, jobs *cachejobs.CacheJobs) error {
			return jobs.Prefetch(ctx, c.String("start-date"))
		}),
		Description: `Run the smart prefetch for the lookback window ending at start-date`,
	}
	backfillCMD = cli.Command{
		Name:        "backfill",
		Usage:       "load symbol history up to today",
		Action:      withJobs("backfill", func(ctx context.Context, c *cli.Context, jobs *cachejobs.CacheJobs) error { return jobs.Backfill(ctx) }),
		Description: `Backfill BACKFILL_SYMBOLS (default: all) from BACKFILL_FROM or the newest cached day`,
	}
	schedulerCMD = cli.Command{
		Name:  "scheduler",
		Usage: "run the periodic jobs in process",
		Action: withJobs("scheduler", func(ctx context.Context, c *cli.Context, jobs *cachejobs.CacheJobs) error {
			return jobs.Schedule(ctx, scheduler.GetConfig())
		}),
		Description: `Run update_cache and cleanup_games on SCHEDULE_UPDATE_CACHE and SCHEDULE_CLEANUP_GAMES`,
	}
	hashSecretCMD = cli.Command{
		Name:        "hash_secret",
		Usage:       "print a bcrypt hash for CRON_SECRET_HASH",
		ArgsUsage:   "<secret>",
		Action:      hashSecretAction,
		Description: `Hash a cron secret so only the hash needs to live in the environment`,
	}
)

// withJobs connects to the database, wires the services and runs fn until it returns or
// the process is interrupted.
func withJobs(name string, fn func(ctx context.Context, c *cli.Context, jobs *cachejobs.CacheJobs) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		log := logrus.WithField("cmd", name)
		log.Info("Starting CMD")

		if err := database.InitMainDB(); err != nil {
			log.WithError(err).Error("Failed to connect to database")
			return err
		}
		a, err := app.New(database.MainDB, nil)
		if err != nil {
			log.WithError(err).Error("Failed to wire services")
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := fn(ctx, c, cachejobs.New(a, log)); err != nil {
			log.WithError(err).Error("CMD failed")
			return err
		}
		log.Info("CMD finished")
		return nil
	}
}

func hashSecretAction(c *cli.Context) error {
	secret := c.Args().First()
	if secret == "" {
		return errors.New("usage: hash_secret <secret>")
	}
	hash, err := security.HashSecret(secret)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
