// Command seed provisions the admin account and sample content.
//
//	seed admin                   create or promote ADMIN_EMAIL
//	seed gallery                 replace the gallery with the showcase set
//	seed link-projects [-dry-run] attach ownerless projects to accounts by email
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/ports"
	"github.com/mustardworks/portfolio-api/internal/core/service"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/mustardworks/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/mustardworks/portfolio-api/internal/seed"
	"github.com/mustardworks/portfolio-api/pkg/logger"
)

const usage = `usage: seed <command> [flags]

commands:
  admin           create the admin account from ADMIN_* variables, or promote it
  gallery         replace the gallery with the showcase items
  link-projects   link ownerless projects to accounts by email (-dry-run to preview)
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Service: "portfolio-seed",
	})

	if err := run(ctx, cfg, log, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("seed failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report what would change without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "admin", "gallery", "link-projects":
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	users := mongodb.NewUserRepository(db)
	projects := mongodb.NewProjectRepository(db)
	gallery := mongodb.NewGalleryRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, projects, gallery); err != nil {
		return err
	}

	// EnsureAdmin never issues a token, so an unset secret is fine here.
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn.Duration())
	auth := service.NewAuthService(users, tokens, service.NewPasswordHasher(cfg.Auth.BcryptCost), log)
	seeder := seed.NewSeeder(auth, users, projects, gallery, service.NewGalleryService(gallery, log), log)

	switch cmd {
	case "admin":
		u, err := seeder.Admin(ctx, ports.AdminInput{
			FirstName: cfg.Admin.FirstName,
			LastName:  cfg.Admin.LastName,
			Email:     cfg.Admin.Email,
			Password:  cfg.Admin.Password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("admin ready: %s (%s)\n", u.Email, u.ID)
	case "gallery":
		n, err := seeder.Gallery(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("gallery seeded with %d items\n", n)
	case "link-projects":
		report, err := seeder.LinkProjects(ctx, *dryRun)
		if err != nil {
			return err
		}
		verb := "linked"
		if *dryRun {
			verb = "would link"
		}
		fmt.Printf("%s %d projects\n", verb, report.Linked)
		for _, id := range report.Unmatched {
			fmt.Printf("  no account for project %s\n", id)
		}
	}
	return nil
}
