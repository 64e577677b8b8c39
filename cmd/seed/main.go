package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Dan9191/risk-engine/internal/config"
	"github.com/Dan9191/risk-engine/internal/middleware"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/Dan9191/risk-engine/internal/repository"
	"github.com/Dan9191/risk-engine/internal/seed"
	"github.com/sirupsen/logrus"
)

func main() {
	tokenFor := flag.String("token", "", "also print a bearer token for this operator subject")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewRepository(db, cfg.DBDriver)
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	ds, err := seed.NewGenerator(cfg.Seed, time.Now()).Generate(seed.Personas)
	if err != nil {
		logger.Fatalf("Failed to generate demo data: %v", err)
	}
	if err := seed.Load(ctx, repo, ds); err != nil {
		logger.Fatalf("Failed to load demo data: %v", err)
	}

	byStatus := map[models.Status]int{}
	for _, u := range ds.Users {
		byStatus[u.Status]++
	}
	logger.WithFields(logrus.Fields{
		"seed":         cfg.Seed,
		"users":        len(ds.Users),
		"accounts":     len(ds.Accounts),
		"transactions": len(ds.Transactions),
		"loans":        len(ds.Loans),
		"exposure":     ds.Exposure(),
		"emergency":    byStatus[models.StatusEmergency],
		"critical":     byStatus[models.StatusCritical],
		"warning":      byStatus[models.StatusWarning],
		"safe":         byStatus[models.StatusSafe],
		"clean":        byStatus[models.StatusClean],
	}).Info("Demo data loaded")

	if *tokenFor != "" {
		token, err := middleware.IssueToken(cfg.JWTSecret, *tokenFor, 24*time.Hour)
		if err != nil {
			logger.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
	}
}
