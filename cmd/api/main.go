package main

import (
	"context"
	"log"

	"github.com/leadhive/leadhive-backend/config"
	"github.com/leadhive/leadhive-backend/internal/auth"
	"github.com/leadhive/leadhive-backend/internal/bootstrap"
	leadsrepo "github.com/leadhive/leadhive-backend/internal/leads/repository"
	matchingdomain "github.com/leadhive/leadhive-backend/internal/matching/domain"
	"github.com/leadhive/leadhive-backend/internal/notify"
	"github.com/leadhive/leadhive-backend/internal/sweeper"

	firebaseauth "firebase.google.com/go/v4/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQL(&cfg.Database)
	if err != nil {
		log.Fatalf("open sql db: %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer rdb.Close()

	var authClient *firebaseauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("init firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, using dev header auth")
	}

	leadRepo := leadsrepo.NewLeadRepository(pool)
	sweep := sweeper.New(leadRepo, rdb, notify.NewRedisNotifier(rdb), cfg.Sweep.IntervalHours)
	if err := sweep.Start(ctx); err != nil {
		log.Fatalf("start sweeper: %v", err)
	}
	defer sweep.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "leadhive-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
		AuthClient:  authClient,
		Weights: matchingdomain.Weights{
			Category: cfg.Matching.CategoryWeight,
			Location: cfg.Matching.LocationWeight,
			Budget:   cfg.Matching.BudgetWeight,
			Industry: cfg.Matching.IndustryWeight,
		},
		RetentionDays: cfg.Sweep.RetentionDays,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
