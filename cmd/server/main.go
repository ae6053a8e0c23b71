package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"provest/config"
	"provest/internal/database"
	"provest/internal/jobs"
	"provest/internal/repository"
	"provest/internal/router"
	"provest/internal/service"
	"provest/pkg/cloudinary"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db)
	database.SeedPlans(db)

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatalf("cloudinary: %v", err)
	}

	// Settlement job: completes matured investments on a schedule. The
	// same repositories and service wiring as the request path, so the
	// status transition guard applies to both.
	invRepo := repository.NewInvestmentRepository(db)
	invSvc := service.NewInvestmentService(
		repository.NewPlanRepository(db),
		invRepo,
		repository.NewWalletRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewUserRepository(db),
	)
	settlement := jobs.NewSettlementJob(invRepo, invSvc)
	c := cron.New()
	if _, err := c.AddJob(cfg.Settlement.Schedule, settlement); err != nil {
		log.Fatalf("settlement schedule: %v", err)
	}
	c.Start()

	engine := router.Setup(cfg, db, cloud)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	<-c.Stop().Done()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	if err := database.Close(db); err != nil {
		log.Printf("database close: %v", err)
	}
	log.Println("server stopped")
}
