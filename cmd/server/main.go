package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/config"
	"github.com/iliyamo/lost-and-found/internal/database"
	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/queue"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/router"
	"github.com/iliyamo/lost-and-found/internal/storage"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrations: %v", err)
	}
	cancel()

	// Optional infrastructure: a missing Redis or S3 config degrades
	// features instead of blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("object storage: %v", err)
	}
	if store == nil {
		log.Println("no S3 bucket configured, image uploads disabled")
	}

	// Repositories.
	itemRepo := repository.NewItemRepo(db)
	claimRepo := repository.NewClaimRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	// Workflows.
	itemWF := workflow.NewItemWorkflow(itemRepo)
	claimWF := workflow.NewClaimWorkflow(itemRepo, claimRepo)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, userRepo, roleRepo, tokenRepo)
	itemH := handler.NewItemHandler(itemWF, itemRepo, roleRepo, store)
	claimH := handler.NewClaimHandler(claimWF, claimRepo, itemRepo)
	profileH := handler.NewProfileHandler(profileRepo, store)
	publicH := handler.NewPublicHandler(itemRepo, profileRepo)
	adminH := handler.NewAdminHandler(itemWF, roleRepo, profileRepo, adminRepo)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, config.LoadCacheConfig(), rdb)
	router.RegisterUser(e, itemH, claimH, profileH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background audit trail consumer; reconnects on its own.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
