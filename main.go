package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fundbase/docportal/internal/config"
	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/events"
	"github.com/fundbase/docportal/internal/gelf"
	"github.com/fundbase/docportal/internal/handler"
	"github.com/fundbase/docportal/internal/repository"
	"github.com/fundbase/docportal/internal/router"
	"github.com/fundbase/docportal/internal/service"
	"github.com/fundbase/docportal/internal/storage"
)

func main() {
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Connect to OxiDB
	pool, err := db.NewPool(cfg.OxiDBHost, cfg.OxiDBPort, cfg.PoolSize)
	if err != nil {
		log.Fatalf("Failed to connect to OxiDB: %v", err)
	}
	defer pool.Close()
	log.Printf("Connected to OxiDB at %s:%d (pool size: %d)", cfg.OxiDBHost, cfg.OxiDBPort, cfg.PoolSize)

	// Blob store
	blobs, err := storage.NewBlobStore(storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to init blob store: %v", err)
	}

	// Event dispatcher with a logging subscriber for the lifetime of the
	// process.
	bus := events.NewDispatcher()
	logSub := bus.Subscribe(func(e events.Event) {
		log.Printf("event %s startup=%s detail=%s", e.Type, e.StartupID, e.Detail)
	})
	defer bus.Unsubscribe(logSub)

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	configRepo := repository.NewConfigRepo(pool)
	docRepo := repository.NewDocumentRepo(pool)
	tplRepo := repository.NewTemplateRepo(pool)
	notifRepo := repository.NewNotificationRepo(pool)
	settingsRepo := repository.NewSettingsRepo(pool)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminEmail)
	configSvc := service.NewConfigService(configRepo, docRepo, userRepo, bus)
	docSvc := service.NewDocumentService(docRepo, configSvc, blobs, bus)
	tplSvc := service.NewTemplateService(tplRepo)
	gatewaySvc := service.NewGatewayService(settingsRepo, cfg.ZAPIBaseURL, cfg.ZAPIClientToken)
	msgSvc := service.NewMessagingService(userRepo, docRepo, notifRepo, configSvc, tplSvc, gatewaySvc, bus)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	dashH := handler.NewDashboardHandler(userRepo, configSvc, docSvc)
	docH := handler.NewDocumentHandler(docSvc, userRepo)
	cfgH := handler.NewConfigHandler(configSvc)
	tplH := handler.NewTemplateHandler(tplSvc)
	msgH := handler.NewMessagingHandler(msgSvc)
	waH := handler.NewWhatsAppHandler(gatewaySvc)
	userH := handler.NewUserHandler(userRepo)

	// Router
	r := router.New(cfg.JWTSecret, authH, dashH, docH, cfgH, tplH, msgH, waH, userH)

	// Start HTTP immediately; indexes, the blob bucket, and seed data are
	// prepared in the background on a dedicated connection.
	go func() {
		log.Printf("Background init: starting")
		initPool, err := db.NewPool(cfg.OxiDBHost, cfg.OxiDBPort, 1)
		if err != nil {
			log.Printf("Warning: init pool connect failed, using main pool: %v", err)
			initPool = pool
		}
		defer func() {
			if initPool != pool {
				initPool.Close()
			}
		}()

		initUserRepo := repository.NewUserRepo(initPool)
		initConfigRepo := repository.NewConfigRepo(initPool)
		initDocRepo := repository.NewDocumentRepo(initPool)
		initTplRepo := repository.NewTemplateRepo(initPool)
		initNotifRepo := repository.NewNotificationRepo(initPool)

		log.Printf("Background init: creating indexes...")
		initUserRepo.EnsureIndexes()
		initConfigRepo.EnsureIndexes()
		initDocRepo.EnsureIndexes()
		initTplRepo.EnsureIndexes()
		initNotifRepo.EnsureIndexes()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		log.Printf("Background init: ensuring blob bucket %q...", cfg.MinioBucket)
		if err := blobs.EnsureBucket(ctx); err != nil {
			log.Printf("Warning: ensure bucket failed: %v", err)
		}

		log.Printf("Background init: seeding admin user...")
		initAuthSvc := service.NewAuthService(initUserRepo, cfg.JWTSecret, cfg.AdminEmail)
		if err := initAuthSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPass); err != nil {
			log.Printf("Warning: failed to seed admin: %v", err)
		}

		log.Printf("Background init: seeding default document config...")
		initConfigSvc := service.NewConfigService(initConfigRepo, initDocRepo, initUserRepo, bus)
		if err := initConfigSvc.SeedDefault(cfg.AdminEmail); err != nil {
			log.Printf("Warning: failed to seed default config: %v", err)
		}
		log.Printf("Background init: all done")
	}()

	log.Printf("Document portal starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
