package main

import (
	"context"
	"flag"
	"log"

	"k8s.io/klog/v2"

	"github.com/goodman-rb/ai-content-studio/config"
	"github.com/goodman-rb/ai-content-studio/internal/eventbus"
	"github.com/goodman-rb/ai-content-studio/internal/handler"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/cache"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/database"
	"github.com/goodman-rb/ai-content-studio/internal/pkg/llm"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
	"github.com/goodman-rb/ai-content-studio/internal/router"
	"github.com/goodman-rb/ai-content-studio/internal/service"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg := config.GetConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.SeedDefaults(db); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	promptRepo := repository.NewPromptRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	postRepo := repository.NewPostRepository(db)

	refCache := cache.New()
	llmClient := llm.NewClient(cfg)

	builder := service.NewPromptBuilder(cfg, promptRepo, settingRepo, refCache)
	draftService := service.NewDraftService(cfg, builder, llmClient, postRepo, refCache)
	planService := service.NewPlanService(postRepo, refCache)
	settingsService := service.NewSettingsService(settingRepo, promptRepo, serviceRepo, discountRepo, refCache)

	bus := eventbus.NewPlanEventBus()
	for _, eventType := range []eventbus.PlanEventType{eventbus.PostScheduled, eventbus.PostUpdated, eventbus.PostDeleted} {
		bus.Subscribe(eventType, func(_ context.Context, event eventbus.PlanEvent) error {
			klog.Infof("content plan changed: %s %s", event.Type, event.PostID)
			return nil
		})
	}
	draftService.SetEventBus(bus)
	planService.SetEventBus(bus)

	draftHandler := handler.NewDraftHandler(draftService, settingsService)
	planHandler := handler.NewPlanHandler(planService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	r := router.Setup(cfg, draftHandler, planHandler, settingsHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
