package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"theagency-bot/internal/access"
	"theagency-bot/internal/bot"
	"theagency-bot/internal/cache"
	"theagency-bot/internal/config"
	"theagency-bot/internal/economy"
	"theagency-bot/internal/handler"
	"theagency-bot/internal/moderation"
	"theagency-bot/internal/router"
	"theagency-bot/internal/store"
	"theagency-bot/internal/welcome"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting TheAgency bot...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize document store based on config
	var st store.Store
	switch cfg.Store.Type {
	case "mysql":
		mysqlStore, err := store.NewMySQLStore(cfg.Store.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL store: %v", err)
		}
		st = mysqlStore
		log.Println("MySQL store initialized")
	case "memory":
		st = store.NewMemoryStore()
		log.Println("In-memory store initialized (data will not survive restarts)")
	default: // sqlite
		sqliteStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite store: %v", err)
		}
		st = sqliteStore
		log.Println("SQLite store initialized")
	}
	defer st.Close()

	// Initialize response cache
	var responseCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			responseCache = cache.NewMemoryCache()
		} else {
			responseCache = redisCache
			log.Println("Redis cache initialized")
		}
	default:
		responseCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}
	defer responseCache.Close()

	// Initialize services
	ledger := economy.NewLedger(st)
	rewards := economy.NewRewards(ledger, map[economy.ClaimKind]economy.ClaimPolicy{
		economy.ClaimDaily: {
			Cooldown: cfg.Economy.DailyCooldown,
			Reward:   economy.RandomReward(cfg.Economy.DailyMin, cfg.Economy.DailyMax),
		},
		economy.ClaimWork: {
			Cooldown: cfg.Economy.WorkCooldown,
			Reward:   economy.RandomReward(cfg.Economy.WorkMin, cfg.Economy.WorkMax),
		},
	})
	shop := economy.NewShop(st, ledger)
	leaderboard := economy.NewLeaderboard(st)
	warnings := moderation.NewWarnings(st)
	accessControl := access.NewControl(st, cfg.Access.Superusers, cfg.Access.SensitiveUsers)
	welcomeService := welcome.NewService(st)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version, cfg.App.Environment)
	economyHandler := handler.NewEconomyHandler(ledger, leaderboard, responseCache)

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		EconomyHandler:    economyHandler,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start API server in goroutine
	go func() {
		log.Printf("API server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Start Discord bot (optional when no token is configured, e.g. API-only mode)
	var discordBot *bot.Bot
	if cfg.Discord.Token != "" {
		var err error
		discordBot, err = bot.New(cfg, bot.Deps{
			Ledger:      ledger,
			Rewards:     rewards,
			Shop:        shop,
			Leaderboard: leaderboard,
			Warnings:    warnings,
			Access:      accessControl,
			Welcome:     welcomeService,
		})
		if err != nil {
			log.Fatalf("Failed to create Discord bot: %v", err)
		}
		if err := discordBot.Start(); err != nil {
			log.Fatalf("Failed to connect to Discord: %v", err)
		}
		log.Println("Discord bot connected")
	} else {
		log.Println("Warning: DISCORD_TOKEN not set, running API only")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	if discordBot != nil {
		if err := discordBot.Stop(); err != nil {
			log.Printf("Discord shutdown error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Stopped")
}
