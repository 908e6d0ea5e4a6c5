package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-riddle-service/internal/app"
	"daily-riddle-service/internal/config"
	"daily-riddle-service/internal/domain"
	"daily-riddle-service/internal/infra/memory"
	pgstore "daily-riddle-service/internal/infra/postgres"
	redisinfra "daily-riddle-service/internal/infra/redis"
	transport "daily-riddle-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the riddle server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	window, err := app.NewWindow(
		defaultString(cfg.Window.Timezone, "Asia/Riyadh"),
		defaultString(cfg.Window.Opens, "21:00"),
		defaultString(cfg.Window.Closes, "21:05"),
	)
	if err != nil {
		return err
	}

	policy, err := app.PolicyByName(cfg.Scoring.Policy)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.SessionTTL, 24*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var users app.UserStore = memory.NewUserStore()
	var identities app.IdentityStore = memory.NewIdentityStore()
	var riddles app.RiddleSource
	if pool != nil {
		users = pgstore.NewUserStore(pool)
		identities = pgstore.NewIdentityStore(pool)
		riddles = pgstore.NewRiddleLoader(pool, cfg.Riddle.Pool)
	} else {
		riddles, err = memory.NewPoolSource(samplePool())
		if err != nil {
			return err
		}
	}

	riddleTTL := config.TTLDuration(cfg.Riddle.TTL, time.Hour)
	var sessions app.SessionStore = memory.NewSessionStore()
	var board app.BoardCache
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
		riddles = redisinfra.NewRiddleSource(redisClient, riddles, riddleTTL)
		board = redisinfra.NewBoardCache(redisClient, 30*time.Second)
	}

	service := app.NewGameService(app.Deps{
		Users:      users,
		Identities: identities,
		Sessions:   sessions,
		Riddles:    riddles,
		Board:      board,
		Window:     window,
		Policy:     policy,
		BoardSize:  cfg.Leaderboard.Size,
	})
	handler := transport.NewHandler(service)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting riddle service on :%s (window %s-%s %s, policy %s)",
			finalPort,
			defaultString(cfg.Window.Opens, "21:00"),
			defaultString(cfg.Window.Closes, "21:05"),
			defaultString(cfg.Window.Timezone, "Asia/Riyadh"),
			policy.Name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func defaultString(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	return raw
}

// samplePool provides demo riddles; production deployments load the pool
// from the riddle_pools table instead.
func samplePool() []domain.Riddle {
	return []domain.Riddle{
		{
			Question: "What has keys but opens no locks?",
			Options:  []string{"A map", "A piano", "A clock", "A book"},
			Answer:   "A piano",
		},
		{
			Question: "What gets wetter the more it dries?",
			Options:  []string{"A sponge", "A river", "A towel", "A cloud"},
			Answer:   "A towel",
		},
		{
			Question: "The more you take, the more you leave behind. What are they?",
			Options:  []string{"Memories", "Footsteps", "Coins", "Breaths"},
			Answer:   "Footsteps",
		},
	}
}
