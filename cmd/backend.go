package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/junaidrashid-git/trendy-shop/auth"
	"github.com/junaidrashid-git/trendy-shop/config"
	orderControllers "github.com/junaidrashid-git/trendy-shop/controllers/order"
	"github.com/junaidrashid-git/trendy-shop/payclient"
	"github.com/junaidrashid-git/trendy-shop/routes"
	"github.com/junaidrashid-git/trendy-shop/store"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Start the catalog, identity and order service",
	Long: `Start the catalog service. It needs DATABASE_URL (or MONGODB_URI) and
JWT_SECRET. REDIS_ADDR enables the product cache and KAFKA_BROKERS enables
order events. The sample catalog is seeded on first start.`,
	RunE: runBackend,
}

func init() {
	rootCmd.AddCommand(backendCmd)

	backendCmd.Flags().Int("port", 0, "port to listen on (default 5000 or $PORT)")
}

func runBackend(cmd *cobra.Command, args []string) error {
	log.Println("✅ Starting backend service...")

	cfg, err := config.LoadBackend(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := store.SeedCatalogIfEmpty(ctx, s); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	publisher, closePublisher := newPublisher(cfg.KafkaBrokers)
	defer closePublisher()

	if cfg.AdminAPIKey == "" {
		log.Println("⚠️ ADMIN_API_KEY not set, admin routes are disabled")
	}

	r := routes.NewRouter()
	routes.SetupRoutes(r, routes.Backend{
		Store:       s,
		Tokens:      tokens,
		Orders:      orderControllers.NewController(s, payclient.New(cfg.PaymentServiceURL, nil), publisher, nil),
		AdminAPIKey: cfg.AdminAPIKey,
	})
	return serve(ctx, cfg.Port, r)
}

// openStore connects the configured database and, with REDIS_ADDR set, puts
// the product cache in front of it.
func openStore(ctx context.Context, cfg *config.Backend) (store.Store, func(), error) {
	s, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("✅ Database connected")

	if cfg.RedisAddr == "" {
		return s, func() { _ = s.Close() }, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The cache treats redis errors as misses, so keep it and let it recover.
		log.Printf("⚠️ Redis at %s not reachable yet: %v", cfg.RedisAddr, err)
	} else {
		log.Printf("✅ Product cache enabled at %s", cfg.RedisAddr)
	}
	cached := store.NewCached(s, rdb, cfg.CacheTTL)
	return cached, func() {
		_ = rdb.Close()
		_ = s.Close()
	}, nil
}
