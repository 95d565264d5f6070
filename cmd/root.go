package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/junaidrashid-git/trendy-shop/events"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Trendy Shop - catalog, orders and a payment simulator",
	Long: `Trendy Shop runs two HTTP services from one binary:

  shop backend   users, product catalog and orders (default port 5000)
  shop payment   simulated payment processor (default port 5001)

Settings come from the environment or a .env file in the working directory.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

const shutdownTimeout = 10 * time.Second

// serve runs handler on port until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on port %d...", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPublisher connects to Kafka when brokers are configured. Events are best
// effort, so an unreachable cluster downgrades to no events instead of
// stopping the service.
func newPublisher(brokers []string) (events.Publisher, func()) {
	if len(brokers) == 0 {
		return events.Nop{}, func() {}
	}
	producer, err := events.NewProducer(brokers)
	if err != nil {
		log.Printf("⚠️ Kafka unavailable, events disabled: %v", err)
		return events.Nop{}, func() {}
	}
	log.Printf("✅ Publishing events to Kafka at %v", brokers)
	return producer, func() {
		if err := producer.Close(); err != nil {
			log.Printf("❌ close kafka producer: %v", err)
		}
	}
}
