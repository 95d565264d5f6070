package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/junaidrashid-git/trendy-shop/config"
	"github.com/junaidrashid-git/trendy-shop/payment"
	"github.com/junaidrashid-git/trendy-shop/routes"
	"github.com/spf13/cobra"
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Start the payment simulator",
	Long: `Start the payment simulator. Charges succeed at PAYMENT_SUCCESS_RATE
(default 0.9) after PAYMENT_DELAY (default 1s). Transactions live in memory and
are lost on restart.`,
	RunE: runPayment,
}

func init() {
	rootCmd.AddCommand(paymentCmd)

	paymentCmd.Flags().Int("port", 0, "port to listen on (default 5001 or $PORT)")
}

func runPayment(cmd *cobra.Command, args []string) error {
	log.Println("✅ Starting payment service...")

	cfg, err := config.LoadPayment(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, closePublisher := newPublisher(cfg.KafkaBrokers)
	defer closePublisher()

	svc := payment.NewService(payment.NewLedger(),
		payment.WithDecider(payment.RandomDecider{Rate: cfg.SuccessRate}),
		payment.WithDelay(cfg.Delay),
		payment.WithPublisher(publisher),
	)
	log.Printf("💳 Success rate %.0f%%, delay %s", cfg.SuccessRate*100, cfg.Delay)

	r := routes.NewRouter()
	routes.SetupPaymentRoutes(r, svc)
	return serve(ctx, cfg.Port, r)
}
