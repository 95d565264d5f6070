package cmd

import (
	"fmt"
	"log"

	"github.com/junaidrashid-git/trendy-shop/config"
	"github.com/junaidrashid-git/trendy-shop/store"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample catalog if the products collection is empty",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	url, err := config.LoadDatabaseURL()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := store.Open(ctx, url)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer s.Close()

	seeded, err := store.SeedCatalogIfEmpty(ctx, s)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if !seeded {
		log.Println("ℹ️ Catalog already has products, nothing to do")
	}
	return nil
}
