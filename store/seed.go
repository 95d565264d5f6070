package store

import (
	"context"
	"log"

	"github.com/junaidrashid-git/trendy-shop/models"
)

// SampleProducts is the catalog inserted into an empty store.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Premium Cotton T-Shirt",
			Price:       29.99,
			Description: "High-quality cotton t-shirt",
			Category:    "Fashion",
			Image:       "👕",
			Rating:      4.5,
			ReviewCount: 128,
			Badge:       "New",
			Stock:       50,
		},
		{
			Name:        "Wireless Bluetooth Headphones",
			Price:       89.99,
			Description: "Premium wireless headphones",
			Category:    "Electronics",
			Image:       "🎧",
			Rating:      4.8,
			ReviewCount: 256,
			Badge:       "Best Seller",
			Stock:       30,
		},
		{
			Name:        "Smart Fitness Watch",
			Price:       199.99,
			Description: "Advanced fitness tracking watch",
			Category:    "Electronics",
			Image:       "⌚",
			Rating:      4.6,
			ReviewCount: 89,
			Badge:       "Sale",
			Stock:       20,
		},
		{
			Name:        "Organic Cotton Socks",
			Price:       12.99,
			Description: "Comfortable organic cotton socks",
			Category:    "Fashion",
			Image:       "🧦",
			Rating:      4.3,
			ReviewCount: 67,
			Stock:       100,
		},
		{
			Name:        "Ceramic Coffee Mug Set",
			Price:       24.99,
			Description: "Beautiful ceramic coffee mugs",
			Category:    "Home & Living",
			Image:       "☕",
			Rating:      4.7,
			ReviewCount: 156,
			Badge:       "Popular",
			Stock:       40,
		},
	}
}

// SeedCatalogIfEmpty inserts SampleProducts when the catalog has no products and
// reports whether it did. Two processes starting at once can both see an empty
// catalog; there is no lock around the count.
func SeedCatalogIfEmpty(ctx context.Context, s Store) (bool, error) {
	n, err := s.CountProducts(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := s.InsertProducts(ctx, SampleProducts()); err != nil {
		return false, err
	}
	log.Println("✅ Sample products initialized")
	return true, nil
}
