// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/junaidrashid-git/trendy-shop/auth"
	"github.com/junaidrashid-git/trendy-shop/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewStore returns a migrated gorm store on a private in-memory sqlite database.
// It is closed when the test ends.
func NewStore(t *testing.T) *store.Gorm {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a fresh database, so keep exactly one.
	sqlDB.SetMaxOpenConns(1)

	s, err := store.NewGorm(db)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// NewSeededStore is NewStore with the sample catalog already inserted.
func NewSeededStore(t *testing.T) *store.Gorm {
	t.Helper()

	s := NewStore(t)
	if _, err := store.SeedCatalogIfEmpty(context.Background(), s); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return s
}

const TokenSecret = "test-secret"

func NewTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()

	tm, err := auth.NewTokenManager(TokenSecret, 24*time.Hour)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return tm
}

// SampleNames lists the names of the seeded products.
func SampleNames() []string {
	var names []string
	for _, p := range store.SampleProducts() {
		names = append(names, p.Name)
	}
	return names
}
