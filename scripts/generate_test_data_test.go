package main

import (
	"context"
	"testing"

	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const expectedSeedCount = 15

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:content-seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gdb
}

func TestSeedContentIsIdempotent(t *testing.T) {
	catalog := service.NewCatalog(setupSeedTestDB(t), service.Dependencies{})
	ctx := context.Background()

	created, err := seedContent(ctx, catalog)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if created != expectedSeedCount {
		t.Fatalf("expected %d seeded records, got %d", expectedSeedCount, created)
	}

	again, err := seedContent(ctx, catalog)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected second run to skip everything, created %d", again)
	}

	page, err := catalog.Pages.GetPublicBy(ctx, "slug", "contato")
	if err != nil {
		t.Fatalf("expected contato page: %v", err)
	}
	if page.ContentHTML == "" {
		t.Fatalf("expected rendered page content")
	}

	links, err := catalog.Links.ListPublic(ctx, 1, 0)
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links.Items) != 3 || links.Items[0].Name != "TJ-RJ" {
		t.Fatalf("unexpected links: %+v", links.Items)
	}
}
