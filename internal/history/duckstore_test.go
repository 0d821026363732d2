// duckstore_test.go - Tests for DuckDB-backed conversion history
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

// createTestHistory creates a temporary DuckStore for testing
func createTestHistory(t *testing.T) (*DuckStore, func()) {
	dbPath := filepath.Join(t.TempDir(), "history_test.duckdb")

	store, err := NewDuckStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create DuckStore: %v", err)
	}

	cleanup := func() {
		store.Close()
	}

	return store, cleanup
}

// createTestRecord creates a ConversionRecord for testing
func createTestRecord(id, className string, createdAt time.Time) *models.ConversionRecord {
	return &models.ConversionRecord{
		ID:            id,
		ClassName:     className,
		Namespace:     "com.example.mobs",
		Archetype:     models.ArchetypeArthropod,
		PartCount:     5,
		SourceSize:    2048,
		OutputSize:    4096,
		ConvertedCode: "public class " + className + " extends EntityModel<Entity> {}",
		Notes:         []string{"repaired box dims for leg1Seg1"},
		CreatedAt:     createdAt,
	}
}

func TestNewDuckStore(t *testing.T) {
	t.Run("creates store successfully", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		if store == nil {
			t.Error("Expected store to be created, got nil")
		}
		if store.db == nil {
			t.Error("Expected database connection to be initialized")
		}
	})

	t.Run("creates database file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.duckdb")

		store, err := NewDuckStore(dbPath)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		defer store.Close()

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("Expected database file to be created")
		}
	})
}

func TestDuckStore_Record(t *testing.T) {
	t.Run("records and retrieves conversion", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		ctx := context.Background()
		rec := createTestRecord("conv-1", "ScorpionModel", time.Now())

		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Failed to record conversion: %v", err)
		}

		got, err := store.Get(ctx, "conv-1")
		if err != nil {
			t.Fatalf("Failed to get conversion: %v", err)
		}

		if got.ClassName != "ScorpionModel" {
			t.Errorf("Expected class name ScorpionModel, got %s", got.ClassName)
		}
		if got.Namespace != "com.example.mobs" {
			t.Errorf("Expected namespace com.example.mobs, got %s", got.Namespace)
		}
		if got.Archetype != models.ArchetypeArthropod {
			t.Errorf("Expected arthropod archetype, got %s", got.Archetype)
		}
		if got.PartCount != 5 {
			t.Errorf("Expected part count 5, got %d", got.PartCount)
		}
		if got.ConvertedCode == "" {
			t.Error("Expected converted code to be returned by Get")
		}
		if len(got.Notes) != 1 || got.Notes[0] != "repaired box dims for leg1Seg1" {
			t.Errorf("Expected notes to round-trip, got %v", got.Notes)
		}
	})

	t.Run("preserves creation time to millisecond precision", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		ctx := context.Background()
		created := time.Date(2025, 6, 15, 10, 30, 0, 123_000_000, time.UTC)
		rec := createTestRecord("conv-ts", "AntModel", created)

		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Failed to record conversion: %v", err)
		}

		got, err := store.Get(ctx, "conv-ts")
		if err != nil {
			t.Fatalf("Failed to get conversion: %v", err)
		}

		if got.CreatedAt.UnixMilli() != created.UnixMilli() {
			t.Errorf("Expected created at %d, got %d", created.UnixMilli(), got.CreatedAt.UnixMilli())
		}
	})

	t.Run("records conversion without notes", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		ctx := context.Background()
		rec := createTestRecord("conv-no-notes", "BeetleModel", time.Now())
		rec.Notes = nil

		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Failed to record conversion: %v", err)
		}

		got, err := store.Get(ctx, "conv-no-notes")
		if err != nil {
			t.Fatalf("Failed to get conversion: %v", err)
		}

		if got.Notes != nil {
			t.Errorf("Expected nil notes, got %v", got.Notes)
		}
	})
}

func TestDuckStore_Get(t *testing.T) {
	t.Run("returns error for unknown id", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		if _, err := store.Get(context.Background(), "missing"); err == nil {
			t.Error("Expected error for unknown conversion id")
		}
	})
}

func TestDuckStore_Recent(t *testing.T) {
	t.Run("returns newest first", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		ctx := context.Background()
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			rec := createTestRecord(fmt.Sprintf("conv-%d", i), "ScorpionModel", base.Add(time.Duration(i)*time.Minute))
			if err := store.Record(ctx, rec); err != nil {
				t.Fatalf("Failed to record conversion %d: %v", i, err)
			}
		}

		records, err := store.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("Failed to list recent conversions: %v", err)
		}

		if len(records) != 5 {
			t.Fatalf("Expected 5 records, got %d", len(records))
		}
		if records[0].ID != "conv-4" {
			t.Errorf("Expected newest record first, got %s", records[0].ID)
		}
		if records[4].ID != "conv-0" {
			t.Errorf("Expected oldest record last, got %s", records[4].ID)
		}
	})

	t.Run("limits results", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		ctx := context.Background()
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			rec := createTestRecord(fmt.Sprintf("conv-%d", i), "AntModel", base.Add(time.Duration(i)*time.Minute))
			if err := store.Record(ctx, rec); err != nil {
				t.Fatalf("Failed to record conversion %d: %v", i, err)
			}
		}

		records, err := store.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("Failed to list recent conversions: %v", err)
		}

		if len(records) != 2 {
			t.Errorf("Expected 2 records, got %d", len(records))
		}
	})

	t.Run("omits converted code from listings", func(t *testing.T) {
		store, cleanup := createTestHistory(t)
		defer cleanup()

		ctx := context.Background()
		if err := store.Record(ctx, createTestRecord("conv-1", "ScorpionModel", time.Now())); err != nil {
			t.Fatalf("Failed to record conversion: %v", err)
		}

		records, err := store.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("Failed to list recent conversions: %v", err)
		}

		if len(records) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(records))
		}
		if records[0].ConvertedCode != "" {
			t.Error("Expected converted code to be omitted from recent listing")
		}
		if records[0].OutputSize != 4096 {
			t.Errorf("Expected output size metadata to survive, got %d", records[0].OutputSize)
		}
	})
}

func TestDuckStore_Persistence(t *testing.T) {
	t.Run("history survives reopen", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "persist.duckdb")
		ctx := context.Background()

		store, err := NewDuckStore(dbPath)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		if err := store.Record(ctx, createTestRecord("conv-1", "ScorpionModel", time.Now())); err != nil {
			t.Fatalf("Failed to record conversion: %v", err)
		}
		store.Close()

		reopened, err := NewDuckStore(dbPath)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reopened.Close()

		got, err := reopened.Get(ctx, "conv-1")
		if err != nil {
			t.Fatalf("Failed to get conversion after reopen: %v", err)
		}
		if got.ClassName != "ScorpionModel" {
			t.Errorf("Expected class name ScorpionModel, got %s", got.ClassName)
		}
	})
}
