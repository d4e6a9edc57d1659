package app

import (
	"context"
	"testing"
)

func TestNewDependencies_Memory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverMemory

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer func() { _ = deps.Close() }()

	if deps.Customers == nil || deps.Products == nil || deps.Orders == nil || deps.Outbox == nil {
		t.Fatal("all repositories must be initialized")
	}
	if deps.Logger == nil {
		t.Fatal("logger must be initialized")
	}

	// Memory-хранилищу нечего проверять, check всегда зелёный.
	if err := deps.StorageCheck()(); err != nil {
		t.Fatalf("storage check failed: %v", err)
	}
	if err := deps.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriver("cassandra")

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestNewDependencies_EmptyDriverDefaultsToMemory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = ""

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer func() { _ = deps.Close() }()

	if deps.Customers == nil {
		t.Fatal("repositories must be initialized for empty driver")
	}
}
