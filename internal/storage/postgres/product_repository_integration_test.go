package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func seedProduct(t *testing.T, repo domain.ProductRepository, name string, price int64, qty int32) domain.Product {
	t.Helper()

	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: price,
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestProductRepositoryIntegration_CreateAndLookup(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	product := seedProduct(t, repo, "keyboard", 1000, 5)

	byName, err := repo.FindByName("keyboard")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if byName.ID != product.ID {
		t.Fatalf("expected id %s, got %s", product.ID, byName.ID)
	}

	if err := repo.Create(domain.Product{
		ID:        uuid.NewString(),
		Name:      "keyboard",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}); !errors.Is(err, domain.ErrProductNameTaken) {
		t.Fatalf("expected ErrProductNameTaken, got %v", err)
	}
}

func TestProductRepositoryIntegration_FindAllByIDStrict(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	product := seedProduct(t, repo, "keyboard", 1000, 5)

	products, err := repo.FindAllByID([]string{product.ID})
	if err != nil {
		t.Fatalf("find all by id: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	_, err = repo.FindAllByID([]string{product.ID, uuid.NewString()})
	if !errors.Is(err, domain.ErrProductMissing) {
		t.Fatalf("expected ErrProductMissing, got %v", err)
	}
}

func TestProductRepositoryIntegration_UpdateQuantity(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	a := seedProduct(t, repo, "keyboard", 1000, 5)
	b := seedProduct(t, repo, "mouse", 500, 2)

	updated, err := repo.UpdateQuantity([]domain.ItemRequest{
		{ProductID: a.ID, Qty: 3},
		{ProductID: b.ID, Qty: 2},
	})
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(updated) != 2 {
		t.Fatalf("expected 2 updated products, got %d", len(updated))
	}

	for _, product := range updated {
		switch product.ID {
		case a.ID:
			if product.Quantity != 2 {
				t.Fatalf("expected quantity 2 for %s, got %d", a.Name, product.Quantity)
			}
		case b.ID:
			if product.Quantity != 0 {
				t.Fatalf("expected quantity 0 for %s, got %d", b.Name, product.Quantity)
			}
		}
	}
}

func TestProductRepositoryIntegration_UpdateQuantityInsufficientRollsBack(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	a := seedProduct(t, repo, "keyboard", 1000, 5)
	b := seedProduct(t, repo, "mouse", 500, 1)

	_, err := repo.UpdateQuantity([]domain.ItemRequest{
		{ProductID: a.ID, Qty: 2},
		{ProductID: b.ID, Qty: 10},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	products, err := repo.FindAllByID([]string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("find all by id: %v", err)
	}
	for _, product := range products {
		switch product.ID {
		case a.ID:
			if product.Quantity != 5 {
				t.Fatalf("expected untouched quantity 5, got %d", product.Quantity)
			}
		case b.ID:
			if product.Quantity != 1 {
				t.Fatalf("expected untouched quantity 1, got %d", product.Quantity)
			}
		}
	}
}
