package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

func newCustomer(id, email string) domain.Customer {
	return domain.Customer{
		ID:        id,
		Name:      "Test Customer",
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCustomerRepository_CreateFindByID(t *testing.T) {
	repo := memory.NewCustomerRepository()

	if err := repo.Create(newCustomer("c1", "c1@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	customer, err := repo.FindByID("c1")
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if customer.Email != "c1@example.com" {
		t.Fatalf("expected email c1@example.com, got %s", customer.Email)
	}

	if _, err := repo.FindByID("ghost"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_FindByEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()
	if err := repo.Create(newCustomer("c1", "c1@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	customer, err := repo.FindByEmail("c1@example.com")
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if customer.ID != "c1" {
		t.Fatalf("expected id c1, got %s", customer.ID)
	}
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()
	if err := repo.Create(newCustomer("c1", "c1@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.Create(newCustomer("c2", "c1@example.com"))
	if !errors.Is(err, domain.ErrCustomerEmailTaken) {
		t.Fatalf("expected ErrCustomerEmailTaken, got %v", err)
	}
}
