package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func seedCustomer(t *testing.T, repo domain.CustomerRepository, name, email string) domain.Customer {
	t.Helper()

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func buildOrderForIntegrationTest(customerID string, product domain.Product, qty int32) domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		AmountMinor: int64(qty) * product.PriceMinor,
		Items: []domain.OrderItem{
			{
				ID:         uuid.NewString(),
				ProductID:  product.ID,
				Qty:        qty,
				PriceMinor: product.PriceMinor,
				CreatedAt:  now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderRepositoryIntegration_CreateAndGet(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	customer := seedCustomer(t, NewCustomerRepository(store), "Клиент", "client@example.com")
	product := seedProduct(t, NewProductRepository(store), "keyboard", 1000, 5)
	repo := NewOrderRepository(store)

	order := buildOrderForIntegrationTest(customer.ID, product, 3)
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	got, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.CustomerID != customer.ID {
		t.Fatalf("expected customer %s, got %s", customer.ID, got.CustomerID)
	}
	if got.AmountMinor != 3000 {
		t.Fatalf("expected amount 3000, got %d", got.AmountMinor)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].PriceMinor != product.PriceMinor {
		t.Fatalf("expected snapshot price %d, got %d", product.PriceMinor, got.Items[0].PriceMinor)
	}
}

func TestOrderRepositoryIntegration_CreateDuplicateID(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	customer := seedCustomer(t, NewCustomerRepository(store), "Клиент", "client@example.com")
	product := seedProduct(t, NewProductRepository(store), "keyboard", 1000, 5)
	repo := NewOrderRepository(store)

	order := buildOrderForIntegrationTest(customer.ID, product, 1)
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}
}

func TestOrderRepositoryIntegration_GetUnknown(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	if _, err := repo.Get(uuid.NewString()); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepositoryIntegration_ListByCustomer(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	customerRepo := NewCustomerRepository(store)
	first := seedCustomer(t, customerRepo, "Первый", "first@example.com")
	second := seedCustomer(t, customerRepo, "Второй", "second@example.com")
	product := seedProduct(t, NewProductRepository(store), "keyboard", 1000, 50)
	repo := NewOrderRepository(store)

	for i := 0; i < 3; i++ {
		if err := repo.Create(buildOrderForIntegrationTest(first.ID, product, 1)); err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}
	if err := repo.Create(buildOrderForIntegrationTest(second.ID, product, 1)); err != nil {
		t.Fatalf("create order for second customer: %v", err)
	}

	orders, err := repo.ListByCustomer(first.ID, 0)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for _, order := range orders {
		if order.CustomerID != first.ID {
			t.Fatalf("unexpected customer %s in listing", order.CustomerID)
		}
	}

	limited, err := repo.ListByCustomer(first.ID, 2)
	if err != nil {
		t.Fatalf("list orders with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 orders with limit, got %d", len(limited))
	}
}
