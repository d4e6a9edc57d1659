package order

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

// productRepoSpy считает обращения к репозиторию товаров.
type productRepoSpy struct {
	domain.ProductRepository
	findAllCalls int
	updateCalls  int
}

func (s *productRepoSpy) FindAllByID(ids []string) ([]domain.Product, error) {
	s.findAllCalls++
	return s.ProductRepository.FindAllByID(ids)
}

func (s *productRepoSpy) UpdateQuantity(requests []domain.ItemRequest) ([]domain.Product, error) {
	s.updateCalls++
	return s.ProductRepository.UpdateQuantity(requests)
}

// failingOrderRepo имитирует падение хранилища на сохранении заказа.
type failingOrderRepo struct {
	domain.OrderRepository
	err error
}

func (r *failingOrderRepo) Create(order domain.Order) error {
	return r.err
}

type fixture struct {
	customers domain.CustomerRepository
	products  *productRepoSpy
	orders    domain.OrderRepository
	outbox    domain.OutboxRepository
	service   *Service

	customer domain.Customer
	productA domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		customers: memory.NewCustomerRepository(),
		products:  &productRepoSpy{ProductRepository: memory.NewProductRepository()},
		orders:    memory.NewOrderRepository(),
		outbox:    memory.NewOutboxRepository(),
	}
	f.service = NewServiceWithoutMetrics(f.customers, f.products, f.orders, f.outbox, nil)

	f.customer = domain.Customer{
		ID:        uuid.NewString(),
		Name:      "Клиент",
		Email:     "client@example.com",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.customers.Create(f.customer))

	f.productA = f.seedProduct(t, "keyboard", 1000, 5)
	return f
}

func (f *fixture) seedProduct(t *testing.T, name string, price int64, qty int32) domain.Product {
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
	require.NoError(t, f.products.Create(product))
	return product
}

func (f *fixture) stockOf(t *testing.T, productID string) int32 {
	t.Helper()

	products, err := f.products.ProductRepository.FindAllByID([]string{productID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	return products[0].Quantity
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)

	// Товар A: цена 10.00, остаток 5; заказываем 3 единицы.
	order, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 3},
	})
	require.NoError(t, err)

	require.NotEmpty(t, order.ID)
	require.Equal(t, f.customer.ID, order.CustomerID)
	require.Len(t, order.Items, 1)
	require.Equal(t, f.productA.ID, order.Items[0].ProductID)
	require.Equal(t, int32(3), order.Items[0].Qty)
	require.Equal(t, int64(1000), order.Items[0].PriceMinor)
	require.Equal(t, int64(3000), order.AmountMinor)

	require.Equal(t, int32(2), f.stockOf(t, f.productA.ID))

	persisted, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, order.AmountMinor, persisted.AmountMinor)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(uuid.NewString(), []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 1},
	})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	// До поиска товаров и записей дело не дошло.
	require.Zero(t, f.products.findAllCalls)
	require.Zero(t, f.products.updateCalls)
	require.Equal(t, int32(5), f.stockOf(t, f.productA.ID))
}

func TestCreate_ProductMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 1},
		{ProductID: uuid.NewString(), Qty: 1},
	})
	require.ErrorIs(t, err, domain.ErrProductMissing)

	require.Zero(t, f.products.updateCalls)
	require.Equal(t, int32(5), f.stockOf(t, f.productA.ID))
}

func TestCreate_InsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 6},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Equal(t, int32(5), f.stockOf(t, f.productA.ID))
}

func TestCreate_InsufficientStockLeavesWholeBatchUntouched(t *testing.T) {
	f := newFixture(t)
	productB := f.seedProduct(t, "mouse", 500, 2)

	_, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 2},
		{ProductID: productB.ID, Qty: 10},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.Equal(t, int32(5), f.stockOf(t, f.productA.ID))
	require.Equal(t, int32(2), f.stockOf(t, productB.ID))
}

func TestCreate_PriceSnapshotSurvivesLaterPriceChange(t *testing.T) {
	f := newFixture(t)

	order, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 1},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1000), order.Items[0].PriceMinor)

	persisted, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), persisted.Items[0].PriceMinor)
}

func TestCreate_NotIdempotent(t *testing.T) {
	f := newFixture(t)

	request := []domain.ItemRequest{{ProductID: f.productA.ID, Qty: 3}}

	first, err := f.service.Create(f.customer.ID, request)
	require.NoError(t, err)
	require.Equal(t, int32(2), f.stockOf(t, f.productA.ID))

	// Повтор того же запроса списывает склад ещё раз и падает на нехватке.
	_, err = f.service.Create(f.customer.ID, request)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Equal(t, int32(2), f.stockOf(t, f.productA.ID))

	_, err = f.orders.Get(first.ID)
	require.NoError(t, err)
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create("", []domain.ItemRequest{{ProductID: f.productA.ID, Qty: 1}})
	require.ErrorIs(t, err, domain.ErrCustomerRequired)

	_, err = f.service.Create(f.customer.ID, nil)
	require.ErrorIs(t, err, domain.ErrItemsRequired)
}

func TestCreate_PersistFailureLeavesStockDecremented(t *testing.T) {
	f := newFixture(t)

	storageErr := errors.New("orders storage is down")
	f.service = NewServiceWithoutMetrics(
		f.customers,
		f.products,
		&failingOrderRepo{OrderRepository: f.orders, err: storageErr},
		f.outbox,
		nil,
	)

	_, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 3},
	})
	require.ErrorIs(t, err, storageErr)

	// Компенсации нет: склад остаётся списанным без записанного заказа.
	require.Equal(t, int32(2), f.stockOf(t, f.productA.ID))

	orders, err := f.orders.ListByCustomer(f.customer.ID, 0)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreate_EnqueuesOrderCreatedEvent(t *testing.T) {
	f := newFixture(t)

	order, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 2},
	})
	require.NoError(t, err)

	pending, err := f.outbox.PullPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "order", pending[0].AggregateType)
	require.Equal(t, order.ID, pending[0].AggregateID)
	require.Equal(t, "order.created", pending[0].EventType)

	var payload struct {
		OrderID     string `json:"order_id"`
		CustomerID  string `json:"customer_id"`
		AmountMinor int64  `json:"amount_minor"`
	}
	require.NoError(t, json.Unmarshal(pending[0].Payload, &payload))
	require.Equal(t, order.ID, payload.OrderID)
	require.Equal(t, f.customer.ID, payload.CustomerID)
	require.Equal(t, int64(2000), payload.AmountMinor)
}

func TestCreate_OutboxDisabled(t *testing.T) {
	f := newFixture(t)
	f.service = NewServiceWithoutMetrics(f.customers, f.products, f.orders, nil, nil)

	_, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 1},
	})
	require.NoError(t, err)
}

func TestGet(t *testing.T) {
	f := newFixture(t)

	order, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
		{ProductID: f.productA.ID, Qty: 1},
	})
	require.NoError(t, err)

	got, err := f.service.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	_, err = f.service.Get(uuid.NewString())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListByCustomer(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.service.Create(f.customer.ID, []domain.ItemRequest{
			{ProductID: f.productA.ID, Qty: 1},
		})
		require.NoError(t, err)
	}

	orders, err := f.service.ListByCustomer(f.customer.ID, 0)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	limited, err := f.service.ListByCustomer(f.customer.ID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	_, err = f.service.ListByCustomer(uuid.NewString(), 0)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = f.service.ListByCustomer("", 0)
	require.ErrorIs(t, err, domain.ErrCustomerRequired)
}
