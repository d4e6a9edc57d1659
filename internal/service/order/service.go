package order

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// Service реализует процесс оформления заказа: проверка клиента,
// чтение товаров, списание склада, сборка позиций и сохранение заказа.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	outbox    domain.OutboxRepository // опциональный transactional outbox
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	service := NewServiceWithoutMetrics(customers, products, orders, outbox, logger)
	service.metrics = metrics.NewOrderMetrics()
	return service
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		outbox:    outbox,
		logger:    logger,
	}
}

// Create оформляет заказ для клиента по списку запрошенных позиций.
//
// Шаги выполняются последовательно, без общей транзакции: если сохранение
// заказа падает после списания склада, списание не компенсируется.
func (s *Service) Create(customerID string, items []domain.ItemRequest) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordOrderInFlightStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCreateDuration(time.Since(start))
			s.metrics.RecordOrderInFlightFinished()
		}
	}()

	if customerID == "" {
		return domain.Order{}, s.fail(customerID, domain.ErrCustomerRequired)
	}
	if len(items) == 0 {
		return domain.Order{}, s.fail(customerID, domain.ErrItemsRequired)
	}

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return domain.Order{}, s.fail(customerID, err)
	}

	// Цены фиксируются здесь, до списания склада.
	products, err := s.products.FindAllByID(domain.DistinctProductIDs(items))
	if err != nil {
		return domain.Order{}, s.fail(customerID, err)
	}

	if _, err := s.products.UpdateQuantity(items); err != nil {
		return domain.Order{}, s.fail(customerID, err)
	}

	requestedQty := make(map[string]int32, len(items))
	for _, item := range items {
		requestedQty[item.ProductID] = item.Qty
	}

	now := time.Now().UTC()
	orderItems := make([]domain.OrderItem, 0, len(products))
	var amountMinor, stockUnits int64
	for _, product := range products {
		qty := requestedQty[product.ID] // 0, если запись запроса не нашлась
		orderItems = append(orderItems, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			Qty:        qty,
			PriceMinor: product.PriceMinor,
			CreatedAt:  now,
		})
		amountMinor += int64(qty) * product.PriceMinor
		stockUnits += int64(qty)
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		AmountMinor: amountMinor,
		Items:       orderItems,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(order); err != nil {
		// Склад уже списан, компенсации нет.
		s.logger.WithError(err).WithFields(log.Fields{
			"customer_id": customerID,
			"order_id":    order.ID,
		}).Error("order persist failed after stock decrement")
		s.recordFailure(err)
		return domain.Order{}, err
	}

	s.emitOrderCreated(order)

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
		s.metrics.RecordStockReserved(stockUnits)
	}
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"amount_minor": order.AmountMinor,
		"items":        len(order.Items),
	}).Info("order created")

	return order, nil
}

// Get возвращает заказ по идентификатору.
func (s *Service) Get(orderID string) (domain.Order, error) {
	return s.orders.Get(orderID)
}

// ListByCustomer возвращает заказы клиента, новые первыми.
func (s *Service) ListByCustomer(customerID string, limit int) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	if _, err := s.customers.FindByID(customerID); err != nil {
		return nil, err
	}
	return s.orders.ListByCustomer(customerID, limit)
}

func (s *Service) fail(customerID string, err error) error {
	s.logger.WithError(err).WithField("customer_id", customerID).Warn("order creation rejected")
	s.recordFailure(err)
	return err
}

func (s *Service) recordFailure(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOrderFailed(failureReason(err))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, domain.ErrProductMissing):
		return "product_missing"
	case errors.Is(err, domain.ErrProductUpdateMissing):
		return "product_update_missing"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrCustomerRequired), errors.Is(err, domain.ErrItemsRequired):
		return "validation"
	default:
		return "internal"
	}
}

func (s *Service) emitOrderCreated(order domain.Order) {
	if s.outbox == nil {
		return
	}

	eventItems := make([]kafka.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, kafka.OrderEventItem{
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}

	event := kafka.NewOrderCreatedEvent(order.ID, order.CustomerID, order.AmountMinor, eventItems)
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("marshal order.created event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(kafka.EventTypeOrderCreated),
		Payload:       payload,
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("enqueue order.created event failed")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}
