package kafka

import "time"

// EventType определяет тип доменного события.
type EventType string

const (
	EventTypeOrderCreated    EventType = "order.created"
	EventTypeProductCreated  EventType = "product.created"
	EventTypeCustomerCreated EventType = "customer.created"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "shop.order.events"
	TopicDeadLetterQueue = "shop.dlq" // Dead Letter Queue для failed messages
)

// OrderCreatedEvent описывает payload события о созданном заказе.
type OrderCreatedEvent struct {
	EventType   EventType        `json:"event_type"`
	OrderID     string           `json:"order_id"`
	CustomerID  string           `json:"customer_id"`
	AmountMinor int64            `json:"amount_minor"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// NewOrderCreatedEvent создает событие о созданном заказе.
func NewOrderCreatedEvent(orderID, customerID string, amountMinor int64, items []OrderEventItem) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		EventType:   EventTypeOrderCreated,
		OrderID:     orderID,
		CustomerID:  customerID,
		AmountMinor: amountMinor,
		Items:       items,
		Timestamp:   time.Now().UTC(),
	}
}
