package domain

import "time"

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента.
	Create(customer Customer) error
	// FindByID возвращает клиента или ErrCustomerNotFound, если его нет.
	FindByID(id string) (Customer, error)
	// FindByEmail возвращает клиента по e-mail или ErrCustomerNotFound.
	FindByEmail(email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу товаров, включая
// операцию списания остатка.
type ProductRepository interface {
	// Create сохраняет новый товар.
	Create(product Product) error
	// FindByName возвращает товар по имени или ErrProductNotFound.
	FindByName(name string) (Product, error)
	// FindAllByID возвращает товары по набору идентификаторов.
	// Строгая семантика: если хотя бы один id не найден — ErrProductMissing.
	FindAllByID(ids []string) ([]Product, error)
	// UpdateQuantity списывает остаток по каждой позиции запроса.
	// Все позиции валидируются до первой записи: нехватка остатка по любой из них
	// возвращает ErrInsufficientStock и не списывает ничего.
	UpdateQuantity(requests []ItemRequest) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями. Возвращает
	// ErrOrderAlreadyExists, если запись с таким ID уже есть.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
