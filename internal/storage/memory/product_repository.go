package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository.
// Mutex сериализует последовательность "прочитать остаток — проверить — списать"
// внутри процесса; межпроцессной защиты эта реализация не даёт.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, проверяя уникальность имени.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == product.Name {
			return domain.ErrProductNameTaken
		}
	}
	r.items[product.ID] = product
	return nil
}

// FindByName возвращает товар по имени или ErrProductNotFound.
func (r *productRepositoryInMemory) FindByName(name string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.items {
		if product.Name == name {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// FindAllByID возвращает товары по набору идентификаторов.
// Строгая семантика: количество найденных должно совпадать с количеством запрошенных.
func (r *productRepositoryInMemory) FindAllByID(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findAllByIDLocked(ids)
}

// UpdateQuantity списывает остаток по каждой позиции запроса.
// Сначала валидируются все позиции, и только потом выполняется запись:
// нехватка остатка по любой из них не списывает ничего.
func (r *productRepositoryInMemory) UpdateQuantity(requests []domain.ItemRequest) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.findAllByIDLocked(domain.DistinctProductIDs(requests))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.ItemRequest, len(requests))
	for _, req := range requests {
		byID[req.ProductID] = req
	}

	now := time.Now().UTC()
	updated := make([]domain.Product, 0, len(products))
	for _, product := range products {
		req, ok := byID[product.ID]
		if !ok {
			return nil, domain.ErrProductUpdateMissing
		}
		if req.Qty > product.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		product.Quantity -= req.Qty
		product.UpdatedAt = now
		updated = append(updated, product)
	}

	for _, product := range updated {
		r.items[product.ID] = product
	}

	return updated, nil
}

func (r *productRepositoryInMemory) findAllByIDLocked(ids []string) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product, ok := r.items[id]
		if !ok {
			continue
		}
		result = append(result, product)
	}

	if len(result) != len(ids) {
		return nil, domain.ErrProductMissing
	}

	return result, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
