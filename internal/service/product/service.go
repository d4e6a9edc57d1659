package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Service отвечает за создание товаров каталога.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService создаёт сервис товаров.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "product-service")
	}
	return &Service{products: products, logger: logger}
}

// Create добавляет товар. Имя должно быть уникальным.
func (s *Service) Create(name string, priceMinor int64, quantity int32) (domain.Product, error) {
	if name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if priceMinor < 0 {
		return domain.Product{}, domain.ErrProductPriceInvalid
	}
	if quantity < 0 {
		return domain.Product{}, domain.ErrProductQuantityInvalid
	}

	if _, err := s.products.FindByName(name); err == nil {
		return domain.Product{}, domain.ErrProductNameTaken
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: priceMinor,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Гонку с конкурентным созданием закрывает уникальный индекс в хранилище.
	if err := s.products.Create(product); err != nil {
		s.logger.WithError(err).WithField("name", name).Warn("product create failed")
		return domain.Product{}, err
	}

	s.logger.WithFields(log.Fields{
		"product_id":  product.ID,
		"name":        product.Name,
		"price_minor": product.PriceMinor,
		"quantity":    product.Quantity,
	}).Info("product created")

	return product, nil
}
