package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Service отвечает за регистрацию клиентов.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService создаёт сервис клиентов.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "customer-service")
	}
	return &Service{customers: customers, logger: logger}
}

// Create регистрирует клиента. E-mail должен быть уникальным.
func (s *Service) Create(name, email string) (domain.Customer, error) {
	if name == "" {
		return domain.Customer{}, domain.ErrCustomerNameRequired
	}
	if email == "" {
		return domain.Customer{}, domain.ErrCustomerEmailRequired
	}

	if _, err := s.customers.FindByEmail(email); err == nil {
		return domain.Customer{}, domain.ErrCustomerEmailTaken
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.customers.Create(customer); err != nil {
		s.logger.WithError(err).WithField("email", email).Warn("customer create failed")
		return domain.Customer{}, err
	}

	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("customer created")

	return customer, nil
}

// Get возвращает клиента по идентификатору.
func (s *Service) Get(customerID string) (domain.Customer, error) {
	return s.customers.FindByID(customerID)
}
