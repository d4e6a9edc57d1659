// Package httpapi exposes the JSON HTTP API of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// jsonError представляет JSON-тело ошибки.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError пишет JSON-ошибку с заданным статусом.
func WriteJSONError(w http.ResponseWriter, status int, code, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: code, Details: details})
}

// WriteDomainError переводит доменную ошибку в HTTP-статус и JSON-тело.
func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	details := ""
	if status != http.StatusInternalServerError {
		details = err.Error()
	}
	WriteJSONError(w, status, code, details)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "customer_not_found"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrProductMissing):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "order_not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, domain.ErrCustomerEmailTaken):
		return http.StatusConflict, "customer_email_taken"
	case errors.Is(err, domain.ErrProductNameTaken):
		return http.StatusConflict, "product_name_taken"
	case errors.Is(err, domain.ErrOrderAlreadyExists):
		return http.StatusConflict, "order_already_exists"
	case errors.Is(err, domain.ErrCustomerRequired),
		errors.Is(err, domain.ErrItemsRequired),
		errors.Is(err, domain.ErrItemQtyInvalid),
		errors.Is(err, domain.ErrItemPriceInvalid),
		errors.Is(err, domain.ErrCustomerNameRequired),
		errors.Is(err, domain.ErrCustomerEmailRequired),
		errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrProductPriceInvalid),
		errors.Is(err, domain.ErrProductQuantityInvalid):
		return http.StatusBadRequest, "validation_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
