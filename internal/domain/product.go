package domain

import "time"

// Product — товар каталога с текущим остатком на складе.
type Product struct {
	ID   string
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// Quantity — остаток на складе; уменьшается операцией UpdateQuantity.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemRequest — позиция входящего запроса на заказ: товар и запрошенное количество.
// Количество ещё не сверено с остатком.
type ItemRequest struct {
	ProductID string
	Qty       int32
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceInvalid)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQuantityInvalid)
	}

	return errs
}

// DistinctProductIDs возвращает уникальные идентификаторы товаров из запроса,
// сохраняя порядок первого вхождения.
func DistinctProductIDs(requests []ItemRequest) []string {
	seen := make(map[string]struct{}, len(requests))
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		if _, ok := seen[req.ProductID]; ok {
			continue
		}
		seen[req.ProductID] = struct{}{}
		ids = append(ids, req.ProductID)
	}
	return ids
}
