package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиент не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer does not exist")
	// ErrCustomerEmailTaken — клиент с таким e-mail уже зарегистрирован.
	ErrCustomerEmailTaken = errors.New("customer email is already taken")
	// ErrProductNotFound возвращается при поиске одиночного товара.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductMissing — хотя бы один из запрошенных идентификаторов товара не существует.
	ErrProductMissing = errors.New("missing product")
	// ErrProductNameTaken — товар с таким именем уже существует.
	ErrProductNameTaken = errors.New("product name is already taken")
	// ErrProductUpdateMissing — для найденного товара нет соответствующей позиции в запросе.
	// Недостижима при вызове через workflow, но операция публичная.
	ErrProductUpdateMissing = errors.New("cannot update product quantity: product not found in request")
	// ErrInsufficientStock — запрошенное количество превышает текущий остаток.
	ErrInsufficientStock = errors.New("insufficient product quantity")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists — заказ с таким ID уже сохранён.
	ErrOrderAlreadyExists = errors.New("order already exists")

	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceInvalid = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrProductQuantityInvalid = errors.New("product quantity must be non-negative")
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего e-mail клиента.
	ErrCustomerEmailRequired = errors.New("customer email is required")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsInsufficientStock проверяет, является ли ошибка нехваткой остатка.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
