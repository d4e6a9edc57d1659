package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price_minor, quantity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		product.ID, product.Name, product.PriceMinor, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductNameTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByName(name string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE name = $1
	`, name).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product by name: %w", err)
	}

	return product, nil
}

// FindAllByID возвращает товары одним запросом. Строгая семантика: если найдено
// меньше, чем запрошено, возвращается ErrProductMissing.
func (r *productRepository) FindAllByID(ids []string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return findAllByID(ctx, r.db, ids, false)
}

// UpdateQuantity списывает остатки в одной транзакции. Строки блокируются через
// SELECT ... FOR UPDATE, поэтому конкурентные списания одного товара
// сериализуются и проверка остатка не работает по устаревшему чтению.
func (r *productRepository) UpdateQuantity(requests []domain.ItemRequest) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var products []domain.Product
	products, err = findAllByID(ctx, tx, domain.DistinctProductIDs(requests), true)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.ItemRequest, len(requests))
	for _, req := range requests {
		byID[req.ProductID] = req
	}

	// Валидируем весь батч до первой записи.
	now := time.Now().UTC()
	updated := make([]domain.Product, 0, len(products))
	for _, product := range products {
		req, ok := byID[product.ID]
		if !ok {
			err = domain.ErrProductUpdateMissing
			return nil, err
		}
		if req.Qty > product.Quantity {
			err = domain.ErrInsufficientStock
			return nil, err
		}
		product.Quantity -= req.Qty
		product.UpdatedAt = now
		updated = append(updated, product)
	}

	for _, product := range updated {
		if _, err = tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = $1,
			    updated_at = $2
			WHERE id = $3
		`, product.Quantity, product.UpdatedAt, product.ID); err != nil {
			return nil, fmt.Errorf("update product quantity: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update quantity: %w", err)
	}

	return updated, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func findAllByID(ctx context.Context, q querier, ids []string, forUpdate bool) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id IN (%s)
		ORDER BY id
	`, strings.Join(placeholders, ","))
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if len(products) != len(ids) {
		return nil, domain.ErrProductMissing
	}

	return products, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
