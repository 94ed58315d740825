package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// ProductStore is the PostgreSQL implementation of domain.ProductStore.
// Pages are ordered by id so that an offset cursor stays stable across
// calls absent concurrent catalog writes.
type ProductStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductStore constructs a ready-to-use ProductStore.
func NewProductStore(pool *pgxpool.Pool, logger zerolog.Logger) *ProductStore {
	return &ProductStore{pool: pool, logger: logger}
}

const productColumns = `id, brand, category, gender, name, price, currency, image_url, url, sizes`

// Page returns one stably ordered page of products matching the filter.
func (s *ProductStore) Page(ctx context.Context, filter domain.ProductFilter, offset, limit int) ([]domain.Product, error) {
	var (
		conditions []string
		args       []interface{}
	)

	nextArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = %s", nextArg(filter.Brand)))
	}
	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY(%s)", nextArg(filter.Categories)))
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = %s", nextArg(filter.Gender)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY id OFFSET %s LIMIT %s`,
		productColumns, whereClause, nextArg(offset), nextArg(limit))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().Err(err).Str("brand", filter.Brand).Msg("product page query failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID returns a single product, or (nil, nil) when the id is unknown.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns), id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return p, nil
}

// Search runs a keyword search over product names with optional exact
// filters. An empty keyword matches everything the filters allow.
func (s *ProductStore) Search(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	var (
		conditions []string
		args       []interface{}
	)

	nextArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE %s", nextArg("%"+query.Keyword+"%")))
	}
	if query.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = %s", nextArg(query.Gender)))
	}
	if query.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = %s", nextArg(query.Category)))
	}
	if query.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = %s", nextArg(query.Brand)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM products %s ORDER BY id`, productColumns, whereClause),
		args...)
	if err != nil {
		s.logger.Error().Err(err).Str("keyword", query.Keyword).Msg("product search query failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p         domain.Product
		sizesJSON []byte
	)
	err := row.Scan(&p.ID, &p.Brand, &p.Category, &p.Gender, &p.Name,
		&p.Price, &p.Currency, &p.ImageURL, &p.URL, &sizesJSON)
	if err != nil {
		return nil, err
	}
	if len(sizesJSON) > 0 {
		if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
			return nil, fmt.Errorf("malformed sizes for product %s: %w", p.ID, err)
		}
	}
	return &p, nil
}
