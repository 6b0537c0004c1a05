package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations: the persisted catalog
// snapshot and best-effort search/selection logging.
type PostgresRepository struct {
	db *sqlx.DB
}

// productRow mirrors the products table; rating columns are nullable since
// some catalogs carry no rating data.
type productRow struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	Price       float64         `db:"price"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Image       string          `db:"image"`
	RatingRate  sql.NullFloat64 `db:"rating_rate"`
	RatingCount sql.NullInt64   `db:"rating_count"`
}

func (r productRow) toProduct() model.Product {
	p := model.Product{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
	}
	if r.RatingRate.Valid {
		p.Rating = &model.Rating{
			Rate:  r.RatingRate.Float64,
			Count: int(r.RatingCount.Int64),
		}
	}
	return p
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Products returns the persisted catalog snapshot in insertion order. It
// implements catalog.Supplier so the snapshot can serve as a catalog source.
func (r *PostgresRepository) Products(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, title, price, description, category, image, rating_rate, rating_count
		FROM products
		ORDER BY id
	`
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}

// GetProductByID retrieves a single product from the snapshot.
func (r *PostgresRepository) GetProductByID(ctx context.Context, productID int64) (*model.Product, error) {
	query := `
		SELECT id, title, price, description, category, image, rating_rate, rating_count
		FROM products
		WHERE id = $1
	`
	var row productRow
	err := r.db.GetContext(ctx, &row, query, productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p := row.toProduct()
	return &p, nil
}

// ReplaceCatalog upserts a fetched catalog into the snapshot table.
func (r *PostgresRepository) ReplaceCatalog(ctx context.Context, products []model.Product) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO products (id, title, price, description, category, image, rating_rate, rating_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			image = EXCLUDED.image,
			rating_rate = EXCLUDED.rating_rate,
			rating_count = EXCLUDED.rating_count,
			updated_at = NOW()
	`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, p := range products {
		var rate sql.NullFloat64
		var count sql.NullInt64
		if p.Rating != nil {
			rate = sql.NullFloat64{Float64: p.Rating.Rate, Valid: true}
			count = sql.NullInt64{Int64: int64(p.Rating.Count), Valid: true}
		}
		_, err := stmt.ExecContext(ctx, p.ID, p.Title, p.Price, p.Description, p.Category, p.Image, rate, count)
		if err != nil {
			errors = append(errors, fmt.Sprintf("product %d: %v", p.ID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogSearch logs a search query and the criteria extracted from it.
func (r *PostgresRepository) LogSearch(ctx context.Context, query string, criteria *model.FilterCriteria, resultCount int, responseTimeMs int) error {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to encode criteria: %w", err)
	}

	logQuery := `
		INSERT INTO search_logs (query, criteria, confidence, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	confidence := 0
	if criteria != nil {
		confidence = criteria.Confidence
	}
	_, err = r.db.ExecContext(ctx, logQuery, query, criteriaJSON, confidence, resultCount, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogSelection logs an "add to selection" action on a product.
func (r *PostgresRepository) LogSelection(ctx context.Context, productID int64, query string) error {
	logQuery := `
		INSERT INTO selection_logs (product_id, query)
		VALUES ($1, $2)
	`
	_, err := r.db.ExecContext(ctx, logQuery, productID, query)
	if err != nil {
		return fmt.Errorf("failed to log selection: %w", err)
	}
	return nil
}
