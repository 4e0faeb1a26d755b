package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ghuser/atelier/pkg/database"
	catalogdomain "github.com/ghuser/atelier/services/catalog/domain"
	"github.com/ghuser/atelier/services/catalog/domain/models"
)

// ProductRepository implements repositories.ProductRepository against
// PostgreSQL. The table is a read model rebuilt wholesale on each feed
// refresh; feed order is preserved via the position column.
type ProductRepository struct {
	db *database.Database
}

// NewProductRepository returns a ProductRepository backed by the given pool.
func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// ReplaceAll swaps the stored catalog for the given snapshot in one
// transaction so readers never observe a half-replaced catalog.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_products`); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}

		const insert = `
			INSERT INTO catalog_products
				(id, position, name, description, image_url, additional_images,
				 price, category, collection, is_new, size_stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		for pos, p := range products {
			images, err := json.Marshal(p.AdditionalImages)
			if err != nil {
				return fmt.Errorf("encode images for %s: %w", p.ID, err)
			}
			stock, err := json.Marshal(p.SizeStock)
			if err != nil {
				return fmt.Errorf("encode size stock for %s: %w", p.ID, err)
			}
			if _, err := tx.ExecContext(ctx, insert,
				p.ID, pos, p.Name, p.Description, p.ImageURL, images,
				p.Price, p.Category, nullable(p.Collection), p.IsNew, stock,
			); err != nil {
				return fmt.Errorf("insert product %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// List returns the full catalog in feed order.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	const query = `
		SELECT id, name, description, image_url, additional_images,
		       price, category, collection, is_new, size_stock
		FROM catalog_products
		ORDER BY position`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	return products, nil
}

// GetByID retrieves one product. Returns ErrProductNotFound if absent.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	const query = `
		SELECT id, name, description, image_url, additional_images,
		       price, category, collection, is_new, size_stock
		FROM catalog_products
		WHERE id = $1`

	row := r.db.DB().QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, catalogdomain.ErrProductNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p          models.Product
		images     []byte
		stock      []byte
		collection sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ImageURL, &images,
		&p.Price, &p.Category, &collection, &p.IsNew, &stock,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, sql.ErrNoRows
		}
		return models.Product{}, fmt.Errorf("scan product: %w", err)
	}

	p.Collection = collection.String
	if err := json.Unmarshal(images, &p.AdditionalImages); err != nil {
		p.AdditionalImages = nil
	}
	if err := json.Unmarshal(stock, &p.SizeStock); err != nil {
		p.SizeStock = map[string]int{}
	}
	if p.SizeStock == nil {
		p.SizeStock = map[string]int{}
	}
	return p, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
