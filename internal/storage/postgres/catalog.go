package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// GetProduct reads the live catalog row. Price is fetched as text so a
// malformed value reaches the caller instead of failing the scan.
func (r *catalogRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id, COALESCE(name, ''), selling_price::text, COALESCE(is_active, TRUE), COALESCE(is_deleted, FALSE)
                   FROM products WHERE id=$1`
	var (
		product model.Product
		price   *string
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &price, &product.Active, &product.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	product.SellingPrice = deref(price)
	return &product, nil
}
