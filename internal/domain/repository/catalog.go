package repository

import (
	"context"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// ProductCatalog reads products owned by the catalog service.
// A missing product yields ErrProductNotFound.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}
