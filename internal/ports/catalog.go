package ports

import (
	"context"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// Catalog lists the redemption products. Read-only reference data.
type Catalog interface {
	Products(ctx context.Context) ([]domain.Product, error)
	ProductByID(ctx context.Context, id string) (domain.Product, error)
}
