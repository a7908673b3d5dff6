package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nvallen/paywise-cli/internal/domain"
	"github.com/nvallen/paywise-cli/internal/ports"
)

// Catalog serves the redemption product list. A catalog.toml next to the
// config overrides the built-in products; otherwise the defaults ship with
// the binary. Reference data only, loaded once.
type Catalog struct {
	path string

	once     sync.Once
	products []domain.Product
	loadErr  error
}

var _ ports.Catalog = (*Catalog)(nil)

func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.once.Do(c.load)
	if c.loadErr != nil {
		return nil, c.loadErr
	}

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *Catalog) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
}

func (c *Catalog) load() {
	if c.path == "" {
		c.products = defaultProducts()
		return
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.products = defaultProducts()
			return
		}
		c.loadErr = fmt.Errorf("read catalog file: %w", err)
		return
	}

	var file catalogFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		c.loadErr = fmt.Errorf("decode catalog file: %w", err)
		return
	}

	if len(file.Products) == 0 {
		c.products = defaultProducts()
		return
	}

	products := make([]domain.Product, 0, len(file.Products))
	for _, entry := range file.Products {
		products = append(products, entry.toDomain())
	}
	c.products = products
}

type catalogFileSchema struct {
	Products []productSchema `toml:"products"`
}

type productSchema struct {
	ID             string `toml:"id"`
	Name           string `toml:"name"`
	Description    string `toml:"description"`
	PointsRequired int    `toml:"points_required"`
	Image          string `toml:"image,omitempty"`
	Category       string `toml:"category,omitempty"`
}

func (s productSchema) toDomain() domain.Product {
	return domain.Product{
		ID:             s.ID,
		Name:           s.Name,
		Description:    s.Description,
		PointsRequired: s.PointsRequired,
		Image:          s.Image,
		Category:       s.Category,
	}
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "coffee-voucher", Name: "Coffee Voucher", Description: "One free specialty coffee at partner cafes", PointsRequired: 150, Category: "dining"},
		{ID: "movie-tickets", Name: "Movie Tickets", Description: "Two standard cinema tickets", PointsRequired: 300, Category: "entertainment"},
		{ID: "ride-credit", Name: "Ride Credit", Description: "$10 ride-hailing credit", PointsRequired: 400, Category: "travel"},
		{ID: "wireless-earbuds", Name: "Wireless Earbuds", Description: "Bluetooth earbuds with charging case", PointsRequired: 1200, Category: "electronics"},
		{ID: "gift-card", Name: "Shopping Gift Card", Description: "$25 gift card for partner stores", PointsRequired: 900, Category: "shopping"},
	}
}
