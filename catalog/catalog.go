// Package catalog loads the product, category, farmer, and pickup-location
// seed data and serves read-only lookups over it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
)

var (
	ErrUnknownProduct  = errors.New("unknown product")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownLocation = errors.New("unknown pickup location")
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the static storefront dataset. Immutable after Load; safe for
// concurrent readers.
type Catalog struct {
	Products         []models.Product
	Categories       []models.Category
	Commitments      []models.CategoryProgress
	Farmers          []models.Farmer
	PickupLocations  []models.PickupLocation
	TotalSubscribers int

	productByID    map[string]models.Product
	categoryByID   map[string]models.Category
	commitmentByID map[string]models.CategoryProgress
	locationByID   map[string]models.PickupLocation
}

type catalogFile struct {
	Community struct {
		TotalSubscribers int `yaml:"total_subscribers"`
	} `yaml:"community"`
	Categories      []models.Category         `yaml:"categories"`
	Commitments     []models.CategoryProgress `yaml:"commitments"`
	Products        []models.Product          `yaml:"products"`
	Farmers         []models.Farmer           `yaml:"farmers"`
	PickupLocations []models.PickupLocation   `yaml:"pickup_locations"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalogYAML)
}

// Load reads a catalog from path; an empty path selects the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		Products:         raw.Products,
		Categories:       raw.Categories,
		Commitments:      raw.Commitments,
		Farmers:          raw.Farmers,
		PickupLocations:  raw.PickupLocations,
		TotalSubscribers: raw.Community.TotalSubscribers,
		productByID:      make(map[string]models.Product, len(raw.Products)),
		categoryByID:     make(map[string]models.Category, len(raw.Categories)),
		commitmentByID:   make(map[string]models.CategoryProgress, len(raw.Commitments)),
		locationByID:     make(map[string]models.PickupLocation, len(raw.PickupLocations)),
	}

	for _, cat := range raw.Categories {
		if cat.ID == "" {
			return nil, errors.New("catalog: category with empty id")
		}
		c.categoryByID[cat.ID] = cat
	}
	for _, cm := range raw.Commitments {
		if _, ok := c.categoryByID[cm.Category]; !ok {
			return nil, fmt.Errorf("catalog: commitment references unknown category %q", cm.Category)
		}
		if cm.TargetAmount <= 0 {
			return nil, fmt.Errorf("catalog: commitment for %q has non-positive target", cm.Category)
		}
		c.commitmentByID[cm.Category] = cm
	}
	for _, p := range raw.Products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, ok := c.categoryByID[p.Category]; !ok {
			return nil, fmt.Errorf("catalog: product %q references unknown category %q", p.ID, p.Category)
		}
		if _, dup := c.productByID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		c.productByID[p.ID] = p
	}
	for _, loc := range raw.PickupLocations {
		if loc.ID == "" {
			return nil, errors.New("catalog: pickup location with empty id")
		}
		c.locationByID[loc.ID] = loc
	}
	for _, f := range raw.Farmers {
		for _, cat := range f.Categories {
			if _, ok := c.categoryByID[cat]; !ok {
				return nil, fmt.Errorf("catalog: farmer %q references unknown category %q", f.ID, cat)
			}
		}
	}

	return c, nil
}

// validateProduct enforces the share-product shape: option Value equals its
// index, PriceMultiplier strictly increasing, and MaxMonthly covering the
// top tier index.
func validateProduct(p models.Product) error {
	if p.ID == "" {
		return errors.New("catalog: product with empty id")
	}
	if p.Price < 0 {
		return fmt.Errorf("catalog: product %q has negative price", p.ID)
	}
	if !p.IsShare() {
		return nil
	}
	prev := -1.0
	for i, opt := range p.ShareOptions {
		if opt.Value != i {
			return fmt.Errorf("catalog: product %q share option %d has value %d", p.ID, i, opt.Value)
		}
		if opt.PriceMultiplier <= prev {
			return fmt.Errorf("catalog: product %q share multipliers not strictly increasing at index %d", p.ID, i)
		}
		prev = opt.PriceMultiplier
	}
	if int(p.MaxMonthly) != len(p.ShareOptions)-1 {
		return fmt.Errorf("catalog: product %q max_monthly must equal top share tier %d", p.ID, len(p.ShareOptions)-1)
	}
	return nil
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (models.Product, error) {
	p, ok := c.productByID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return p, nil
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (models.Category, error) {
	cat, ok := c.categoryByID[id]
	if !ok {
		return models.Category{}, fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	return cat, nil
}

// Progress returns the community commitment record for a category.
func (c *Catalog) Progress(category string) (models.CategoryProgress, error) {
	cm, ok := c.commitmentByID[category]
	if !ok {
		return models.CategoryProgress{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return cm, nil
}

// PickupLocation looks up a pickup location by id.
func (c *Catalog) PickupLocation(id string) (models.PickupLocation, error) {
	loc, ok := c.locationByID[id]
	if !ok {
		return models.PickupLocation{}, fmt.Errorf("%w: %s", ErrUnknownLocation, id)
	}
	return loc, nil
}

// ProductsByCategory returns the products in a category, catalog order.
func (c *Catalog) ProductsByCategory(category string) []models.Product {
	out := []models.Product{}
	for _, p := range c.Products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FarmersForCategory returns farmers associated with a category. The
// association is by category membership, not a per-product foreign key.
func (c *Catalog) FarmersForCategory(category string) []models.Farmer {
	out := []models.Farmer{}
	for _, f := range c.Farmers {
		for _, cat := range f.Categories {
			if cat == category {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
