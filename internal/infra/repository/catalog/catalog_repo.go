package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type productSeed struct {
	ID            int     `yaml:"id"`
	Name          string  `yaml:"name"`
	Image         string  `yaml:"image"`
	Price         string  `yaml:"price"`
	OriginalPrice string  `yaml:"original_price"`
	Category      string  `yaml:"category"`
	Rating        float64 `yaml:"rating"`
	Reviews       int     `yaml:"reviews"`
	Badge         string  `yaml:"badge"`
}

type catalogSeed struct {
	Categories []string      `yaml:"categories"`
	Products   []productSeed `yaml:"products"`
}

/*
商品目錄
啟動時載入一次，之後唯讀，所以不需要鎖
*/
type CatalogRepo struct {
	categories []string
	products   []model.Product
	byID       map[int]int
}

var _ repository.IProductRepository = (*CatalogRepo)(nil)

// NewDefaultCatalogRepo 使用內建的 catalog.yaml
func NewDefaultCatalogRepo() (*CatalogRepo, error) {
	return NewCatalogRepo(defaultCatalog)
}

func NewCatalogRepo(data []byte) (*CatalogRepo, error) {
	var seed catalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	known := make(map[string]struct{}, len(seed.Categories))
	for _, c := range seed.Categories {
		known[c] = struct{}{}
	}

	repo := &CatalogRepo{
		categories: seed.Categories,
		products:   make([]model.Product, 0, len(seed.Products)),
		byID:       make(map[int]int, len(seed.Products)),
	}
	for _, s := range seed.Products {
		p, err := s.toProduct()
		if err != nil {
			return nil, err
		}
		if _, ok := known[p.Category]; !ok {
			return nil, fmt.Errorf("product %d has unknown category %q", p.ID, p.Category)
		}
		if _, dup := repo.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		repo.byID[p.ID] = len(repo.products)
		repo.products = append(repo.products, p)
	}
	return repo, nil
}

func (s productSeed) toProduct() (model.Product, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("product %d has invalid price %q: %w", s.ID, s.Price, err)
	}
	p := model.Product{
		ID:       s.ID,
		Name:     s.Name,
		Image:    s.Image,
		Price:    price,
		Category: s.Category,
		Rating:   s.Rating,
		Reviews:  s.Reviews,
		Badge:    model.Badge(s.Badge),
	}
	if s.OriginalPrice != "" {
		op, err := decimal.NewFromString(s.OriginalPrice)
		if err != nil {
			return model.Product{}, fmt.Errorf("product %d has invalid original price %q: %w", s.ID, s.OriginalPrice, err)
		}
		p.OriginalPrice = &op
	}
	return p, nil
}

func (r *CatalogRepo) GetCategories(ctx context.Context) ([]string, error) {
	return append([]string(nil), r.categories...), nil
}

func (r *CatalogRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	res := make([]model.Product, len(r.products))
	copy(res, r.products)
	return res, nil
}

func (r *CatalogRepo) GetProductByID(ctx context.Context, id int) (*model.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}
	p := r.products[idx]
	return &p, nil
}
