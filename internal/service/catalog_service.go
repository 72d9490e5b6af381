package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
)

var ErrProductNotFound = errors.New("product not found")

// 空字串代表不過濾，兩個條件同時存在時為 AND
type ProductFilter struct {
	Category string
	Search   string
}

type ICatalogService interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, productID int) (*model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type CatalogService struct {
	productRepo repository.IProductRepository
}

var _ ICatalogService = (*CatalogService)(nil)

func NewCatalogService(productRepo repository.IProductRepository) *CatalogService {
	if util.IsNil(productRepo) {
		panic("NewCatalogService: productRepo is nil")
	}
	return &CatalogService{productRepo: productRepo}
}

/*
category: 完全相等
search: 名稱或分類包含關鍵字，不分大小寫
*/
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	res := make([]model.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID int) (*model.Product, error) {
	p, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
		}
		return nil, err
	}
	return p, nil
}

// ListCategories 依目錄順序，附上每個分類的商品數
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	names, err := s.productRepo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(names))
	for _, p := range products {
		counts[p.Category]++
	}
	res := make([]model.Category, 0, len(names))
	for _, name := range names {
		res = append(res, model.Category{Name: name, Count: counts[name]})
	}
	return res, nil
}
