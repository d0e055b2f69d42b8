package usecase

import (
	"context"
	"strings"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	// Admin
	AddProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id int64, req *request.ProductRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64) error

	// Public
	GetProduct(ctx context.Context, id int64) (*response.ProductResponse, error)
	ListProducts(ctx context.Context) (response.ProductListResponse, error)
	SearchProducts(ctx context.Context, text string) (response.ProductListResponse, error)
}

type productService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		log:         log.With(zap.String("service", "product")),
	}
}

func (s *productService) AddProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	product, err := s.buildProduct(req)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("price", product.Price.String()),
		zap.Int("quantity", product.Quantity),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *request.ProductRequest) (*response.ProductResponse, error) {
	if id <= 0 {
		return nil, apperr.InvalidField("id", "Must be greater than 0")
	}

	product, err := s.buildProduct(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("Product updated",
		zap.Int64("product_id", product.ID),
		zap.String("price", product.Price.String()),
		zap.Int("quantity", product.Quantity),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.InvalidField("id", "Must be greater than 0")
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*response.ProductResponse, error) {
	if id <= 0 {
		return nil, apperr.InvalidField("id", "Must be greater than 0")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product", id)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) ListProducts(ctx context.Context) (response.ProductListResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Products retrieved", zap.Int("count", len(products)))
	return response.ProductsToResponse(products), nil
}

func (s *productService) SearchProducts(ctx context.Context, text string) (response.ProductListResponse, error) {
	products, err := s.productRepo.Search(ctx, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	s.log.Debug("Products searched",
		zap.String("text", text),
		zap.Int("count", len(products)))
	return response.ProductsToResponse(products), nil
}

// buildProduct validates req and converts it to an entity.
func (s *productService) buildProduct(req *request.ProductRequest) (*entity.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	product := &entity.Product{
		Name:     req.Name,
		Price:    decimal.NewFromFloat(req.Price),
		Quantity: req.Quantity,
	}
	if req.Description != "" {
		description := req.Description
		product.Description = &description
	}

	return product, nil
}
