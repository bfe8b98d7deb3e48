package products

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/internal/categories"
	"github.com/nvteo/bakeshop-backend/internal/media"
	"github.com/nvteo/bakeshop-backend/pkg/db/models"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

// ProductInput carries the multipart form fields for create and update.
type ProductInput struct {
	Name         string
	Price        int64
	Description  string
	CategoryID   *int64
	IsBestSeller bool
	ImageFile    multipart.File
	ImageHeader  *multipart.FileHeader
}

// Page is one listing page plus the total match count.
type Page struct {
	Data  []models.Product
	Total int64
}

// ServiceParams groups dependencies for the products service.
type ServiceParams struct {
	ProductRepo  *Repository
	CategoryRepo *categories.Repository
	Storage      media.Storage
}

// Service exposes business rules for product management.
type Service interface {
	List(ctx context.Context, filter ListFilter) (Page, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	productRepo  *Repository
	categoryRepo *categories.Repository
	storage      media.Storage
}

// NewService builds a products service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.CategoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category repo is required")
	}
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media storage is required")
	}
	return &service{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		storage:      params.Storage,
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (Page, error) {
	rows, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return Page{Data: rows, Total: total}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	imageURL := ""
	if input.ImageFile != nil {
		url, err := s.storage.SaveImage(ctx, input.ImageFile, input.ImageHeader)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	product := &models.Product{
		Name:         strings.TrimSpace(input.Name),
		Price:        input.Price,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		ImageURL:     imageURL,
		IsBestSeller: input.IsBestSeller,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return s.GetByID(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	if input.ImageFile != nil {
		url, err := s.storage.SaveImage(ctx, input.ImageFile, input.ImageHeader)
		if err != nil {
			return nil, err
		}
		if product.ImageURL != "" {
			_ = s.storage.Remove(ctx, product.ImageURL)
		}
		product.ImageURL = url
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.IsBestSeller = input.IsBestSeller
	product.Category = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	affected, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if product.ImageURL != "" {
		_ = s.storage.Remove(ctx, product.ImageURL)
	}
	return nil
}

func (s *service) validateInput(ctx context.Context, input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "category does not exist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
	}
	return nil
}
