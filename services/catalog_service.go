package services

import (
	"context"
	"errors"
	"strings"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	List(ctx context.Context, skip, limit int64) ([]models.Product, int64, error)
	Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) error
	SetImage(ctx context.Context, id primitive.ObjectID, image string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CatalogService answers product lookups and manages the catalog for admins.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) FindByID(ctx context.Context, productID string) (*models.Product, error) {
	id, err := parseID("productId", productID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, storageError("find product", err)
	}
	return product, nil
}

// Search matches query case-insensitively against product name and category.
// A blank query matches nothing.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}
	products, err := s.products.Search(ctx, query)
	if err != nil {
		return nil, storageError("search products", err)
	}
	return products, nil
}

type ProductPage struct {
	Products    []models.Product `json:"products"`
	Page        int64            `json:"page"`
	Limit       int64            `json:"limit"`
	Total       int64            `json:"total"`
	TotalPages  int64            `json:"totalPages"`
	HasNextPage bool             `json:"hasNextPage"`
}

func (s *CatalogService) ListProducts(ctx context.Context, page, limit int64) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	products, total, err := s.products.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, storageError("list products", err)
	}
	totalPages := (total + limit - 1) / limit
	return &ProductPage{
		Products:    products,
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
	}, nil
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, storageError("list products", err)
	}
	return products, nil
}

type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       models.Money
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return validationError("category is required")
	}
	if in.Price.IsNegative() {
		return validationError("price must not be negative")
	}
	return nil
}

// AddProduct stores a new product and returns its id.
func (s *CatalogService) AddProduct(ctx context.Context, in ProductInput) (primitive.ObjectID, error) {
	if err := in.validate(); err != nil {
		return primitive.NilObjectID, err
	}
	id, err := s.products.Insert(ctx, &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
	})
	if err != nil {
		return primitive.NilObjectID, storageError("insert product", err)
	}
	return id, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, productID string, in ProductInput) error {
	id, err := parseID("productId", productID)
	if err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}
	err = s.products.Update(ctx, id, models.ProductUpdate{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
	})
	return s.mutationError("update product", err)
}

// SetProductImage records the public path of the product's uploaded image.
func (s *CatalogService) SetProductImage(ctx context.Context, productID primitive.ObjectID) (string, error) {
	path := models.ProductImagePath(productID)
	if err := s.mutationError("set product image", s.products.SetImage(ctx, productID, path)); err != nil {
		return "", err
	}
	return path, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := parseID("productId", productID)
	if err != nil {
		return err
	}
	return s.mutationError("delete product", s.products.Delete(ctx, id))
}

func (s *CatalogService) mutationError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrProductNotFound
	default:
		return storageError(op, err)
	}
}
