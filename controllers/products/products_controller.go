package productsController

import (
	"context"
	"strconv"
	"time"

	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"

	"github.com/gofiber/fiber/v2"
)

type ProductsController struct {
	catalog *services.CatalogService
	timeout time.Duration
}

func New(catalog *services.CatalogService, timeout time.Duration) *ProductsController {
	return &ProductsController{catalog: catalog, timeout: timeout}
}

// getProducts
func (h *ProductsController) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil {
		limit = 10
	}

	result, err := h.catalog.ListProducts(ctx, page, limit)
	if err != nil {
		return responses.Error(c, err, "Error fetching products")
	}

	status := "success"
	if len(result.Products) == 0 {
		status = "no more products"
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: status,
		Result: &fiber.Map{
			"products":    result.Products,
			"totalPages":  result.TotalPages,
			"currentPage": result.Page,
			"hasNextPage": result.HasNextPage,
		},
	})
}

// SearchProducts matches ?q= against product name and category.
func (h *ProductsController) SearchProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Search(ctx, c.Query("q"))
	if err != nil {
		return responses.Error(c, err, "Error searching products")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "success",
		Result: &fiber.Map{
			"products": products,
		},
	})
}
