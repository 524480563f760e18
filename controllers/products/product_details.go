package productsController

import (
	"context"

	"fiber-mongo-storefront/responses"

	"github.com/gofiber/fiber/v2"
)

func (h *ProductsController) FetchProductDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.FindByID(ctx, c.Params("id"))
	if err != nil {
		return responses.Error(c, err, "Error fetching product details")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Product fetched successfully",
		Result: &fiber.Map{
			"product": product,
		},
	})
}
