package adminController

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"
	"fiber-mongo-storefront/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminController struct {
	catalog  *services.CatalogService
	orders   *services.OrderService
	imageDir string
	timeout  time.Duration
}

func New(catalog *services.CatalogService, orders *services.OrderService, imageDir string, timeout time.Duration) *AdminController {
	return &AdminController{catalog: catalog, orders: orders, imageDir: imageDir, timeout: timeout}
}

type ProductRequest struct {
	Name        string      `json:"name" form:"name" validate:"required"`
	Description string      `json:"description" form:"description"`
	Category    string      `json:"category" form:"category" validate:"required"`
	Price       json.Number `json:"price" form:"price" validate:"required"`
}

func (r ProductRequest) input() (services.ProductInput, error) {
	price, err := models.ParseMoney(r.Price.String())
	if err != nil {
		return services.ProductInput{}, errors.New("price must be a number")
	}
	return services.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       price,
	}, nil
}

func (h *AdminController) ListProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.AllProducts(ctx)
	if err != nil {
		return responses.Error(c, err, "Error fetching products")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "success",
		Result:  &fiber.Map{"products": products},
	})
}

// AddProduct accepts a multipart form with an optional "image" file.
func (h *AdminController) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var request ProductRequest
	if err := utils.ParseBody(c, &request); err != nil {
		return responses.BadRequest(c, err.Error())
	}
	in, err := request.input()
	if err != nil {
		return responses.BadRequest(c, err.Error())
	}

	productId, err := h.catalog.AddProduct(ctx, in)
	if err != nil {
		return responses.Error(c, err, "Error adding product")
	}

	result := fiber.Map{"productId": productId.Hex()}

	if image := uploadedImage(c); image != nil {
		path, err := h.saveImage(ctx, c, image, productId)
		if err != nil {
			return responses.Error(c, err, "Error saving product image")
		}
		result["image"] = path
	}

	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Message: "Product added successfully",
		Result:  &result,
	})
}

func (h *AdminController) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var request ProductRequest
	if err := utils.ParseBody(c, &request); err != nil {
		return responses.BadRequest(c, err.Error())
	}
	in, err := request.input()
	if err != nil {
		return responses.BadRequest(c, err.Error())
	}

	if err := h.catalog.UpdateProduct(ctx, c.Params("id"), in); err != nil {
		return responses.Error(c, err, "Error updating product")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated successfully",
	})
}

func (h *AdminController) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	productId := c.Params("id")
	if err := h.catalog.DeleteProduct(ctx, productId); err != nil {
		return responses.Error(c, err, "Error deleting product")
	}

	if err := os.Remove(filepath.Join(h.imageDir, productId+".png")); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("remove image for product %s: %v", productId, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Product deleted successfully",
	})
}

func (h *AdminController) GetAllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.GetAllOrders(ctx)
	if err != nil {
		return responses.Error(c, err, "Failed to fetch orders")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

func (h *AdminController) ExportProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.AllProducts(ctx)
	if err != nil {
		return responses.Error(c, err, "Failed to fetch products")
	}

	var buf bytes.Buffer
	if err := writeProductsWorkbook(&buf, products); err != nil {
		return responses.Error(c, err, "Failed to write Excel file")
	}
	return sendWorkbook(c, "products.xlsx", buf.Bytes())
}

func (h *AdminController) ExportOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.GetAllOrders(ctx)
	if err != nil {
		return responses.Error(c, err, "Failed to fetch orders")
	}

	var buf bytes.Buffer
	if err := writeOrdersWorkbook(&buf, orders); err != nil {
		return responses.Error(c, err, "Failed to write Excel file")
	}
	return sendWorkbook(c, "orders.xlsx", buf.Bytes())
}

func (h *AdminController) saveImage(ctx context.Context, c *fiber.Ctx, image *multipart.FileHeader, productId primitive.ObjectID) (string, error) {
	if err := c.SaveFile(image, filepath.Join(h.imageDir, productId.Hex()+".png")); err != nil {
		return "", err
	}
	return h.catalog.SetProductImage(ctx, productId)
}

// uploadedImage returns the "image" file of a multipart request, if one was sent.
func uploadedImage(c *fiber.Ctx) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["image"]) == 0 {
		return nil
	}
	return form.File["image"][0]
}

func sendWorkbook(c *fiber.Ctx, filename string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Status(fiber.StatusOK).Send(body)
}
