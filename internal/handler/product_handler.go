package handler

import (
	"errors"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid JSON"})
	}

	created, err := h.service.Create(&product)
	if err != nil {
		status := 400
		if errors.Is(err, service.ErrCategoryMissing) {
			status = 409
		}
		return c.Status(status).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	return c.Status(201).JSON(model.ApiResponse{Success: true, Message: "product created", Data: created})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid product ID"})
	}

	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid JSON"})
	}

	updated, err := h.service.Update(id, &req)
	if err != nil {
		status := 400
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			status = 404
		case errors.Is(err, service.ErrCategoryMissing):
			status = 409
		}
		return c.Status(status).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(model.ApiResponse{Success: true, Message: "product updated", Data: updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid product ID"})
	}

	if err := h.service.Delete(id); err != nil {
		status := 400
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			status = 404
		case errors.Is(err, service.ErrProductHasSales):
			status = 409
		}
		return c.Status(status).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(model.ApiResponse{Success: true, Message: "product deleted"})
}

func (h *ProductHandler) UploadCSV(c *fiber.Ctx) error {
	contents, err := readUpload(c)
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	result, err := h.service.ImportCSV(contents)
	if err != nil {
		return c.Status(500).JSON(model.ApiResponse{Success: false, Message: "import failed"})
	}

	return c.JSON(model.ApiResponse{Success: true, Message: "import completed", Data: result})
}

func (h *ProductHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.service.ExportCSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(data)
}
