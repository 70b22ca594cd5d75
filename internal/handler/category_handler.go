package handler

import (
	"errors"
	"io"
	"strconv"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// Helper untuk parse integer id dari path param
func parseID(id string) (uint, error) {
	parsed, err := strconv.ParseUint(id, 10, 64)
	return uint(parsed), err
}

// readUpload pulls the uploaded CSV out of the multipart "file" field.
func readUpload(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("file field is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not open uploaded file")
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid JSON"})
	}

	created, err := h.service.Create(&category)
	if err != nil {
		status := 400
		if errors.Is(err, service.ErrDuplicateCategory) {
			status = 409
		}
		return c.Status(status).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	return c.Status(201).JSON(model.ApiResponse{Success: true, Message: "category created", Data: created})
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid category ID"})
	}

	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid JSON"})
	}

	updated, err := h.service.Rename(id, req.Name)
	if err != nil {
		status := 400
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			status = 404
		case errors.Is(err, service.ErrDuplicateCategory):
			status = 409
		}
		return c.Status(status).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(model.ApiResponse{Success: true, Message: "category updated", Data: updated})
}

func (h *CategoryHandler) UploadCSV(c *fiber.Ctx) error {
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

func (h *CategoryHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.service.ExportCSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="categories.csv"`)
	return c.Send(data)
}
