package handler

import (
	"errors"
	"strconv"

	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// parseYearQuery returns nil when no year filter was given.
func parseYearQuery(c *fiber.Ctx) (*int, error) {
	raw := c.Query("year")
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("invalid year")
	}
	return &year, nil
}

func (h *SalesHandler) GetSummary(c *fiber.Ctx) error {
	year, err := parseYearQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.Summary(year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

func (h *SalesHandler) GetYears(c *fiber.Ctx) error {
	years, err := h.service.Years()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(years)
}

func (h *SalesHandler) UploadCSV(c *fiber.Ctx) error {
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

func (h *SalesHandler) ExportCSV(c *fiber.Ctx) error {
	year, err := parseYearQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.service.ExportCSV(year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	return c.Send(data)
}

type overrideRequest struct {
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

func (h *SalesHandler) UpsertOverride(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid year"})
	}
	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid month"})
	}

	var req overrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: "invalid JSON"})
	}

	entry, err := h.service.UpsertOverride(year, month, req.Quantity, decimal.NewFromFloat(req.TotalPrice))
	if err != nil {
		return c.Status(400).JSON(model.ApiResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(model.ApiResponse{Success: true, Message: "override saved", Data: entry})
}
