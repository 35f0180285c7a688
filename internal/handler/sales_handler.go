package handler

import (
	"strings"
	"time"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) RecordSale(c *fiber.Ctx) error {
	var req model.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sale, err := h.service.RecordSale(&req, getUserID(c), getUserName(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	filters := repository.SaleFilters{
		CustomerName: c.Query("customer_name"),
	}

	// Date bounds widen to whole days: start at midnight, end just
	// before the next midnight.
	if start := c.Query("start_date"); start != "" {
		t, err := time.ParseInLocation("2006-01-02", start, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date, expected YYYY-MM-DD"})
		}
		filters.StartDate = &t
	}
	if end := c.Query("end_date"); end != "" {
		t, err := time.ParseInLocation("2006-01-02", end, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date, expected YYYY-MM-DD"})
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filters.EndDate = &endOfDay
	}
	if methods := c.Query("payment_method"); methods != "" {
		filters.PaymentMethods = strings.Split(methods, ",")
	}

	sales, total, totalPages, err := h.service.ListSales(listParams(c), filters)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"sales":        sales,
		"total":        total,
		"total_pages":  totalPages,
		"current_page": c.QueryInt("page", 1),
	})
}

func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	sale, err := h.service.GetSaleByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}
