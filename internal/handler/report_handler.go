package handler

import (
	"time"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	days := c.QueryInt("days", 30)
	movement, err := h.service.StockMovement(productID, days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(movement)
}

func (h *ReportHandler) GetBestSellers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	period := model.PeriodType(c.Query("period"))

	sellers, err := h.service.BestSellers(limit, period)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sellers)
}

func (h *ReportHandler) GetProfitLoss(c *fiber.Ctx) error {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start_date"), time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date, expected YYYY-MM-DD"})
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end_date"), time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date, expected YYYY-MM-DD"})
	}
	// Inclusive end bound: stretch to the last instant of the day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	report, err := h.service.ProfitLoss(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetSalesStats(c *fiber.Ctx) error {
	period := model.PeriodType(c.Query("period", string(model.PeriodWeekly)))

	stats, err := h.service.SalesStats(period)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
