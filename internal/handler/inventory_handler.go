package handler

import (
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetOutOfStock(c *fiber.Ctx) error {
	products, err := h.service.OutOfStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) BulkAdjustStock(c *fiber.Ctx) error {
	var body struct {
		Updates []model.StockAdjustment `json:"updates"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.BulkAdjustStock(body.Updates); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock levels updated"})
}

func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var body struct {
		Quantity        float64  `json:"quantity"`
		NewCostPrice    *float64 `json:"new_cost_price"`
		NewPricePerUnit *float64 `json:"new_price_per_unit"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	product, err := h.service.Restock(id, body.Quantity, body.NewCostPrice, body.NewPricePerUnit, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product restocked", "data": product})
}

func (h *InventoryHandler) GetInventoryReport(c *fiber.Ctx) error {
	report, err := h.service.Report()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *InventoryHandler) GetExpectedProfit(c *fiber.Ctx) error {
	expected, err := h.service.ExpectedProfit()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"expected_profit": expected})
}
