package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service     service.ProductService
	fileService service.FileService
	uploadDir   string
}

func NewProductHandler(s service.ProductService, fs service.FileService) *ProductHandler {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	return &ProductHandler{service: s, fileService: fs, uploadDir: uploadDir}
}

func listParams(c *fiber.Ctx) query.Params {
	return query.Params{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filters := repository.ProductFilters{
		Category:        c.Query("category"),
		MeasurementType: c.Query("measurement_type"),
		LowStock:        c.Query("low_stock") == "true",
	}

	products, total, totalPages, err := h.service.List(listParams(c), filters)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"products":     products,
		"total":        total,
		"total_pages":  totalPages,
		"current_page": c.QueryInt("page", 1),
	})
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.StoreProduct
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := getUserID(c)
	created, err := h.service.Create(&product, userID)
	if err != nil {
		return fail(c, err)
	}

	if err := h.attachUploads(c, created.ID, userID); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": created})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) GetProductByBarcode(c *fiber.Ctx) error {
	product, err := h.service.GetByBarcode(c.Params("barcode"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.StoreProduct
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := getUserID(c)
	updated, err := h.service.Update(id, &product, userID)
	if err != nil {
		return fail(c, err)
	}

	if err := h.attachUploads(c, updated.ID, userID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.SoftDelete(id, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// attachUploads saves any multipart "files" parts to the upload dir and
// associates them with the product. JSON requests simply have none.
func (h *ProductHandler) attachUploads(c *fiber.Ctx, productID uuid.UUID, userID string) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return nil
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return err
	}

	uploads := make([]service.Upload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		dest := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fh.Filename)))
		if err := c.SaveFile(fh, dest); err != nil {
			return err
		}
		uploads = append(uploads, service.Upload{
			Name:     fh.Filename,
			Path:     dest,
			MimeType: contentType(fh),
			Size:     fh.Size,
		})
	}

	_, err = h.fileService.Attach("StoreProduct", productID, uploads, userID)
	return err
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
