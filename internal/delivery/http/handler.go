package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/giftshop/storefront/internal/domain"
	"github.com/giftshop/storefront/internal/infrastructure/export"
	"github.com/giftshop/storefront/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// reloadPath is offered to clients as the retry action when the feed is unavailable.
const reloadPath = "/api/v1/catalog/reload"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	staff   *usecase.StaffService
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, staff *usecase.StaffService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalog,
		staff:   staff,
		logger:  logger,
	}
}

// HealthCheck returns the health status of the API and whether a catalog is loaded
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": "storefront",
		"version": "1.0.0",
		"catalog": "not_loaded",
	}

	if snapshot, err := h.catalog.Current(); err == nil {
		response["catalog"] = "loaded"
		response["generation"] = snapshot.Generation
		response["products"] = len(snapshot.Products)
	}

	c.JSON(http.StatusOK, response)
}

// ListProducts handles catalog queries
// Query: q, filter, category, offset, limit
func (h *Handler) ListProducts(c *gin.Context) {
	var request domain.SearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		h.handleError(c, domain.ErrInvalidRequest)
		return
	}

	views, total, err := h.catalog.Query(c.Request.Context(), &request)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": views,
		"total":    total,
		"offset":   request.Offset,
		"limit":    request.Limit,
	})
}

// GetProduct returns a single storefront product
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	view, err := h.catalog.Product(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListCategories returns the category enumeration and the browse tags
func (h *Handler) ListCategories(c *gin.Context) {
	categories := make([]gin.H, 0, len(domain.AllCategories))
	for _, category := range domain.AllCategories {
		categories = append(categories, gin.H{
			"name":  category,
			"slug":  category.Slug(),
			"emoji": usecase.CategoryEmoji(category),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"filters": []domain.FilterTag{
			domain.FilterUnder50k, domain.Filter50to100k, domain.FilterPremium, domain.FilterSameDay,
		},
		"tags": []domain.CategoryTag{
			domain.CategoryTagForHer, domain.CategoryTagForHim, domain.CategoryTagRomantic,
			domain.CategoryTagBirthday, domain.CategoryTagSweets, domain.CategoryTagTrending,
		},
	})
}

// ReloadCatalog refetches the feed and swaps in the new catalog
func (h *Handler) ReloadCatalog(c *gin.Context) {
	snapshot, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generation": snapshot.Generation,
		"products":   len(snapshot.Products),
		"dropped":    snapshot.Dropped,
	})
}

// StaffLookup finds staff products by code or name
func (h *Handler) StaffLookup(c *gin.Context) {
	products, err := h.staff.Lookup(c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// ShareProduct returns the plain-text block staff copy into chats
func (h *Handler) ShareProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	text, err := h.staff.ShareText(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.String(http.StatusOK, text)
}

// ExportStaffProducts downloads the staff list as a spreadsheet
func (h *Handler) ExportStaffProducts(c *gin.Context) {
	products, err := h.staff.Products()
	if err != nil {
		h.handleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteProducts(&buf, products); err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		h.handleError(c, domain.ErrInvalidRequest)
		return 0, false
	}
	return id, true
}

// handleError maps domain errors to HTTP responses
func (h *Handler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrFeedUnavailable), errors.Is(err, domain.ErrCatalogNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
			"retry": reloadPath,
		})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrUnknownFilter),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		h.logger.Error("unhandled request error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
	}
}
