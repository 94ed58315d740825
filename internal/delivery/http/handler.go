package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stylefit/backend/internal/domain"
	"github.com/stylefit/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
	search          *usecase.SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService, search *usecase.SearchService) *Handler {
	return &Handler{
		recommendations: recommendations,
		search:          search,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylefit-backend",
		"version": "1.0.0",
	})
}

// recommendRequest is the JSON body for POST /api/v1/recommendations
type recommendRequest struct {
	UserID        string             `json:"userId"`
	Brands        []string           `json:"brands"`
	Category      string             `json:"category"`
	FitType       string             `json:"fitType"`
	QuotaPerBrand int                `json:"quotaPerBrand"`
	Cursor        domain.BrandCursor `json:"cursor"`
}

// Recommend handles size recommendation requests
func (h *Handler) Recommend(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recommendation service not configured",
		})
		return
	}

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.FitType != "" && !domain.ValidFitType(req.FitType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fit type"})
		return
	}

	resp, err := h.recommendations.Recommend(c.Request.Context(), &usecase.RecommendRequest{
		UserID:        req.UserID,
		Brands:        req.Brands,
		Category:      req.Category,
		FitType:       domain.FitType(req.FitType),
		QuotaPerBrand: req.QuotaPerBrand,
		Cursor:        req.Cursor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// searchRequest is the JSON body for POST /api/v1/search
type searchRequest struct {
	UserID   string `json:"userId"`
	Keyword  string `json:"keyword"`
	Gender   string `json:"gender"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
}

// Search handles fit-ranked keyword search requests
func (h *Handler) Search(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Search service not configured",
		})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	matches, err := h.search.Search(c.Request.Context(), &usecase.SearchRequest{
		UserID:   req.UserID,
		Keyword:  req.Keyword,
		Gender:   req.Gender,
		Category: req.Category,
		Brand:    req.Brand,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if matches == nil {
		matches = []domain.ProductMatch{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": matches,
		"total":   len(matches),
	})
}

// ProductFit handles single-product best-size requests
func (h *Handler) ProductFit(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recommendation service not configured",
		})
		return
	}

	productID := c.Param("id")
	userID := c.Query("userId")
	rawFitType := c.Query("fitType")
	if rawFitType != "" && !domain.ValidFitType(rawFitType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fit type"})
		return
	}

	fit, err := h.recommendations.BestFitForProduct(c.Request.Context(), productID, userID, domain.FitType(rawFitType))
	if err != nil {
		respondError(c, err)
		return
	}
	if fit == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found": true,
		"size":  fit.Entry.Name,
		"fits":  fit.Fits,
		"score": fit.Score,
		"entry": fit.Entry,
	})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoSizeChart):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
