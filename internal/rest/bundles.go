package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rei-naissance/Huggle-Bundler/business/bundles"
	"github.com/rei-naissance/Huggle-Bundler/business/recommender"
	"github.com/rei-naissance/Huggle-Bundler/domain"
	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
)

type (
	BundlesService interface {
		Save(ctx context.Context, candidate domain.BundleCandidate, sellerID string) (*domain.Bundle, error)
		RecommendAndSave(ctx context.Context, sellerID string, numBundles int) ([]domain.Bundle, error)
		GetBundleByID(ctx context.Context, id string) (*domain.Bundle, error)
		GetBundlesBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Bundle, error)
	}

	BundleHandler struct {
		bundlesService BundlesService
		validator      *validator.Validate
		timeout        time.Duration
	}

	SaveBundleProduct struct {
		ID        string     `json:"id" validate:"required"`
		Name      string     `json:"name"`
		Price     float64    `json:"price" validate:"gte=0"`
		Stock     int        `json:"stock" validate:"gte=0"`
		ExpiresOn *time.Time `json:"expires_on"`
	}

	SaveBundleRequest struct {
		SellerID      string              `json:"seller_id" validate:"required"`
		StoreID       string              `json:"store_id"`
		Category      string              `json:"category"`
		Name          string              `json:"name" validate:"required"`
		Description   string              `json:"description"`
		Products      []SaveBundleProduct `json:"products" validate:"required,min=1,dive"`
		Price         float64             `json:"price" validate:"gte=0"`
		OriginalPrice float64             `json:"original_price" validate:"gte=0"`
		Stock         int                 `json:"stock" validate:"gte=0"`
	}

	ListBundlesQuery struct {
		SellerID string `query:"seller_id" validate:"required"`
		Limit    int    `query:"limit"`
		Offset   int    `query:"offset"`
	}
)

func NewBundleHandler(bundlesService BundlesService) *BundleHandler {
	return &BundleHandler{
		bundlesService: bundlesService,
		validator:      validator.New(),
		timeout:        30 * time.Second,
	}
}

// POST /api/v1/bundles/recommend/ai/save
func (h *BundleHandler) RecommendAISave(c echo.Context) error {
	var req RecommendRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind recommend request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate recommend request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.bundlesService.RecommendAndSave(ctx, req.SellerID, req.NumBundles)
	if err != nil {
		if errors.Is(err, recommender.ErrUnknownSeller) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to recommend and save bundles", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}

// POST /api/v1/bundles/save
func (h *BundleHandler) SaveBundle(c echo.Context) error {
	var req SaveBundleRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind save bundle request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate save bundle request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	members := make([]domain.BundleProduct, 0, len(req.Products))
	for _, p := range req.Products {
		members = append(members, domain.BundleProduct{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			ExpiresOn: p.ExpiresOn,
		})
	}

	candidate := domain.BundleCandidate{
		StoreID:       req.StoreID,
		Category:      req.Category,
		Name:          req.Name,
		Description:   req.Description,
		Products:      members,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
	}

	bundle, err := h.bundlesService.Save(ctx, candidate, req.SellerID)
	if err != nil {
		return h.saveError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(bundle))
}

// GET /api/v1/bundles/:id
func (h *BundleHandler) GetBundleByID(c echo.Context) error {
	bundleID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundle, err := h.bundlesService.GetBundleByID(ctx, bundleID)
	if err != nil {
		if errors.Is(err, bundles.ErrBundleNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find bundle", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(bundle))
}

// GET /api/v1/bundles?seller_id=...
func (h *BundleHandler) ListBundles(c echo.Context) error {
	var q ListBundlesQuery

	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.bundlesService.GetBundlesBySeller(ctx, q.SellerID, q.Limit, q.Offset)
	if err != nil {
		logger.Error("Failed to list bundles", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

func (h *BundleHandler) saveError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, bundles.ErrDuplicateBundle):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case errors.Is(err, bundles.ErrNoProducts):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, recommender.ErrUnknownSeller):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	logger.Error("Failed to save bundle", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
