package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rei-naissance/Huggle-Bundler/business/recommender"
	"github.com/rei-naissance/Huggle-Bundler/domain"
	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
	"github.com/rei-naissance/Huggle-Bundler/pkg/metrics"
)

type (
	RecommenderService interface {
		Recommend(ctx context.Context, sellerID string, numBundles int) ([]domain.BundleCandidate, error)
		RecommendEnriched(ctx context.Context, sellerID string, numBundles int) ([]domain.BundleCandidate, error)
	}

	RecommendationHandler struct {
		recommenderService RecommenderService
		validator          *validator.Validate
		timeout            time.Duration
	}

	RecommendRequest struct {
		SellerID   string `json:"seller_id" validate:"required"`
		NumBundles int    `json:"num_bundles" validate:"required,gt=0"`
	}
)

func NewRecommendationHandler(recommenderService RecommenderService) *RecommendationHandler {
	return &RecommendationHandler{
		recommenderService: recommenderService,
		validator:          validator.New(),
		timeout:            30 * time.Second,
	}
}

// POST /api/v1/bundles/recommend
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.RecommendLatency.Observe(time.Since(start).Seconds()) }()
	metrics.RecommendRequests.Inc()

	req, err := h.bindRecommendRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	candidates, err := h.recommenderService.Recommend(ctx, req.SellerID, req.NumBundles)
	if err != nil {
		return h.recommendError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(candidates))
}

// POST /api/v1/bundles/recommend/ai
func (h *RecommendationHandler) RecommendAI(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.RecommendLatency.Observe(time.Since(start).Seconds()) }()
	metrics.RecommendRequests.Inc()

	req, err := h.bindRecommendRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	candidates, err := h.recommenderService.RecommendEnriched(ctx, req.SellerID, req.NumBundles)
	if err != nil {
		return h.recommendError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(candidates))
}

func (h *RecommendationHandler) bindRecommendRequest(c echo.Context) (RecommendRequest, error) {
	var req RecommendRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind recommend request", err)
		return RecommendRequest{}, err
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate recommend request", err)
		return RecommendRequest{}, err
	}

	return req, nil
}

func (h *RecommendationHandler) recommendError(c echo.Context, err error) error {
	if errors.Is(err, recommender.ErrUnknownSeller) {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	logger.Error("Failed to recommend bundles", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
