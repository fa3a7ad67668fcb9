package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rei-naissance/Huggle-Bundler/internal/rest"
)

func SetupBundleRoutes(api *echo.Group, bundleHandler *rest.BundleHandler, recoHandler *rest.RecommendationHandler) {
	bundles := api.Group("/bundles")

	bundles.POST("/recommend", recoHandler.Recommend)
	bundles.POST("/recommend/ai", recoHandler.RecommendAI)
	bundles.POST("/recommend/ai/save", bundleHandler.RecommendAISave)

	bundles.POST("/save", bundleHandler.SaveBundle)
	bundles.GET("", bundleHandler.ListBundles)
	bundles.GET("/:id", bundleHandler.GetBundleByID)
}
