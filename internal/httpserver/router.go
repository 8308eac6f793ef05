package httpserver

import (
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/metrics"
)

// buildRouter wires routes for the API.
func buildRouter(logger logrus.FieldLogger, db Pinger, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.CustomerSvc == nil || deps.CategorySvc == nil || deps.ProductSvc == nil || deps.ReviewSvc == nil {
		return nil, errors.New("httpserver: all services are required")
	}

	logger = logging.OrDiscard(logger)

	router := gin.New()

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSAllowedOrigins) == 0 || (len(opts.CORSAllowedOrigins) == 1 && opts.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.CORSAllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, requestIDHeader)
	corsCfg.ExposeHeaders = []string{requestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour

	var httpMetrics *metrics.HTTP
	if opts.Registry != nil {
		httpMetrics = metrics.NewHTTP(opts.Registry)
	}

	router.Use(
		requestID(),
		requestLogger(logger),
		gin.CustomRecovery(recoverJSON(logger)),
		cors.New(corsCfg),
		observe(httpMetrics),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if opts.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	h := &handlers{deps: deps, logger: logger}

	customers := router.Group("/customers")
	customers.POST("", h.createCustomer)
	customers.GET("", h.listCustomers)
	customers.GET("/:id", h.getCustomer)
	customers.PATCH("/:id", h.updateCustomer)
	customers.DELETE("/:id", h.deleteCustomer)
	customers.GET("/:id/reviews", h.listCustomerReviews)

	categories := router.Group("/categories")
	categories.POST("", h.createCategory)
	categories.GET("", h.listCategories)
	categories.GET("/:id", h.getCategory)
	categories.PATCH("/:id", h.updateCategory)
	categories.DELETE("/:id", h.deleteCategory)

	products := router.Group("/products")
	products.POST("", h.createProduct)
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.PATCH("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)
	products.GET("/:id/reviews", h.listProductReviews)
	products.PUT("/:id/reviews/:customerId", h.upsertReview)
	products.GET("/:id/rating", h.productRating)

	reviews := router.Group("/reviews")
	reviews.GET("/:id", h.getReview)
	reviews.DELETE("/:id", h.deleteReview)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger logrus.FieldLogger
}
