package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ordering-backend/internal/observability"
)

func wireRouter(handlerset Handlers, middlewareset Middleware, metrics *observability.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-requestid"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(metricsMiddleware(metrics))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", middlewareset.Auth.RequireAuth())
	{
		api.POST("/orders", handlerset.Order.Create)
		api.GET("/orders", handlerset.Order.List)
		api.GET("/orders/:id", handlerset.Order.Get)
		api.PUT("/orders/:id/cancel", handlerset.Order.Cancel)
		api.PUT("/orders/:id/ship", handlerset.Order.Ship)
		api.PUT("/orders/:id/stock/confirm", handlerset.Order.ConfirmStock)
		api.PUT("/orders/:id/stock/reject", handlerset.Order.RejectStock)
		api.PUT("/orders/:id/pay", handlerset.Order.ConfirmPayment)
		api.POST("/buyer/payment-methods", handlerset.Buyer.VerifyPaymentMethod)
	}

	return router
}

func metricsMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		metrics.ApiInflightInc()
		c.Next()
		metrics.ApiInflightDec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
