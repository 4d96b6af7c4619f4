package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eversol-backend/internal/shared/middleware"
)

func SetupRouter(app *application) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"name":    app.cfg.App.Name,
				"version": app.cfg.App.Version,
			})
		})

		// Public storefront: catalog browsing and pincode lookups.
		app.catalogHandler.RegisterRoutes(v1)
		app.pincodeHandler.RegisterPublicRoutes(v1.Group("/pincode"))

		// Customer state, keyed by the authenticated customer.
		customer := v1.Group("", middleware.Auth(app.jwtManager))
		{
			app.cartHandler.RegisterRoutes(customer.Group("/cart"))
			app.wishlistHandler.RegisterRoutes(customer.Group("/wishlist"))
			app.addressHandler.RegisterRoutes(customer.Group("/addresses"))
			app.pincodeHandler.RegisterCustomerRoutes(customer.Group("/customer/pincode"))
		}
	}

	// Back office.
	app.adminHandler.RegisterRoutes(router.Group("/api/admin"), app.jwtManager)

	return router
}
