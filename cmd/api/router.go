package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mominahmadrao/SmartResturantSystem/internal/analytics"
	"github.com/mominahmadrao/SmartResturantSystem/internal/auth"
	"github.com/mominahmadrao/SmartResturantSystem/internal/httpx"
	"github.com/mominahmadrao/SmartResturantSystem/internal/menu"
	"github.com/mominahmadrao/SmartResturantSystem/internal/order"
	"github.com/mominahmadrao/SmartResturantSystem/internal/rider"
)

type deps struct {
	users    auth.Repository
	tokens   *auth.TokenIssuer
	menu     menu.Repository
	engine   *order.Engine
	riders   rider.Repository
	reports  *analytics.PGRepo
	validate *validatorv10.Validate
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/auth/register", registerHandler(d.users, d.riders))
	r.POST("/auth/login", loginHandler(d.users, d.tokens))
	r.GET("/auth/me", httpx.BearerAuth(d.tokens), meHandler(d.users))

	r.GET("/menu", listMenuHandler(d.menu))
	r.GET("/menu/categories", listCategoriesHandler(d.menu))
	adminMenu := r.Group("/menu", httpx.BearerAuth(d.tokens), httpx.RequireRole(auth.RoleAdmin))
	adminMenu.POST("", createMenuItemHandler(d.menu))
	adminMenu.POST("/categories", createCategoryHandler(d.menu))
	adminMenu.PUT("/:id", updateMenuItemHandler(d.menu))
	adminMenu.DELETE("/:id", deleteMenuItemHandler(d.menu))

	orders := r.Group("/orders", httpx.BearerAuth(d.tokens))
	orders.POST("", createOrderHandler(d.engine, d.validate))
	orders.GET("", listOrdersHandler(d.engine))
	orders.GET("/:id", getOrderHandler(d.engine))
	orders.GET("/:id/history", orderHistoryHandler(d.engine))
	orders.PUT("/:id/status", updateOrderStatusHandler(d.engine))

	riders := r.Group("/rider", httpx.BearerAuth(d.tokens), httpx.RequireRole(auth.RoleRider))
	riders.GET("/profile", riderProfileHandler(d.riders))
	riders.POST("/location", riderLocationHandler(d.riders))
	riders.POST("/online", riderOnlineHandler(d.riders))

	reports := r.Group("/admin/analytics", httpx.BearerAuth(d.tokens), httpx.RequireRole(auth.RoleAdmin))
	registerAnalyticsRoutes(reports, d.reports)

	return r
}
