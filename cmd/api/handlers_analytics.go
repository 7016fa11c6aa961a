package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mominahmadrao/SmartResturantSystem/internal/analytics"
)

func registerAnalyticsRoutes(g *gin.RouterGroup, reports *analytics.PGRepo) {
	g.GET("/total-orders", func(c *gin.Context) {
		n, err := reports.TotalOrders(c.Request.Context())
		respond(c, gin.H{"total_orders": n}, err)
	})
	g.GET("/total-revenue", func(c *gin.Context) {
		total, err := reports.TotalRevenue(c.Request.Context())
		respond(c, gin.H{"total_revenue": total}, err)
	})
	g.GET("/daily-revenue", func(c *gin.Context) {
		rows, err := reports.DailyRevenue(c.Request.Context())
		respond(c, rows, err)
	})
	g.GET("/monthly-revenue", func(c *gin.Context) {
		rows, err := reports.MonthlyRevenue(c.Request.Context())
		respond(c, rows, err)
	})
	g.GET("/total-customers", func(c *gin.Context) {
		n, err := reports.TotalCustomers(c.Request.Context())
		respond(c, gin.H{"total_customers": n}, err)
	})
	g.GET("/orders-by-status", func(c *gin.Context) {
		rows, err := reports.OrdersByStatus(c.Request.Context())
		respond(c, rows, err)
	})
	g.GET("/top-items", func(c *gin.Context) {
		rows, err := reports.TopItems(c.Request.Context())
		respond(c, rows, err)
	})
	g.GET("/top-riders", func(c *gin.Context) {
		rows, err := reports.TopRiders(c.Request.Context())
		respond(c, rows, err)
	})
	g.GET("/avg-order-value", func(c *gin.Context) {
		avg, err := reports.AvgOrderValue(c.Request.Context())
		respond(c, gin.H{"average_order_value": avg}, err)
	})
	g.GET("/avg-delivery-time", func(c *gin.Context) {
		seconds, err := reports.AvgDeliveryTime(c.Request.Context())
		respond(c, gin.H{"average_delivery_time_seconds": seconds}, err)
	})
	g.GET("/orders-per-customer", func(c *gin.Context) {
		rows, err := reports.OrdersPerCustomer(c.Request.Context())
		respond(c, rows, err)
	})
	g.GET("/payment-success-rate", func(c *gin.Context) {
		rate, err := reports.PaymentSuccessRate(c.Request.Context())
		respond(c, gin.H{"success_rate": rate}, err)
	})
	g.GET("/top-category", func(c *gin.Context) {
		rows, err := reports.TopCategory(c.Request.Context())
		respond(c, rows, err)
	})
}

func respond(c *gin.Context, payload any, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}
