package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mominahmadrao/SmartResturantSystem/internal/httpx"
	"github.com/mominahmadrao/SmartResturantSystem/internal/order"
	"github.com/mominahmadrao/SmartResturantSystem/internal/validation"
)

// orderErrStatus maps the engine's error taxonomy onto HTTP codes.
func orderErrStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrValidation), errors.Is(err, order.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func createOrderHandler(eng *order.Engine, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := httpx.IdentityFrom(c)
		var req order.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		o, err := eng.CreateOrder(c.Request.Context(), actor, req)
		if err != nil {
			c.JSON(orderErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

func listOrdersHandler(eng *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := httpx.IdentityFrom(c)
		limit, offset := pageParams(c)
		orders, err := eng.ListOrders(c.Request.Context(), actor, limit, offset)
		if err != nil {
			c.JSON(orderErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(eng *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := httpx.IdentityFrom(c)
		o, err := eng.GetOrder(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			c.JSON(orderErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func orderHistoryHandler(eng *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := httpx.IdentityFrom(c)
		history, err := eng.ListHistory(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			c.JSON(orderErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		if history == nil {
			history = []order.StatusChange{}
		}
		c.JSON(http.StatusOK, gin.H{"history": history})
	}
}

// PUT /orders/:id/status?status=<value>
func updateOrderStatusHandler(eng *order.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := httpx.IdentityFrom(c)
		status := c.Query("status")
		if status == "" {
			// also accept a JSON body {"status": "..."}
			var body struct {
				Status string `json:"status"`
			}
			if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
				return
			}
			status = body.Status
		}
		o, err := eng.TransitionStatus(c.Request.Context(), actor, c.Param("id"), status)
		if err != nil {
			c.JSON(orderErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
