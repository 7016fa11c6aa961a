package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mominahmadrao/SmartResturantSystem/internal/menu"
)

func validPrice(s string) (string, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return "", false
	}
	return d.StringFixed(2), true
}

func listMenuHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if items == nil {
			items = []menu.ItemWithCategory{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func listCategoriesHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if cats == nil {
			cats = []menu.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

func createMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		price, ok := validPrice(req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative decimal"})
			return
		}
		available := true
		if req.Available != nil {
			available = *req.Available
		}
		it := &menu.Item{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       price,
			ImageURL:    req.ImageURL,
			CategoryID:  req.CategoryID,
			Available:   available,
		}
		if err := repo.CreateItem(c.Request.Context(), it); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item (unknown category?)"})
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

func createCategoryHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cat := &menu.Category{ID: uuid.NewString(), Name: req.Name}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category already exists"})
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func updateMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Price != nil {
			price, ok := validPrice(*req.Price)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative decimal"})
				return
			}
			req.Price = &price
		}
		it, err := repo.UpdateItem(c.Request.Context(), c.Param("id"), menu.ItemUpdate{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Available:   req.Available,
		})
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func deleteMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.DeleteItem(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
