package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mominahmadrao/SmartResturantSystem/internal/httpx"
	"github.com/mominahmadrao/SmartResturantSystem/internal/rider"
)

func riderErrStatus(c *gin.Context, err error) {
	if errors.Is(err, rider.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rider profile not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type locationUpdate struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

func riderProfileHandler(riders rider.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := httpx.IdentityFrom(c)
		p, err := riders.GetByUser(c.Request.Context(), id.UserID)
		if err != nil {
			riderErrStatus(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func riderLocationHandler(riders rider.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := httpx.IdentityFrom(c)
		var loc locationUpdate
		if err := c.ShouldBindJSON(&loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := riders.UpdateLocation(c.Request.Context(), id.UserID, loc.Lat, loc.Lng); err != nil {
			riderErrStatus(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "location updated", "lat": loc.Lat, "lng": loc.Lng})
	}
}

func riderOnlineHandler(riders rider.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := httpx.IdentityFrom(c)
		var body struct {
			Online *bool `json:"online" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := riders.SetOnline(c.Request.Context(), id.UserID, *body.Online); err != nil {
			riderErrStatus(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": *body.Online})
	}
}
