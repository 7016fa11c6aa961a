package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mominahmadrao/SmartResturantSystem/internal/auth"
	"github.com/mominahmadrao/SmartResturantSystem/internal/httpx"
	"github.com/mominahmadrao/SmartResturantSystem/internal/rider"
)

// registerRequest is the signup payload.
// swagger:model registerRequest
type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	// rider signup only
	VehicleDetails string `json:"vehicle_details"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(users auth.Repository, riders rider.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Role == "" {
			req.Role = string(auth.RoleCustomer)
		}
		role, ok := auth.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
			return
		}
		u := &auth.User{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hash,
			Role:         role,
		}
		if role == auth.RoleRider {
			// user + profile in one transaction
			err = riders.CreateWithUser(c.Request.Context(), u, &rider.Profile{
				ID:             uuid.NewString(),
				UserID:         u.ID,
				FullName:       req.Name,
				PhoneNumber:    req.Phone,
				VehicleDetails: req.VehicleDetails,
				Rating:         5.0,
			})
		} else {
			err = users.Create(c.Request.Context(), u)
		}
		if err != nil {
			if errors.Is(err, auth.ErrAlreadyExist) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
	}
}

func loginHandler(users auth.Repository, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
			return
		}
		token, err := tokens.Issue(u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"role":         u.Role,
			"name":         u.Name,
		})
	}
}

func meHandler(users auth.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := httpx.IdentityFrom(c)
		u, err := users.GetByID(c.Request.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
