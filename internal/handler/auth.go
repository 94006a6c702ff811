package handler

import (
	"log"
	"net/http"

	"cafe-billing/internal/ledger"
	"cafe-billing/internal/middleware"
	"cafe-billing/internal/models"
	"cafe-billing/internal/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PortalLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewAuthHandler(svc *ledger.Service, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, errorLog: errorLog}
}

func (h *AuthHandler) adminToken(c *gin.Context, user *models.User, status int) {
	token, err := utils.GenerateToken(user.ID, user.Role, user.ID, 0)
	if err != nil {
		respondError(c, h.errorLog, "AdminToken", err)
		return
	}
	c.JSON(status, gin.H{
		"token": token,
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.svc.RegisterAdmin(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, h.errorLog, "Register", err)
		return
	}
	h.adminToken(c, user, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.svc.AuthenticateAdmin(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, h.errorLog, "Login", err)
		return
	}
	h.adminToken(c, user, http.StatusOK)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID := c.GetUint(middleware.KeyUserID)
	if err := h.svc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.Password); err != nil {
		respondError(c, h.errorLog, "ChangePassword", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *AuthHandler) PortalLogin(c *gin.Context) {
	var req PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cred, err := h.svc.AuthenticateCustomer(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, h.errorLog, "PortalLogin", err)
		return
	}
	token, err := utils.GenerateToken(cred.ID, models.RoleCustomer, cred.OwnerID, cred.CustomerID)
	if err != nil {
		respondError(c, h.errorLog, "PortalLogin", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"username":    cred.Username,
		"customer_id": cred.CustomerID,
		"name":        cred.Customer.Name,
		"role":        models.RoleCustomer,
	})
}
