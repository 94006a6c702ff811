package handler

import (
	"log"
	"net/http"
	"strconv"

	"cafe-billing/internal/ledger"
	"cafe-billing/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewAdminHandler(svc *ledger.Service, errorLog *log.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, errorLog: errorLog}
}

func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 100
	}
	history, err := h.svc.LoginHistory(c.Request.Context(), c.GetUint(middleware.KeyUserID), limit)
	if err != nil {
		respondError(c, h.errorLog, "GetLoginHistory", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, h.errorLog, "GetDashboardStats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
