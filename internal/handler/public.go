package handler

import (
	"log"
	"net/http"

	"cafe-billing/internal/ledger"
	"cafe-billing/internal/middleware"
	"cafe-billing/internal/models"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	site models.SiteInfo
}

func NewPublicHandler(site models.SiteInfo) *PublicHandler {
	return &PublicHandler{site: site}
}

func (h *PublicHandler) GetSiteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.site)
}

// PortalHandler serves the read-only customer portal. The customer and owner
// come from the portal token, never from the request.
type PortalHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewPortalHandler(svc *ledger.Service, errorLog *log.Logger) *PortalHandler {
	return &PortalHandler{svc: svc, errorLog: errorLog}
}

func customerID(c *gin.Context) uint {
	return c.GetUint(middleware.KeyCustomerID)
}

func (h *PortalHandler) Me(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), ownerID(c), customerID(c))
	if err != nil {
		respondError(c, h.errorLog, "PortalMe", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *PortalHandler) Bills(c *gin.Context) {
	bills, err := h.svc.CustomerBills(c.Request.Context(), ownerID(c), customerID(c))
	if err != nil {
		respondError(c, h.errorLog, "PortalBills", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *PortalHandler) Payments(c *gin.Context) {
	payments, err := h.svc.CustomerPayments(c.Request.Context(), ownerID(c), customerID(c))
	if err != nil {
		respondError(c, h.errorLog, "PortalPayments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
