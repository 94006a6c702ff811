package handler

import (
	"log"
	"net/http"

	"cafe-billing/internal/ledger"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewCustomerHandler(svc *ledger.Service, errorLog *log.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, errorLog: errorLog}
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context(), ownerID(c), c.Query("q"))
	if err != nil {
		respondError(c, h.errorLog, "ListCustomers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req ledger.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.svc.CreateCustomer(c.Request.Context(), ownerID(c), req)
	if err != nil {
		respondError(c, h.errorLog, "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	customer, err := h.svc.GetCustomer(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondError(c, h.errorLog, "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ledger.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.svc.UpdateCustomer(c.Request.Context(), ownerID(c), id, req)
	if err != nil {
		respondError(c, h.errorLog, "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCustomer(c.Request.Context(), ownerID(c), id); err != nil {
		respondError(c, h.errorLog, "DeleteCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

func (h *CustomerHandler) SetCredentials(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cred, err := h.svc.SetCustomerCredentials(c.Request.Context(), ownerID(c), id, req.Username, req.Password)
	if err != nil {
		respondError(c, h.errorLog, "SetCredentials", err)
		return
	}
	c.JSON(http.StatusOK, cred)
}
