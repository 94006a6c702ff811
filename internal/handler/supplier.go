package handler

import (
	"log"
	"net/http"

	"cafe-billing/internal/ledger"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewSupplierHandler(svc *ledger.Service, errorLog *log.Logger) *SupplierHandler {
	return &SupplierHandler{svc: svc, errorLog: errorLog}
}

func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.svc.ListSuppliers(c.Request.Context(), ownerID(c), c.Query("q"))
	if err != nil {
		respondError(c, h.errorLog, "ListSuppliers", err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req ledger.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	supplier, err := h.svc.CreateSupplier(c.Request.Context(), ownerID(c), req)
	if err != nil {
		respondError(c, h.errorLog, "CreateSupplier", err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	supplier, err := h.svc.GetSupplier(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondError(c, h.errorLog, "GetSupplier", err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ledger.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	supplier, err := h.svc.UpdateSupplier(c.Request.Context(), ownerID(c), id, req)
	if err != nil {
		respondError(c, h.errorLog, "UpdateSupplier", err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(c.Request.Context(), ownerID(c), id); err != nil {
		respondError(c, h.errorLog, "DeleteSupplier", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}
