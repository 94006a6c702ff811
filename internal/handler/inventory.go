package handler

import (
	"log"
	"net/http"

	"cafe-billing/internal/ledger"

	"github.com/gin-gonic/gin"
)

type AddStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type InventoryHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewInventoryHandler(svc *ledger.Service, errorLog *log.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, errorLog: errorLog}
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context(), ownerID(c), ledger.ProductFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, h.errorLog, "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req ledger.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), ownerID(c), req)
	if err != nil {
		respondError(c, h.errorLog, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondError(c, h.errorLog, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ledger.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), ownerID(c), id, req)
	if err != nil {
		respondError(c, h.errorLog, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), ownerID(c), id); err != nil {
		respondError(c, h.errorLog, "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *InventoryHandler) AddStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.svc.Restock(c.Request.Context(), ownerID(c), id, req.Quantity)
	if err != nil {
		respondError(c, h.errorLog, "AddStock", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) GetLowStockAlerts(c *gin.Context) {
	products, err := h.svc.ListLowStock(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, h.errorLog, "GetLowStockAlerts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}
