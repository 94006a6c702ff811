package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/ledger"
	"cafe-billing/internal/models"
	"cafe-billing/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const idempotencyHeader = "Idempotency-Key"

type CreateBillRequest struct {
	CustomerID      *uint               `json:"customer_id"`
	Items           []billing.DraftLine `json:"items"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	TaxPercent      *decimal.Decimal    `json:"tax_percent"` // nil uses the shop default
	Notes           string              `json:"notes"`
	IdempotencyKey  string              `json:"idempotency_key"`
}

type BillingHandler struct {
	svc        *ledger.Service
	site       models.SiteInfo
	defaultTax decimal.Decimal
	errorLog   *log.Logger
}

func NewBillingHandler(svc *ledger.Service, site models.SiteInfo, defaultTax decimal.Decimal, errorLog *log.Logger) *BillingHandler {
	return &BillingHandler{svc: svc, site: site, defaultTax: defaultTax, errorLog: errorLog}
}

func (h *BillingHandler) draft(req CreateBillRequest) billing.SaleDraft {
	tax := h.defaultTax
	if req.TaxPercent != nil {
		tax = *req.TaxPercent
	}
	return billing.SaleDraft{
		CustomerID:      req.CustomerID,
		Lines:           req.Items,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      tax,
		Notes:           req.Notes,
		IdempotencyKey:  req.IdempotencyKey,
	}
}

// Quote prices a cart without committing it.
func (h *BillingHandler) Quote(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := h.svc.QuoteSale(c.Request.Context(), ownerID(c), h.draft(req))
	if err != nil {
		respondError(c, h.errorLog, "Quote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateBill commits a sale. Without a client key one is generated and echoed
// back so the client can retry the same sale safely.
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if key := strings.TrimSpace(c.GetHeader(idempotencyHeader)); key != "" {
		req.IdempotencyKey = key
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	result, err := h.svc.CreateSale(c.Request.Context(), ownerID(c), h.draft(req))
	if err != nil {
		respondError(c, h.errorLog, "CreateBill", err)
		return
	}
	c.Header(idempotencyHeader, req.IdempotencyKey)
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

func (h *BillingHandler) ListBills(c *gin.Context) {
	page, limit := pagination(c)
	customerID, ok := optionalUint(c, "customer_id")
	if !ok {
		return
	}
	bills, total, err := h.svc.ListBills(c.Request.Context(), ownerID(c), ledger.BillFilter{
		Status:     c.Query("status"),
		CustomerID: customerID,
		Search:     c.Query("q"),
		WithItems:  c.Query("items") == "true",
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		respondError(c, h.errorLog, "ListBills", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  bills,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *BillingHandler) GetBill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bill, err := h.svc.GetBill(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondError(c, h.errorLog, "GetBill", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) BillPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bill, err := h.svc.GetBill(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondError(c, h.errorLog, "BillPDF", err)
		return
	}
	var buf bytes.Buffer
	if err := report.BillPDF(&buf, *bill, h.site); err != nil {
		respondError(c, h.errorLog, "BillPDF", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", bill.BillNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *BillingHandler) GetNextBillNo(c *gin.Context) {
	next, err := h.svc.PeekID(c.Request.Context(), ownerID(c), ledger.KindBill)
	if err != nil {
		respondError(c, h.errorLog, "GetNextBillNo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_bill_no": next})
}
