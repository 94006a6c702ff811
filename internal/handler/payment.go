package handler

import (
	"log"
	"net/http"
	"strings"

	"cafe-billing/internal/billing"
	"cafe-billing/internal/ledger"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewPaymentHandler(svc *ledger.Service, errorLog *log.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, errorLog: errorLog}
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req billing.PaymentDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if key := strings.TrimSpace(c.GetHeader(idempotencyHeader)); key != "" {
		req.IdempotencyKey = key
	}
	receipt, err := h.svc.RecordPayment(c.Request.Context(), ownerID(c), req)
	if err != nil {
		respondError(c, h.errorLog, "RecordPayment", err)
		return
	}
	status := http.StatusCreated
	if receipt.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, receipt)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, limit := pagination(c)
	billID, ok := optionalUint(c, "bill_id")
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	payments, total, err := h.svc.ListPayments(c.Request.Context(), ownerID(c), ledger.PaymentFilter{
		BillID: billID,
		Mode:   c.Query("mode"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, h.errorLog, "ListPayments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  payments,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
