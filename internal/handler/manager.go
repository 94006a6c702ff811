package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cafe-billing/internal/ledger"
	"cafe-billing/internal/report"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// dateRange reads start_date and end_date (YYYY-MM-DD) as a half-open range
// covering the whole end day. Missing bounds stay zero.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD", "code": "validation"})
			return from, to, false
		}
		from = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD", "code": "validation"})
			return from, to, false
		}
		to = t.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "start_date must not be after end_date", "code": "validation"})
		return from, to, false
	}
	return from, to, true
}

type ManagerHandler struct {
	svc      *ledger.Service
	errorLog *log.Logger
}

func NewManagerHandler(svc *ledger.Service, errorLog *log.Logger) *ManagerHandler {
	return &ManagerHandler{svc: svc, errorLog: errorLog}
}

func (h *ManagerHandler) GetSalesReport(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	sales, err := h.svc.SalesReport(c.Request.Context(), ownerID(c), from, to)
	if err != nil {
		respondError(c, h.errorLog, "GetSalesReport", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// DownloadReport serves /reports/<kind>.csv.
func (h *ManagerHandler) DownloadReport(c *gin.Context) {
	kind, ok := strings.CutSuffix(c.Param("file"), ".csv")
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown report", "code": "not_found"})
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := report.Write(c.Request.Context(), &buf, h.svc, ownerID(c), kind, report.Range{From: from, To: to})
	if errors.Is(err, report.ErrUnknownKind) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
		return
	}
	if err != nil {
		respondError(c, h.errorLog, "DownloadReport", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report_%s.csv", kind, time.Now().Format("20060102")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
