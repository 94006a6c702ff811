package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cafe-billing/internal/ledger"

	"github.com/gin-gonic/gin"
)

// billMessage builds the WhatsApp text for a bill.
func billMessage(bill ledger.BillSummary, shop, currency string) string {
	var msg strings.Builder
	name := "Customer"
	if bill.Customer != nil {
		name = bill.Customer.Name
	}
	fmt.Fprintf(&msg, "Hello *%s*, here is your bill *%s* from %s.\n\n*Items:*\n", name, bill.BillNumber, shop)
	for _, item := range bill.Items {
		fmt.Fprintf(&msg, "• %s x %d - %s%s\n", item.ProductName, item.Quantity, currency, item.TotalPrice.StringFixed(2))
	}
	fmt.Fprintf(&msg, "\n*Total:* %s%s\n", currency, bill.TotalAmount.StringFixed(2))
	if bill.PendingAmount.IsPositive() {
		fmt.Fprintf(&msg, "*Balance due:* %s%s\n", currency, bill.PendingAmount.StringFixed(2))
	}
	msg.WriteString("\nThank you for visiting us!")
	return msg.String()
}

// whatsappNumber prefixes bare 10 digit numbers with the India country code.
func whatsappNumber(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) == 10 {
		return "91" + digits
	}
	return digits
}

// ShareBill returns a wa.me link that opens a chat with the bill summary.
func (h *BillingHandler) ShareBill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bill, err := h.svc.GetBill(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondError(c, h.errorLog, "ShareBill", err)
		return
	}
	target := ""
	if bill.Customer != nil {
		target = whatsappNumber(bill.Customer.Phone)
	}
	text := url.QueryEscape(billMessage(*bill, h.site.Name, h.site.CurrencySymbol))
	c.JSON(http.StatusOK, gin.H{
		"bill_number":  bill.BillNumber,
		"whatsapp_url": fmt.Sprintf("https://wa.me/%s?text=%s", target, text),
	})
}
