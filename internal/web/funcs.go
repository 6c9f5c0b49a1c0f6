package web

import (
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"food-delivery/internal/models"
)

var funcs = template.FuncMap{
	"currency":     models.FormatAmount,
	"nullCurrency": models.FormatNullAmount,
	"number":       formatNumber,
	"date":         formatDate,
	"statusClass":  statusClass,
}

// formatNumber groups thousands: 12345 -> 12,345
func formatNumber(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

// statusClass turns "Out for Delivery" into "status-out-for-delivery"
func statusClass(s models.OrderStatus) string {
	return "status-" + strings.ReplaceAll(cases.Lower(language.English).String(string(s)), " ", "-")
}
