package printer

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
)

const lineWidth = 42

// Printer prints a rendered receipt. Implementations are platform-specific;
// the default logs the receipt, which keeps printing entirely optional.
type Printer interface {
	Print(lines []string) error
}

// LogPrinter writes the receipt to the application log.
type LogPrinter struct{}

func (LogPrinter) Print(lines []string) error {
	log.Println("receipt:\n" + strings.Join(lines, "\n"))
	return nil
}

// Receipt renders an invoice into fixed-width receipt lines.
type Receipt struct {
	StoreName string
	Phone     string
}

func center(text string) string {
	if len(text) >= lineWidth {
		return text
	}
	pad := (lineWidth - len(text)) / 2
	return strings.Repeat(" ", pad) + text
}

func leftRight(left, right string) string {
	space := lineWidth - len(left) - len(right)
	if space < 1 {
		space = 1
	}
	return left + strings.Repeat(" ", space) + right
}

// Render produces the receipt lines for an invoice.
func (r Receipt) Render(invoice *model.Invoice) []string {
	now := time.Now()
	lines := []string{
		center(r.StoreName),
	}
	if r.Phone != "" {
		lines = append(lines, center(r.Phone))
	}
	lines = append(lines,
		"",
		leftRight("Date:", now.Format("02/01/2006")),
		leftRight("Time:", now.Format("15:04")),
		leftRight("Invoice:", invoice.InvoiceNumber),
		strings.Repeat("-", lineWidth),
		fmt.Sprintf("%-18s%6s%18s", "Item", "Qty", "Price"),
	)
	for _, item := range invoice.Items {
		name := "item"
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 18 {
			name = name[:18]
		}
		lines = append(lines, fmt.Sprintf("%-18s%6d%18.2f", name, item.Quantity, item.TotalPrice))
	}
	lines = append(lines,
		strings.Repeat("-", lineWidth),
		leftRight("Total:", fmt.Sprintf("%.2f", invoice.TotalAmount)),
		"",
		center("Thank you for your visit!"),
	)
	return lines
}
