package printer

import (
	"strings"
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	invoice := &model.Invoice{
		InvoiceNumber: "202609010001",
		TotalAmount:   34.00,
		Items: []model.InvoiceItem{
			{Product: &model.Product{Name: "Cola"}, Quantity: 3, TotalPrice: 30.00},
			{Product: &model.Product{Name: "Water"}, Quantity: 2, TotalPrice: 4.00},
		},
	}

	receipt := Receipt{StoreName: "Victoria Store"}
	lines := receipt.Render(invoice)
	text := strings.Join(lines, "\n")

	assert.Contains(t, text, "Victoria Store")
	assert.Contains(t, text, "202609010001")
	assert.Contains(t, text, "Cola")
	assert.Contains(t, text, "34.00")
	assert.Contains(t, text, "Thank you")

	for _, line := range lines {
		assert.LessOrEqual(t, len(line), lineWidth)
	}
}

func TestCenterAndLeftRight(t *testing.T) {
	centered := center("Hi")
	require.Len(t, centered, (lineWidth-2)/2+2)
	assert.True(t, strings.HasSuffix(centered, "Hi"))

	line := leftRight("Total:", "10.00")
	assert.Len(t, line, lineWidth)
	assert.True(t, strings.HasPrefix(line, "Total:"))
	assert.True(t, strings.HasSuffix(line, "10.00"))
}
