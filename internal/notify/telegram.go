package notify

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
)

// Telegram sends best-effort chat notifications. Credentials come from the
// settings table on every send so they can be changed at runtime without a
// restart. Failures are logged and never propagate to the caller.
type Telegram struct {
	settings repository.SettingRepository
	client   *http.Client
	baseURL  string
}

func NewTelegram(settings repository.SettingRepository) *Telegram {
	return &Telegram{
		settings: settings,
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  "https://api.telegram.org",
	}
}

func (t *Telegram) credentials() (token, chatID string, ok bool) {
	token = t.settings.GetValue(model.SettingTelegramBotToken, "")
	chatID = t.settings.GetValue(model.SettingTelegramChatID, "")
	return token, chatID, token != "" && chatID != ""
}

// Send posts a formatted text message to the configured chat.
func (t *Telegram) Send(message string) bool {
	token, chatID, ok := t.credentials()
	if !ok {
		log.Println("telegram: credentials not configured, skipping notification")
		return false
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, token)
	form := url.Values{
		"chat_id":    {chatID},
		"text":       {message},
		"parse_mode": {"HTML"},
	}

	resp, err := t.client.PostForm(endpoint, form)
	if err != nil {
		log.Printf("telegram: send failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("telegram: unexpected status %d", resp.StatusCode)
		return false
	}
	return true
}

func (t *Telegram) storeName() string {
	return t.settings.GetValue(model.SettingStoreName, "Victoria Store")
}

// SendInvoice announces a completed sale.
func (t *Telegram) SendInvoice(invoice *model.Invoice) bool {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 <b>New invoice - %s</b>\n\n", t.storeName())
	fmt.Fprintf(&b, "📅 %s\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "🆔 Invoice #%s\n", invoice.InvoiceNumber)
	if invoice.Customer != nil {
		fmt.Fprintf(&b, "👤 Customer: %s\n", invoice.Customer.Name)
	}
	b.WriteString("\n📦 <b>Items:</b>\n")
	for _, item := range invoice.Items {
		name := "product"
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "• %s × %d = %.2f\n", name, item.Quantity, item.TotalPrice)
	}
	fmt.Fprintf(&b, "\n💰 <b>Total:</b> %.2f\n", invoice.TotalAmount)
	fmt.Fprintf(&b, "💵 <b>Payment:</b> %s", invoice.PaymentMethod)
	return t.Send(b.String())
}

// SendProductAdded announces a new catalog product.
func (t *Telegram) SendProductAdded(product *model.Product) bool {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 <b>New product - %s</b>\n\n", t.storeName())
	fmt.Fprintf(&b, "🏷️ %s\n", product.Name)
	fmt.Fprintf(&b, "💰 Purchase: %.2f / Selling: %.2f\n", product.PurchasePrice, product.SellingPrice)
	fmt.Fprintf(&b, "📊 Quantity: %d", product.Quantity)
	return t.Send(b.String())
}

// SendProductUpdated announces catalog changes. changes maps field name to
// "old → new" description strings.
func (t *Telegram) SendProductUpdated(product *model.Product, changes map[string]string) bool {
	var b strings.Builder
	fmt.Fprintf(&b, "✏️ <b>Product updated - %s</b>\n\n", t.storeName())
	fmt.Fprintf(&b, "🏷️ %s\n\n📝 <b>Changes:</b>\n", product.Name)
	for field, change := range changes {
		fmt.Fprintf(&b, "• %s: %s\n", field, change)
	}
	return t.Send(b.String())
}

// SendLowStock lists products below the restock threshold.
func (t *Telegram) SendLowStock(products []model.Product) bool {
	if len(products) == 0 {
		return true
	}
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ <b>Stock alert - %s</b>\n\n", t.storeName())
	b.WriteString("🔻 <b>Products needing restock:</b>\n")
	for _, p := range products {
		fmt.Fprintf(&b, "• %s - %d left\n", p.Name, p.Quantity)
	}
	return t.Send(b.String())
}

// SendWastage announces a stock write-off.
func (t *Telegram) SendWastage(wastage *model.Wastage) bool {
	name := "product"
	if wastage.Product != nil {
		name = wastage.Product.Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🗑️ <b>Wastage - %s</b>\n\n", t.storeName())
	fmt.Fprintf(&b, "🏷️ %s\n", name)
	fmt.Fprintf(&b, "📊 Quantity: %d\n", wastage.Quantity)
	fmt.Fprintf(&b, "📝 Reason: %s\n", wastage.Reason)
	fmt.Fprintf(&b, "💸 Loss: %.2f", wastage.TotalCost)
	return t.Send(b.String())
}

// SendTest verifies the configured credentials.
func (t *Telegram) SendTest() bool {
	var b strings.Builder
	fmt.Fprintf(&b, "🧪 <b>Test message - %s</b>\n\n", t.storeName())
	fmt.Fprintf(&b, "📅 %s\n\n", time.Now().Format("2006-01-02 15:04"))
	b.WriteString("✅ Bot connection is working, notifications are enabled")
	return t.Send(b.String())
}
