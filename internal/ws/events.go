package ws

import "encoding/json"

// Event types pushed to connected frontends.
const (
	EventSaleCompleted   = "sale_completed"
	EventInvoiceReturned = "invoice_returned"
	EventStockChanged    = "stock_changed"
	EventWastageRecorded = "wastage_recorded"
	EventStockReceived   = "stock_received"
)

// Publish serializes the payload and broadcasts it without blocking the
// caller. Marshal failures are silently dropped; events are best-effort.
func (h *Hub) Publish(eventType string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["type"] = eventType

	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}

	go func() {
		h.Broadcast <- msg
	}()
}
