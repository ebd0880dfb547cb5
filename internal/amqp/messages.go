package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"pousada/internal/core"
	"pousada/internal/overdue"
)

// DueAlertMessage announces a pending transaction that is overdue or due soon
// at ReferenceDate. TransactionID plus ReferenceDate identify the alert; ID is
// unique per publish.
type DueAlertMessage struct {
	ID            string         `json:"id"`
	TransactionID string         `json:"transaction_id"`
	Type          string         `json:"transaction_type"`
	Category      string         `json:"category"`
	Description   string         `json:"description,omitempty"`
	Amount        string         `json:"amount"`
	DueDate       string         `json:"due_date,omitempty"`
	Status        overdue.Status `json:"status"`
	DaysOverdue   int            `json:"days_overdue"`
	DaysUntilDue  int            `json:"days_until_due"`
	ReferenceDate string         `json:"reference_date"`
	Timestamp     time.Time      `json:"timestamp"`
}

// NewDueAlertMessage builds the alert for a classified item.
func NewDueAlertMessage(item overdue.Item, ref core.Date) *DueAlertMessage {
	tx := item.Transaction
	return &DueAlertMessage{
		ID:            uuid.NewString(),
		TransactionID: tx.ID,
		Type:          string(tx.Type),
		Category:      string(tx.Category),
		Description:   tx.Description,
		Amount:        tx.Amount.StringFixed(2),
		DueDate:       tx.DueDate.Key(),
		Status:        item.Classification.Status,
		DaysOverdue:   item.Classification.DaysOverdue,
		DaysUntilDue:  item.Classification.DaysUntilDue,
		ReferenceDate: ref.Key(),
		Timestamp:     time.Now(),
	}
}

// DedupKey identifies the alert independent of when it was published.
func (m *DueAlertMessage) DedupKey() string {
	return m.TransactionID + "@" + m.ReferenceDate
}

// ToJSON converts the message to JSON bytes
func (m *DueAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DueAlertMessageFromJSON decodes a message body.
func DueAlertMessageFromJSON(data []byte) (*DueAlertMessage, error) {
	var msg DueAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
