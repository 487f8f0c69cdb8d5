package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single committed value movement. Rows are immutable once
// created; a correction is a new transaction, never an edit.
type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Date        time.Time       `db:"date" json:"date"`
	SenderID    *int64          `db:"senderid" json:"sender_id,omitempty"`
	RecipientID int64           `db:"recipientid" json:"recipient_id"`
	EmployeeID  *uuid.UUID      `db:"employeeid" json:"employee_id,omitempty"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
}
