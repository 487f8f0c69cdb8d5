package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRequest describes one requested value movement. The recipient is
// addressed by id or by username; the source is a customer (transfer), an
// employee (issuance), or both.
//
// Field checks stay in the service, not in binding tags: the order in which
// violations surface is part of the contract.
type TransactionRequest struct {
	RecipientID       int64           `json:"recipient_id"`
	RecipientUsername string          `json:"recipient_username"`
	SenderID          *int64          `json:"sender_id"`
	EmployeeID        *uuid.UUID      `json:"employee_id"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}
