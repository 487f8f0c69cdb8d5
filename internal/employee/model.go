package employee

import "github.com/google/uuid"

// Employee can authorize issuance transactions. Rows are provisioned out of
// band; the ledger only ever reads them.
type Employee struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserName   string    `db:"username" json:"username"`
	AccessCode int       `db:"accesscode" json:"-"`
}
