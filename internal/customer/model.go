package customer

import "github.com/shopspring/decimal"

// Customer is an account holder. The id comes from the messaging platform,
// so it is assigned externally and inserted as-is.
type Customer struct {
	ID            int64           `db:"id" json:"id"`
	UserName      string          `db:"username" json:"username"`
	PersonalName  string          `db:"personalname" json:"personal_name"`
	CharacterName string          `db:"charactername" json:"character_name"`
	Balance       decimal.Decimal `db:"balance" json:"balance"`
}
