package transaction

import (
	"context"

	"gringotts/internal/paging"
	"gringotts/internal/uow"

	"github.com/google/uuid"
)

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) GetByID(ctx context.Context, sess *uow.Session, id uuid.UUID) (*Transaction, error) {
	query := `
		SELECT id, date, senderid, recipientid, employeeid, amount, description
		FROM transactions
		WHERE id = $1
	`

	var tx Transaction
	err := sess.Tx().GetContext(ctx, &tx, query, id)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// GetAll lists every transaction, oldest first.
func (r *repository) GetAll(ctx context.Context, sess *uow.Session, page *paging.Page) ([]Transaction, error) {
	query := `
		SELECT id, date, senderid, recipientid, employeeid, amount, description
		FROM transactions
		ORDER BY date
	`

	var txs []Transaction
	var err error
	if page != nil {
		query += ` LIMIT $1 OFFSET $2`
		err = sess.Tx().SelectContext(ctx, &txs, query, page.Limit(), page.Offset())
	} else {
		err = sess.Tx().SelectContext(ctx, &txs, query)
	}
	if err != nil {
		return nil, err
	}

	return txs, nil
}

// GetByCustomer lists transactions where the customer is sender or recipient,
// newest first.
func (r *repository) GetByCustomer(ctx context.Context, sess *uow.Session, customerID int64, page *paging.Page) ([]Transaction, error) {
	query := `
		SELECT t.id, t.date, t.senderid, t.recipientid, t.employeeid, t.amount, t.description
		FROM transactions t
		JOIN customers c ON c.id = t.senderid OR c.id = t.recipientid
		WHERE c.id = $1
		ORDER BY t.date DESC
	`

	var txs []Transaction
	var err error
	if page != nil {
		query += ` LIMIT $2 OFFSET $3`
		err = sess.Tx().SelectContext(ctx, &txs, query, customerID, page.Limit(), page.Offset())
	} else {
		err = sess.Tx().SelectContext(ctx, &txs, query, customerID)
	}
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *repository) Add(ctx context.Context, sess *uow.Session, tx *Transaction) error {
	query := `
		INSERT INTO transactions (date, senderid, recipientid, employeeid, amount, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return sess.Tx().GetContext(ctx, &tx.ID, query,
		tx.Date, tx.SenderID, tx.RecipientID, tx.EmployeeID, tx.Amount, tx.Description)
}

// Update exists for completeness; the ledger never calls it.
func (r *repository) Update(ctx context.Context, sess *uow.Session, tx *Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, senderid = $2, recipientid = $3, employeeid = $4, amount = $5, description = $6
		WHERE id = $7
	`

	_, err := sess.Tx().ExecContext(ctx, query,
		tx.Date, tx.SenderID, tx.RecipientID, tx.EmployeeID, tx.Amount, tx.Description, tx.ID)
	return err
}

// Delete exists for completeness; the ledger never calls it.
func (r *repository) Delete(ctx context.Context, sess *uow.Session, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`

	_, err := sess.Tx().ExecContext(ctx, query, id)
	return err
}
