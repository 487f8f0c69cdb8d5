package customer

import (
	"context"

	"gringotts/internal/paging"
	"gringotts/internal/uow"
)

// repository runs every query against the caller's session; it never opens
// a transaction of its own.
type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) GetByID(ctx context.Context, sess *uow.Session, id int64) (*Customer, error) {
	query := `
		SELECT id, username, personalname, charactername, balance
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := sess.Tx().GetContext(ctx, &c, query, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// GetByIDForUpdate locks the customer row for the rest of the session's
// transaction. Transfers use it so the funds check and the balance write
// cannot race a concurrent transfer against the same account.
func (r *repository) GetByIDForUpdate(ctx context.Context, sess *uow.Session, id int64) (*Customer, error) {
	query := `
		SELECT id, username, personalname, charactername, balance
		FROM customers
		WHERE id = $1
		FOR UPDATE
	`

	var c Customer
	err := sess.Tx().GetContext(ctx, &c, query, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetByName(ctx context.Context, sess *uow.Session, userName string) (*Customer, error) {
	query := `
		SELECT id, username, personalname, charactername, balance
		FROM customers
		WHERE username = $1
	`

	var c Customer
	err := sess.Tx().GetContext(ctx, &c, query, userName)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetByNameForUpdate(ctx context.Context, sess *uow.Session, userName string) (*Customer, error) {
	query := `
		SELECT id, username, personalname, charactername, balance
		FROM customers
		WHERE username = $1
		FOR UPDATE
	`

	var c Customer
	err := sess.Tx().GetContext(ctx, &c, query, userName)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetAll(ctx context.Context, sess *uow.Session, page *paging.Page) ([]Customer, error) {
	query := `
		SELECT id, username, personalname, charactername, balance
		FROM customers
		ORDER BY id
	`

	var customers []Customer
	var err error
	if page != nil {
		query += ` LIMIT $1 OFFSET $2`
		err = sess.Tx().SelectContext(ctx, &customers, query, page.Limit(), page.Offset())
	} else {
		err = sess.Tx().SelectContext(ctx, &customers, query)
	}
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *repository) Search(ctx context.Context, sess *uow.Session, substring string, page *paging.Page) ([]Customer, error) {
	query := `
		SELECT id, username, personalname, charactername, balance
		FROM customers
		WHERE username ILIKE $1 OR personalname ILIKE $1 OR charactername ILIKE $1
		ORDER BY id
	`
	pattern := "%" + substring + "%"

	var customers []Customer
	var err error
	if page != nil {
		query += ` LIMIT $2 OFFSET $3`
		err = sess.Tx().SelectContext(ctx, &customers, query, pattern, page.Limit(), page.Offset())
	} else {
		err = sess.Tx().SelectContext(ctx, &customers, query, pattern)
	}
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *repository) Add(ctx context.Context, sess *uow.Session, c *Customer) error {
	query := `
		INSERT INTO customers (id, username, personalname, charactername, balance)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := sess.Tx().ExecContext(ctx, query, c.ID, c.UserName, c.PersonalName, c.CharacterName, c.Balance)
	return err
}

func (r *repository) Update(ctx context.Context, sess *uow.Session, c *Customer) error {
	query := `
		UPDATE customers
		SET username = $1, personalname = $2, charactername = $3, balance = $4
		WHERE id = $5
	`

	_, err := sess.Tx().ExecContext(ctx, query, c.UserName, c.PersonalName, c.CharacterName, c.Balance, c.ID)
	return err
}

func (r *repository) Delete(ctx context.Context, sess *uow.Session, id int64) error {
	query := `DELETE FROM customers WHERE id = $1`

	_, err := sess.Tx().ExecContext(ctx, query, id)
	return err
}
