package employee

import (
	"context"

	"gringotts/internal/uow"

	"github.com/google/uuid"
)

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) GetByID(ctx context.Context, sess *uow.Session, id uuid.UUID) (*Employee, error) {
	query := `
		SELECT id, username, accesscode
		FROM employees
		WHERE id = $1
	`

	var e Employee
	err := sess.Tx().GetContext(ctx, &e, query, id)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) GetByName(ctx context.Context, sess *uow.Session, userName string) (*Employee, error) {
	query := `
		SELECT id, username, accesscode
		FROM employees
		WHERE username = $1
	`

	var e Employee
	err := sess.Tx().GetContext(ctx, &e, query, userName)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) GetAll(ctx context.Context, sess *uow.Session) ([]Employee, error) {
	query := `
		SELECT id, username, accesscode
		FROM employees
		ORDER BY username
	`

	var employees []Employee
	err := sess.Tx().SelectContext(ctx, &employees, query)
	if err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *repository) Add(ctx context.Context, sess *uow.Session, e *Employee) error {
	query := `
		INSERT INTO employees (username, accesscode)
		VALUES ($1, $2)
		RETURNING id
	`

	return sess.Tx().GetContext(ctx, &e.ID, query, e.UserName, e.AccessCode)
}

func (r *repository) Update(ctx context.Context, sess *uow.Session, e *Employee) error {
	query := `
		UPDATE employees
		SET username = $1, accesscode = $2
		WHERE id = $3
	`

	_, err := sess.Tx().ExecContext(ctx, query, e.UserName, e.AccessCode, e.ID)
	return err
}

func (r *repository) Delete(ctx context.Context, sess *uow.Session, id uuid.UUID) error {
	query := `DELETE FROM employees WHERE id = $1`

	_, err := sess.Tx().ExecContext(ctx, query, id)
	return err
}
