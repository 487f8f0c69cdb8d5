package transaction

import (
	"context"

	"gringotts/internal/paging"
	"gringotts/internal/uow"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, sess *uow.Session, id uuid.UUID) (*Transaction, error)
	GetAll(ctx context.Context, sess *uow.Session, page *paging.Page) ([]Transaction, error)
	GetByCustomer(ctx context.Context, sess *uow.Session, customerID int64, page *paging.Page) ([]Transaction, error)
	Add(ctx context.Context, sess *uow.Session, tx *Transaction) error
	Update(ctx context.Context, sess *uow.Session, tx *Transaction) error
	Delete(ctx context.Context, sess *uow.Session, id uuid.UUID) error
}
