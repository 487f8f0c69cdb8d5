package employee

import (
	"context"

	"gringotts/internal/uow"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, sess *uow.Session, id uuid.UUID) (*Employee, error)
	GetByName(ctx context.Context, sess *uow.Session, userName string) (*Employee, error)
	GetAll(ctx context.Context, sess *uow.Session) ([]Employee, error)
	Add(ctx context.Context, sess *uow.Session, e *Employee) error
	Update(ctx context.Context, sess *uow.Session, e *Employee) error
	Delete(ctx context.Context, sess *uow.Session, id uuid.UUID) error
}
