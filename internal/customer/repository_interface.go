package customer

import (
	"context"

	"gringotts/internal/paging"
	"gringotts/internal/uow"
)

type Repository interface {
	GetByID(ctx context.Context, sess *uow.Session, id int64) (*Customer, error)
	GetByIDForUpdate(ctx context.Context, sess *uow.Session, id int64) (*Customer, error)
	GetByName(ctx context.Context, sess *uow.Session, userName string) (*Customer, error)
	GetByNameForUpdate(ctx context.Context, sess *uow.Session, userName string) (*Customer, error)
	GetAll(ctx context.Context, sess *uow.Session, page *paging.Page) ([]Customer, error)
	Search(ctx context.Context, sess *uow.Session, substring string, page *paging.Page) ([]Customer, error)
	Add(ctx context.Context, sess *uow.Session, c *Customer) error
	Update(ctx context.Context, sess *uow.Session, c *Customer) error
	Delete(ctx context.Context, sess *uow.Session, id int64) error
}
