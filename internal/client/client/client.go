package client

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

type Client interface {
	ListUsers(ctx context.Context, page int) (*models.Page, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, payload models.UserPayload) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, payload models.UserPayload) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
