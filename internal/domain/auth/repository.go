package auth

import "context"

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	UpdateSettings(ctx context.Context, id int64, settings Settings) (User, error)
	ListIDs(ctx context.Context) ([]int64, error)
}
