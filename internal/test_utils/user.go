package test_utils

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketly/pocketly/pkg/user"
)

// TestUser is the user returned by TestUserProvider.
var TestUser = user.User{
	Id:          1,
	Uid:         "3f1c2d7e-0000-4000-8000-000000000001",
	Username:    "test_user",
	DisplayName: "Test User",
	Settings: user.Settings{
		Timezone:     "Europe/Warsaw",
		WeekFirstDay: time.Monday,
		Currency:     "PLN",
	},
}

type TestUserProvider struct{}

func (p TestUserProvider) GetCurrentUser(ctx context.Context) (user.User, error) {
	if u, err := user.CurrentUser(ctx); err == nil {
		return u, nil
	}
	return TestUser, nil
}

// Context returns a background context carrying TestUser.
func Context() context.Context {
	return user.WithUser(context.Background(), TestUser)
}

// ResetWithUser empties the database and stores TestUser, returning a context carrying the stored user.
func ResetWithUser(ctx context.Context, pool *pgxpool.Pool) (context.Context, user.User, error) {
	if err := TruncateAll(ctx, pool); err != nil {
		return nil, user.User{}, err
	}
	stored := TestUser
	id, err := user.NewUserRepo(pool).CreateUser(ctx, stored)
	if err != nil {
		return nil, user.User{}, err
	}
	stored.Id = id
	return user.WithUser(ctx, stored), stored, nil
}
