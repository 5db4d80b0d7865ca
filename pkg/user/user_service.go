package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketly/pocketly/internal/config"
	log "github.com/sirupsen/logrus"
)

var ErrUserDataInvalid = errors.New("invalid user data")

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, uid string) error
	Defaults() Settings
}

// Provider is the narrow view other packages need to read the acting user.
type Provider interface {
	GetCurrentUser(ctx context.Context) (User, error)
}

type UserServiceImpl struct {
	repo     Repo
	defaults Settings
}

func NewUserService(repo Repo, defaults config.Defaults) *UserServiceImpl {
	weekFirstDay, err := ParseWeekday(defaults.WeekFirstDay)
	if err != nil {
		log.Warnf("invalid default week first day %q, using Monday", defaults.WeekFirstDay)
	}
	return &UserServiceImpl{
		repo: repo,
		defaults: Settings{
			Timezone:     defaults.Timezone,
			WeekFirstDay: weekFirstDay,
			Currency:     defaults.Currency,
		},
	}
}

// Defaults are the settings applied to new users.
func (u *UserServiceImpl) Defaults() Settings {
	return u.defaults
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

// CreateUser stores a new user. Missing settings are taken from the configured defaults and a fresh
// uid is generated when none is given.
func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if strings.TrimSpace(user.Username) == "" {
		return User{}, fmt.Errorf("%w: username is required", ErrUserDataInvalid)
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	if user.Settings.Timezone == "" {
		user.Settings.Timezone = u.defaults.Timezone
	}
	if user.Settings.Currency == "" {
		user.Settings.Currency = u.defaults.Currency
	}
	if err := validateSettings(user.Settings); err != nil {
		return User{}, err
	}

	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	log.Debugf("created user %d (%s)", user.Id, user.Uid)
	return user, nil
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateSettings(user.Settings); err != nil {
		return User{}, err
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

func (u *UserServiceImpl) DeleteUser(ctx context.Context, uid string) error {
	user, err := u.repo.GetUserByUid(ctx, uid)
	if err != nil {
		return err
	}
	return u.repo.DeleteUser(ctx, user.Id)
}

func validateSettings(settings Settings) error {
	if _, err := time.LoadLocation(settings.Timezone); err != nil || settings.Timezone == "" {
		return fmt.Errorf("%w: unknown timezone %q", ErrUserDataInvalid, settings.Timezone)
	}
	if settings.WeekFirstDay < time.Sunday || settings.WeekFirstDay > time.Saturday {
		return fmt.Errorf("%w: week first day out of range", ErrUserDataInvalid)
	}
	if len(settings.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrUserDataInvalid)
	}
	return nil
}
