package user

import (
	"context"
	"fmt"
)

type StubUserRepo struct {
	users  map[int]User
	nextId int
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{users: make(map[int]User)}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return 0, fmt.Errorf("username %s already taken", user.Username)
		}
	}
	s.nextId++
	user.Id = s.nextId
	s.users[user.Id] = user
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.users {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	existing, ok := s.users[userId]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.DisplayName = user.DisplayName
	existing.Settings = user.Settings
	s.users[userId] = existing
	return existing, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id int) error {
	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *StubUserRepo) Cleanup() {
	s.users = make(map[int]User)
	s.nextId = 0
}
