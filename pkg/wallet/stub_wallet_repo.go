package wallet

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
)

type StubRepo struct {
	nextId int
	data   map[int]Wallet
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Wallet{}}
}

func (s *StubRepo) Store(ctx context.Context, userId int, wallet Wallet) (int, error) {
	s.nextId++
	wallet.Id = s.nextId
	s.data[wallet.Id] = wallet
	return wallet.Id, nil
}

func (s *StubRepo) Get(ctx context.Context, userId int, id int) (Wallet, error) {
	wallet, ok := s.data[id]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Wallet, error) {
	wallets := make([]Wallet, 0, len(s.data))
	for _, wallet := range s.data {
		wallets = append(wallets, wallet)
	}
	slices.SortFunc(wallets, func(a, b Wallet) int { return a.Id - b.Id })
	return wallets, nil
}

func (s *StubRepo) Update(ctx context.Context, userId int, wallet Wallet) (bool, error) {
	existing, ok := s.data[wallet.Id]
	if !ok {
		return false, nil
	}
	wallet.Balance = existing.Balance
	s.data[wallet.Id] = wallet
	return true, nil
}

func (s *StubRepo) AdjustBalance(ctx context.Context, userId int, id int, delta decimal.Decimal) (bool, error) {
	wallet, ok := s.data[id]
	if !ok {
		return false, nil
	}
	wallet.Balance = wallet.Balance.Add(delta)
	s.data[id] = wallet
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Wallet{}
}
