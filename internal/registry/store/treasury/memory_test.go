package treasury

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
)

type TreasuryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *TreasuryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestTreasuryStoreSuite(t *testing.T) {
	suite.Run(t, new(TreasuryStoreSuite))
}

func (s *TreasuryStoreSuite) TestStartsEmpty() {
	balance, err := s.store.Balance(s.ctx)
	s.Require().NoError(err)
	s.Zero(balance.Sign())
}

func (s *TreasuryStoreSuite) TestCreditAccumulates() {
	s.Require().NoError(s.store.Credit(s.ctx, big.NewInt(100)))
	s.Require().NoError(s.store.Credit(s.ctx, big.NewInt(250)))

	balance, err := s.store.Balance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(350), balance.Int64())
}

func (s *TreasuryStoreSuite) TestWithdrawAll() {
	s.Require().NoError(s.store.Credit(s.ctx, big.NewInt(500)))

	drained, err := s.store.WithdrawAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(500), drained.Int64())

	balance, err := s.store.Balance(s.ctx)
	s.Require().NoError(err)
	s.Zero(balance.Sign())
}

func (s *TreasuryStoreSuite) TestBalanceReturnsCopy() {
	s.Require().NoError(s.store.Credit(s.ctx, big.NewInt(10)))

	balance, err := s.store.Balance(s.ctx)
	s.Require().NoError(err)
	balance.SetInt64(9999)

	again, err := s.store.Balance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(10), again.Int64())
}
