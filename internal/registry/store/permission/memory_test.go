package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"cnft/pkg/domain"
)

type PermissionStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *PermissionStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestPermissionStoreSuite(t *testing.T) {
	suite.Run(t, new(PermissionStoreSuite))
}

var (
	viewer = domain.Address{0xaa}
	other  = domain.Address{0xbb}
)

func (s *PermissionStoreSuite) TestGrantAndHas() {
	has, err := s.store.Has(s.ctx, 1, viewer)
	s.Require().NoError(err)
	s.False(has)

	s.Require().NoError(s.store.Grant(s.ctx, 1, viewer))

	has, err = s.store.Has(s.ctx, 1, viewer)
	s.Require().NoError(err)
	s.True(has)
}

// TestGrantIsPerToken verifies grants never leak across tokens or viewers.
func (s *PermissionStoreSuite) TestGrantIsPerToken() {
	s.Require().NoError(s.store.Grant(s.ctx, 1, viewer))

	has, err := s.store.Has(s.ctx, 2, viewer)
	s.Require().NoError(err)
	s.False(has)

	has, err = s.store.Has(s.ctx, 1, other)
	s.Require().NoError(err)
	s.False(has)
}

func (s *PermissionStoreSuite) TestGrantIdempotent() {
	s.Require().NoError(s.store.Grant(s.ctx, 1, viewer))
	s.Require().NoError(s.store.Grant(s.ctx, 1, viewer))

	has, err := s.store.Has(s.ctx, 1, viewer)
	s.Require().NoError(err)
	s.True(has)
}

func (s *PermissionStoreSuite) TestRevoke() {
	s.Require().NoError(s.store.Grant(s.ctx, 1, viewer))
	s.Require().NoError(s.store.Grant(s.ctx, 1, other))

	s.Require().NoError(s.store.Revoke(s.ctx, 1, viewer))

	has, err := s.store.Has(s.ctx, 1, viewer)
	s.Require().NoError(err)
	s.False(has)

	// Other grants on the same token survive.
	has, err = s.store.Has(s.ctx, 1, other)
	s.Require().NoError(err)
	s.True(has)
}

func (s *PermissionStoreSuite) TestRevokeWithoutGrant() {
	// Revoking an absent grant is a no-op, not an error.
	s.Require().NoError(s.store.Revoke(s.ctx, 1, viewer))
}
