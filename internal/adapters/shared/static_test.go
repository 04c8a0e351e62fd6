package shared

import (
	"context"
	"testing"

	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoRobotsAreSharedAndValid(t *testing.T) {
	t.Parallel()

	robots, err := NewDemo().ListShared(context.Background(), domain.Caller{Token: "token", UserID: "1"})
	require.NoError(t, err)
	require.NotEmpty(t, robots)

	for _, robot := range robots {
		assert.True(t, robot.Shared(), robot.ID)
		assert.NoError(t, robot.Validate())
		assert.False(t, robot.OwnedBy("1"))
	}
}

func TestListSharedRequiresToken(t *testing.T) {
	t.Parallel()

	_, err := NewDemo().ListShared(context.Background(), domain.Caller{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListSharedReturnsCopies(t *testing.T) {
	t.Parallel()

	source := NewDemo()
	robots, err := source.ListShared(context.Background(), domain.Caller{Token: "token"})
	require.NoError(t, err)

	robots[0].Location.Lat = 0
	robots[0].Name = "changed"

	again, err := source.ListShared(context.Background(), domain.Caller{Token: "token"})
	require.NoError(t, err)
	assert.Equal(t, "Campus Sweeper", again[0].Name)
	assert.InDelta(t, 42.027433, again[0].Location.Lat, 1e-9)
}
