package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/animes/pkg/data"
)

type stubProvider struct{}

func (stubProvider) Search(ctx context.Context, query string) ([]data.Entry, error) {
	return nil, nil
}

func (stubProvider) Episodes(ctx context.Context, playlistID string) ([]int, error) {
	return nil, nil
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Register("stub", stubProvider{})

	p, err := r.Get("stub")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("zeta", stubProvider{})
	r.Register("alpha", stubProvider{})

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

func TestDefaultRegistryHasAnimevost(t *testing.T) {
	r := Default()

	p, err := r.Get(AnimevostName)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestRecentCapability(t *testing.T) {
	// stubProvider has no recent-releases feed.
	_, err := Recent(context.Background(), stubProvider{})
	assert.ErrorIs(t, err, ErrUnsupported)
}
