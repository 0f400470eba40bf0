package cmdline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avomont/lifeline/internal/domain"
)

func TestProviderParsesLocationJSON(t *testing.T) {
	t.Parallel()

	provider := &Provider{
		command: []string{"termux-location", "-p", "gps"},
		run: func(ctx context.Context, name string, args ...string) (string, string, error) {
			assert.Equal(t, "termux-location", name)
			assert.Equal(t, []string{"-p", "gps"}, args)
			return `{"latitude": 48.8584, "longitude": 2.2945, "accuracy": 12.5, "provider": "gps"}`, "", nil
		},
	}

	fix, err := provider.Current(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 48.8584, fix.Latitude, 1e-9)
	assert.InDelta(t, 2.2945, fix.Longitude, 1e-9)
	assert.InDelta(t, 12.5, fix.Accuracy, 1e-9)
	assert.True(t, fix.Timestamp.IsZero())
}

func TestProviderMapsPermissionDenial(t *testing.T) {
	t.Parallel()

	provider := &Provider{
		command: []string{"termux-location"},
		run: func(ctx context.Context, name string, args ...string) (string, string, error) {
			return "", "Location permission not granted", errors.New("exit status 1")
		},
	}

	_, err := provider.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrLocationPermissionDenied)
}

func TestProviderMapsMissingCommand(t *testing.T) {
	t.Parallel()

	provider := &Provider{
		command: []string{"termux-location"},
		run: func(ctx context.Context, name string, args ...string) (string, string, error) {
			return "", "", domain.ErrLocationUnavailable
		},
	}

	_, err := provider.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrLocationUnavailable)
}

func TestProviderRejectsMalformedOutput(t *testing.T) {
	t.Parallel()

	provider := &Provider{
		command: []string{"termux-location"},
		run: func(ctx context.Context, name string, args ...string) (string, string, error) {
			return "not json", "", nil
		},
	}

	_, err := provider.Current(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse termux-location output")
}

func TestProviderHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	provider := NewProvider([]string{"termux-location"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Current(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProviderWithoutCommandIsUnavailable(t *testing.T) {
	t.Parallel()

	provider := NewProvider(nil)

	_, err := provider.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrLocationUnavailable)
}
