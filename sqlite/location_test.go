package sqlite

import (
	"context"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocationService(t *testing.T) *LocationService {
	t.Helper()
	return NewLocationService(newTestStore(t), mock.NewIncrementingIDGenerator(1))
}

func TestLocationService_CreateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("create and read back", func(t *testing.T) {
		svc := newTestLocationService(t)

		l := &controlplane.Location{
			Name:        "westeurope",
			DisplayName: "West Europe",
			Geography:   "Europe",
		}
		require.NoError(t, svc.CreateLocation(ctx, l))
		require.True(t, l.ID.Valid())

		got, err := svc.FindLocationByName(ctx, "westeurope")
		require.NoError(t, err)
		assert.Equal(t, l.ID, got.ID)
		assert.Equal(t, "West Europe", got.DisplayName)
		assert.Equal(t, "Europe", got.Geography)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		svc := newTestLocationService(t)

		err := svc.CreateLocation(ctx, &controlplane.Location{})
		require.Error(t, err)
		assert.Equal(t, errors.EEmptyValue, errors.ErrorCode(err))
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := newTestLocationService(t)

		require.NoError(t, svc.CreateLocation(ctx, &controlplane.Location{Name: "westeurope"}))

		err := svc.CreateLocation(ctx, &controlplane.Location{Name: "westeurope"})
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
	})
}

func TestLocationService_FindLocationByName(t *testing.T) {
	svc := newTestLocationService(t)

	_, err := svc.FindLocationByName(context.Background(), "atlantis")
	require.Error(t, err)
	assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
}

func TestLocationService_ListLocations(t *testing.T) {
	ctx := context.Background()
	svc := newTestLocationService(t)

	for _, name := range []string{"westeurope", "eastus", "northeurope"} {
		require.NoError(t, svc.CreateLocation(ctx, &controlplane.Location{Name: name}))
	}

	ls, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, ls, 3)

	// ordered by name
	assert.Equal(t, "eastus", ls[0].Name)
	assert.Equal(t, "northeurope", ls[1].Name)
	assert.Equal(t, "westeurope", ls[2].Name)
}

func TestLocationService_DeleteLocation(t *testing.T) {
	ctx := context.Background()
	svc := newTestLocationService(t)

	require.NoError(t, svc.CreateLocation(ctx, &controlplane.Location{Name: "westeurope"}))
	require.NoError(t, svc.DeleteLocation(ctx, "westeurope"))

	_, err := svc.FindLocationByName(ctx, "westeurope")
	assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))

	err = svc.DeleteLocation(ctx, "westeurope")
	require.Error(t, err)
	assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
}
