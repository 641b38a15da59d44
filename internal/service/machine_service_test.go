package service

import (
	"context"
	"testing"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineCreateDefaultsToActive(t *testing.T) {
	svc := NewMachineService(newMemMachines())
	ctx := context.Background()

	resp, err := svc.Create(ctx, dto.CreateMachineRequest{Name: "Trator 1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Status)
	assert.Equal(t, model.MachineActive, *resp.Status)

	maintenance := model.MachineMaintenance
	resp, err = svc.Create(ctx, dto.CreateMachineRequest{Name: "Ceifeira 2", Status: &maintenance})
	require.NoError(t, err)
	require.NotNil(t, resp.Status)
	assert.Equal(t, model.MachineMaintenance, *resp.Status)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMachineCreateNormalizesFields(t *testing.T) {
	svc := NewMachineService(newMemMachines())
	ctx := context.Background()

	brand := "  John Deere  "
	plate := "   " // whitespace-only optionals are stored as NULL
	created, err := svc.Create(ctx, dto.CreateMachineRequest{
		Name:  "  Trator 1  ",
		Brand: &brand,
		Plate: &plate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Trator 1", created.Name)
	require.NotNil(t, created.Brand)
	assert.Equal(t, "John Deere", *created.Brand)
	assert.Nil(t, created.Plate)
}

func TestMachineUpdateClearsBlankOptionals(t *testing.T) {
	svc := NewMachineService(newMemMachines())
	ctx := context.Background()

	brand := "Fendt"
	created, err := svc.Create(ctx, dto.CreateMachineRequest{Name: "Trator 1", Brand: &brand})
	require.NoError(t, err)

	blank := ""
	updated, err := svc.Update(ctx, uuid.MustParse(created.ID), dto.UpdateMachineRequest{Brand: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.Brand)
}

func TestMachineUpdatePatchesOnlyGivenFields(t *testing.T) {
	machines := newMemMachines()
	svc := NewMachineService(machines)
	ctx := context.Background()

	plate := "AA-00-BB"
	created, err := svc.Create(ctx, dto.CreateMachineRequest{Name: "Trator 1", Plate: &plate})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	newName := "Trator 1B"
	updated, err := svc.Update(ctx, id, dto.UpdateMachineRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Trator 1B", updated.Name)
	require.NotNil(t, updated.Plate)
	assert.Equal(t, "AA-00-BB", *updated.Plate, "untouched fields keep their value")

	_, err = svc.Update(ctx, uuid.New(), dto.UpdateMachineRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMachineGetAndDelete(t *testing.T) {
	svc := NewMachineService(newMemMachines())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateMachineRequest{Name: "Trator 1"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trator 1", got.Name)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound)
}
