package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	"github.com/jhoicas/taller-inventario/internal/domain"
)

func TestConsumptionUseCase_CreateListDelete(t *testing.T) {
	repo := &memConsumption{}
	uc := usecase.NewConsumptionUseCase(repo)
	ctx := context.Background()

	res, err := uc.Create(ctx, dto.CreateConsumptionRequest{
		Date: "2024-06-10", ItemID: "3", ItemName: "Tablero", Quantity: "1,5", Value: "30.000", Boards: "2",
	})
	require.NoError(t, err)
	assert.True(t, res.Created)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, decimal.RequireFromString("1.5").Equal(list[0].Quantity))
	assert.True(t, decimal.NewFromInt(30).Equal(list[0].Value), "un solo punto es separador decimal")
	require.NotNil(t, list[0].Boards)
	assert.Nil(t, list[0].Posts)
	assert.Nil(t, list[0].SaleValue)

	require.NoError(t, uc.Delete(ctx, res.ID))
	assert.ErrorIs(t, uc.Delete(ctx, res.ID), domain.ErrNotFound)
}

func TestConsumptionUseCase_Validation(t *testing.T) {
	uc := usecase.NewConsumptionUseCase(&memConsumption{})

	for _, in := range []dto.CreateConsumptionRequest{
		{ItemID: "1", ItemName: "x", Quantity: "1"},
		{Date: "2024-06-10", ItemID: "0", ItemName: "x", Quantity: "1"},
		{Date: "2024-06-10", ItemID: "1", Quantity: "1"},
		{Date: "2024-06-10", ItemID: "1", ItemName: "x", Quantity: "?"},
		{Date: "2024-06-10", ItemID: "1", ItemName: "x", Quantity: "1", Posts: "dos"},
	} {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}
