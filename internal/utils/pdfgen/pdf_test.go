package pdfgen

import (
	"testing"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	renderer, err := NewShoppingListRenderer("")
	require.NoError(t, err)

	payload, err := renderer.Render([]domain.ShoppingListLine{
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 50},
	})
	require.NoError(t, err)

	require.Greater(t, len(payload), 4)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestRenderEmptyList(t *testing.T) {
	renderer, err := NewShoppingListRenderer("")
	require.NoError(t, err)

	payload, err := renderer.Render(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestMissingFontFailsConstruction(t *testing.T) {
	renderer, err := NewShoppingListRenderer(t.TempDir())
	assert.ErrorIs(t, err, ErrFontNotFound)
	assert.Nil(t, renderer)
}
