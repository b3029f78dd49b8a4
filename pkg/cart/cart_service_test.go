package cart

import (
	"context"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepository struct {
	lines []*entities.IngredientInRecipe
}

func (f *fakeCartRepository) GetCartIngredientLines(_ context.Context, _ string) ([]*entities.IngredientInRecipe, error) {
	return f.lines, nil
}

type captureRenderer struct {
	rendered []domain.ShoppingListLine
}

func (r *captureRenderer) Render(lines []domain.ShoppingListLine) ([]byte, error) {
	r.rendered = lines
	return []byte("%PDF-fake"), nil
}

func line(name, unit string, amount int) *entities.IngredientInRecipe {
	return &entities.IngredientInRecipe{
		Amount:     amount,
		Ingredient: &entities.Ingredient{Name: name, MeasurementUnit: unit},
	}
}

func TestAggregateSumsByNameAndUnit(t *testing.T) {
	repo := &fakeCartRepository{lines: []*entities.IngredientInRecipe{
		line("Flour", "g", 200),
		line("Sugar", "g", 50),
		line("Flour", "g", 100),
		line("Egg", "pcs", 2),
	}}
	service := NewCartService(repo, &captureRenderer{})

	got, err := service.Aggregate(context.Background(), "user")
	require.NoError(t, err)

	assert.Equal(t, []domain.ShoppingListLine{
		{Name: "Egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 50},
	}, got)
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := []*entities.IngredientInRecipe{
		line("Flour", "g", 200),
		line("Sugar", "g", 50),
		line("Flour", "g", 100),
	}
	reversed := []*entities.IngredientInRecipe{
		line("Flour", "g", 100),
		line("Sugar", "g", 50),
		line("Flour", "g", 200),
	}

	a, err := NewCartService(&fakeCartRepository{lines: forward}, &captureRenderer{}).Aggregate(context.Background(), "user")
	require.NoError(t, err)
	b, err := NewCartService(&fakeCartRepository{lines: reversed}, &captureRenderer{}).Aggregate(context.Background(), "user")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAggregateSameNameDifferentUnit(t *testing.T) {
	repo := &fakeCartRepository{lines: []*entities.IngredientInRecipe{
		line("Milk", "ml", 500),
		line("Milk", "g", 30),
	}}
	service := NewCartService(repo, &captureRenderer{})

	got, err := service.Aggregate(context.Background(), "user")
	require.NoError(t, err)

	// units never merge, ties on name order by unit
	assert.Equal(t, []domain.ShoppingListLine{
		{Name: "Milk", MeasurementUnit: "g", TotalAmount: 30},
		{Name: "Milk", MeasurementUnit: "ml", TotalAmount: 500},
	}, got)
}

func TestAggregateEmptyCart(t *testing.T) {
	service := NewCartService(&fakeCartRepository{}, &captureRenderer{})

	got, err := service.Aggregate(context.Background(), "user")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDownloadShoppingList(t *testing.T) {
	repo := &fakeCartRepository{lines: []*entities.IngredientInRecipe{
		line("Flour", "g", 200),
		line("Flour", "g", 100),
	}}
	renderer := &captureRenderer{}
	service := NewCartService(repo, renderer)

	payload, err := service.DownloadShoppingList(context.Background(), "user")
	require.NoError(t, err)
	assert.NotEmpty(t, payload)

	require.Len(t, renderer.rendered, 1)
	assert.Equal(t, domain.ShoppingListLine{Name: "Flour", MeasurementUnit: "g", TotalAmount: 300}, renderer.rendered[0])
}
