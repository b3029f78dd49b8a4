package cart

import (
	"context"
	"sort"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/utils/pdfgen"
)

type (
	CartService interface {
		Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListLine, error)
		DownloadShoppingList(ctx context.Context, userID string) ([]byte, error)
	}

	cartService struct {
		cartRepository CartRepository
		renderer       pdfgen.ShoppingListRenderer
	}
)

func NewCartService(cartRepository CartRepository, renderer pdfgen.ShoppingListRenderer) CartService {
	return &cartService{
		cartRepository: cartRepository,
		renderer:       renderer,
	}
}

// Aggregate sums ingredient amounts across every recipe in the user's cart,
// grouped by (name, measurement unit). An empty cart yields an empty list.
// The result is ordered by name, then unit, so repeated calls over the same
// cart produce identical output.
func (s *cartService) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListLine, error) {
	lines, err := s.cartRepository.GetCartIngredientLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		name string
		unit string
	}
	totals := make(map[groupKey]int, len(lines))
	for _, line := range lines {
		if line.Ingredient == nil {
			continue
		}
		key := groupKey{name: line.Ingredient.Name, unit: line.Ingredient.MeasurementUnit}
		totals[key] += line.Amount
	}

	result := make([]domain.ShoppingListLine, 0, len(totals))
	for key, total := range totals {
		result = append(result, domain.ShoppingListLine{
			Name:            key.name,
			MeasurementUnit: key.unit,
			TotalAmount:     total,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].MeasurementUnit < result[j].MeasurementUnit
	})

	return result, nil
}

func (s *cartService) DownloadShoppingList(ctx context.Context, userID string) ([]byte, error) {
	aggregated, err := s.Aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(aggregated)
}
