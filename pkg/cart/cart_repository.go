package cart

import (
	"context"

	"Foodgram-Backend/entities"

	"gorm.io/gorm"
)

type (
	CartRepository interface {
		GetCartIngredientLines(ctx context.Context, userID string) ([]*entities.IngredientInRecipe, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetCartIngredientLines returns every ingredient line of every recipe in
// the user's shopping cart, with the ingredient reference loaded.
func (r *cartRepository) GetCartIngredientLines(ctx context.Context, userID string) ([]*entities.IngredientInRecipe, error) {
	var lines []*entities.IngredientInRecipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_in_recipes.recipe_id").
		Where("shopping_carts.author_id = ?", userID).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
