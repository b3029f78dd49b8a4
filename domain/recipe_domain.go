package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes    = "success get recipes"
	MessageSuccessGetRecipe     = "success get recipe detail"
	MessageSuccessCreateRecipe  = "recipe created successfully"
	MessageSuccessUpdateRecipe  = "recipe updated successfully"
	MessageSuccessDeleteRecipe  = "recipe deleted successfully"
	MessageSuccessAddFavorite   = "recipe added to favorites"
	MessageSuccessDelFavorite   = "recipe removed from favorites"
	MessageSuccessAddToCart     = "recipe added to shopping cart"
	MessageSuccessDelFromCart   = "recipe removed from shopping cart"
	MessageSuccessDownloadCart  = "shopping cart downloaded successfully"

	MessageFailedGetRecipes   = "failed to get recipes"
	MessageFailedGetRecipe    = "failed to get recipe detail"
	MessageFailedCreateRecipe = "failed to create recipe"
	MessageFailedUpdateRecipe = "failed to update recipe"
	MessageFailedDeleteRecipe = "failed to delete recipe"
	MessageFailedFavorite     = "failed to update favorites"
	MessageFailedCart         = "failed to update shopping cart"
	MessageFailedDownloadCart = "failed to download shopping cart"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNoTags              = errors.New("add at least one tag")
	ErrNoIngredients       = errors.New("add at least one ingredient")
	ErrIngredientNotUnique = errors.New("ingredient must be unique")
	ErrInvalidAmount       = errors.New("ingredient amount must be a positive number")
	ErrInvalidCookingTime  = errors.New("cooking time must be at least 1 minute")
	ErrRecipeNameTooShort  = errors.New("recipe name must contain at least 3 characters")
	ErrDuplicateRecipeName = errors.New("duplicate recipe name")

	ErrAlreadyFavorited = errors.New("recipe already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe already in shopping cart")
	ErrNotInCart        = errors.New("recipe is not in shopping cart")
)

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required"`
		Tags        []string                  `json:"tags" validate:"required"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,dive"`
		Image       *multipart.FileHeader     `json:"-"`
	}

	RecipeFilter struct {
		AuthorID       string
		TagSlugs       []string
		Favorited      bool
		InShoppingCart bool
		Page           int
		Limit          int
	}

	IngredientInRecipeResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Color string `json:"color"`
	}

	RecipeResponse struct {
		ID                string                       `json:"id"`
		Tags              []TagResponse                `json:"tags"`
		Author            UserResponse                 `json:"author"`
		Ingredients       []IngredientInRecipeResponse `json:"ingredients"`
		Name              string                       `json:"name"`
		Image             string                       `json:"image"`
		Text              string                       `json:"text"`
		CookingTime       int                          `json:"cooking_time"`
		PubDate           time.Time                    `json:"pub_date"`
		IsFavorited       bool                         `json:"is_favorited"`
		IsInShoppingCart  bool                         `json:"is_in_shopping_cart"`
	}

	ShortRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes []RecipeResponse `json:"recipes"`
		Total   int64            `json:"total"`
	}
)
