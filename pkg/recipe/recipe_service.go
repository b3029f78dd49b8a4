package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.CreateRecipeRequest, userID, role string) (domain.RecipeResponse, error)
		GetRecipe(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.RecipeListResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, userID, role string) error

		AddFavorite(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
	}
}

// validateAssociations runs the create/update checks in a fixed order and
// returns the resolved tag set plus the ingredient lines ready for bulk
// insert. First violation wins.
func (s *recipeService) validateAssociations(ctx context.Context, req domain.CreateRecipeRequest) ([]entities.Tag, []entities.IngredientInRecipe, error) {
	if len(req.Tags) == 0 {
		return nil, nil, domain.ErrNoTags
	}
	tags, err := s.recipeRepository.GetTagsByIDs(ctx, req.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(uniqueStrings(req.Tags)) {
		return nil, nil, domain.ErrTagNotFound
	}

	if len(req.Ingredients) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}
	ingredientIDs := make([]string, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		ingredientIDs = append(ingredientIDs, line.ID)
	}
	ingredients, err := s.recipeRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(uniqueStrings(ingredientIDs)) {
		return nil, nil, domain.ErrIngredientNotFound
	}

	seen := make(map[string]bool, len(req.Ingredients))
	for _, line := range req.Ingredients {
		if seen[line.ID] {
			return nil, nil, domain.ErrIngredientNotUnique
		}
		seen[line.ID] = true
	}

	for _, line := range req.Ingredients {
		if line.Amount < 1 {
			return nil, nil, domain.ErrInvalidAmount
		}
	}

	if req.CookingTime < 1 {
		return nil, nil, domain.ErrInvalidCookingTime
	}

	lines := make([]entities.IngredientInRecipe, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		ingredientUUID, err := uuid.Parse(line.ID)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		lines = append(lines, entities.IngredientInRecipe{
			IngredientID: ingredientUUID,
			Amount:       line.Amount,
		})
	}
	return tags, lines, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	tags, lines, err := s.validateAssociations(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	name, err := normalizeRecipeName(req.Name)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	// (author, name) uniqueness is only enforced on create. The unique index
	// remains the authority under concurrent creates.
	exists, err := s.recipeRepository.RecipeNameExists(ctx, authorID, name)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if exists {
		return domain.RecipeResponse{}, domain.ErrDuplicateRecipeName
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipeID := uuid.New()
	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("recipe-%s", recipeID.String()),
			req.Image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	recipe := &entities.Recipe{
		ID:          recipeID,
		AuthorID:    authorUUID,
		Name:        name,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tags, lines); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeResponse{}, domain.ErrDuplicateRecipeName
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, recipeID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.CreateRecipeRequest, userID, role string) (domain.RecipeResponse, error) {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if existing.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrUserNotAllowed
	}

	tags, lines, err := s.validateAssociations(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	name, err := normalizeRecipeName(req.Name)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	imageURL := existing.ImageURL
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("recipe-%s", existing.ID.String()),
			req.Image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	updated := &entities.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        name,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, updated, tags, lines); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeResponse{}, domain.ErrDuplicateRecipeName
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, recipeID, userID)
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, recipe, viewerID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.RecipeListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		res, err := s.toRecipeResponse(ctx, recipe, viewerID)
		if err != nil {
			return domain.RecipeListResponse{}, err
		}
		responses = append(responses, res)
	}

	return domain.RecipeListResponse{Recipes: responses, Total: count}, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.ErrUserNotAllowed
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipeResponse{}, err
	}

	// Existence pre-check is a fast path; the unique constraint decides the
	// race between two concurrent adds.
	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if favorited {
		return domain.ShortRecipeResponse{}, domain.ErrAlreadyFavorited
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShortRecipeResponse{}, domain.ErrParseUUID
	}

	favorite := &entities.FavoriteRecipe{
		ID:       uuid.New(),
		AuthorID: userUUID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.AddFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ShortRecipeResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.ShortRecipeResponse{}, err
	}

	return toShortRecipeResponse(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	affected, err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipeResponse{}, err
	}

	inCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if inCart {
		return domain.ShortRecipeResponse{}, domain.ErrAlreadyInCart
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShortRecipeResponse{}, domain.ErrParseUUID
	}

	item := &entities.ShoppingCart{
		ID:       uuid.New(),
		AuthorID: userUUID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.AddToCart(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ShortRecipeResponse{}, domain.ErrAlreadyInCart
		}
		return domain.ShortRecipeResponse{}, err
	}

	return toShortRecipeResponse(recipe), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	affected, err := s.recipeRepository.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, viewerID string) (domain.RecipeResponse, error) {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Slug:  tag.Slug,
			Color: tag.Color,
		})
	}

	ingredients := make([]domain.IngredientInRecipeResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		res := domain.IngredientInRecipeResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			res.Name = line.Ingredient.Name
			res.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, res)
	}

	author := domain.UserResponse{ID: recipe.AuthorID.String()}
	if recipe.Author != nil {
		author.Email = recipe.Author.Email
		author.Username = recipe.Author.Username
		author.FirstName = recipe.Author.FirstName
		author.LastName = recipe.Author.LastName
	}

	isFavorited := false
	isInCart := false
	if viewerID != "" {
		var err error
		isFavorited, err = s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID.String())
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		isInCart, err = s.recipeRepository.IsInCart(ctx, viewerID, recipe.ID.String())
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		author.IsSubscribed, err = s.userRepository.IsSubscribed(ctx, viewerID, recipe.AuthorID.String())
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		PubDate:          recipe.PubDate,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}, nil
}

func toShortRecipeResponse(recipe *entities.Recipe) domain.ShortRecipeResponse {
	return domain.ShortRecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

func normalizeRecipeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 3 {
		return "", domain.ErrRecipeNameTooShort
	}
	first, size := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(first)) + name[size:], nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
