package recipe

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipes     map[string]*entities.Recipe
	tags        map[string]entities.Tag
	ingredients map[string]entities.Ingredient
	favorites   map[string]bool
	carts       map[string]bool

	failFavoriteWithDuplicate bool
	failCartWithDuplicate     bool
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:     make(map[string]*entities.Recipe),
		tags:        make(map[string]entities.Tag),
		ingredients: make(map[string]entities.Ingredient),
		favorites:   make(map[string]bool),
		carts:       make(map[string]bool),
	}
}

func edgeKey(userID, recipeID string) string {
	return fmt.Sprintf("%s|%s", userID, recipeID)
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag, lines []entities.IngredientInRecipe) error {
	stored := *recipe
	stored.Tags = tags
	for i := range lines {
		lines[i].RecipeID = recipe.ID
		ing := f.ingredients[lines[i].IngredientID.String()]
		lines[i].Ingredient = &ing
	}
	stored.Ingredients = lines
	f.recipes[recipe.ID.String()] = &stored
	return nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag, lines []entities.IngredientInRecipe) error {
	stored, ok := f.recipes[recipe.ID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name = recipe.Name
	stored.Text = recipe.Text
	stored.ImageURL = recipe.ImageURL
	stored.CookingTime = recipe.CookingTime
	stored.Tags = tags
	for i := range lines {
		lines[i].RecipeID = recipe.ID
		ing := f.ingredients[lines[i].IngredientID.String()]
		lines[i].Ingredient = &ing
	}
	stored.Ingredients = lines
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, filter domain.RecipeFilter, _ string) ([]*entities.Recipe, int64, error) {
	var out []*entities.Recipe
	for _, recipe := range f.recipes {
		if filter.AuthorID != "" && recipe.AuthorID.String() != filter.AuthorID {
			continue
		}
		out = append(out, recipe)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepository) RecipeNameExists(_ context.Context, authorID, name string) (bool, error) {
	for _, recipe := range f.recipes {
		if recipe.AuthorID.String() == authorID && recipe.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepository) GetTagsByIDs(_ context.Context, ids []string) ([]entities.Tag, error) {
	var out []entities.Tag
	seen := make(map[string]bool)
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepository) GetIngredientsByIDs(_ context.Context, ids []string) ([]entities.Ingredient, error) {
	var out []entities.Ingredient
	seen := make(map[string]bool)
	for _, id := range ids {
		if ing, ok := f.ingredients[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, ing)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepository) AddFavorite(_ context.Context, favorite *entities.FavoriteRecipe) error {
	key := edgeKey(favorite.AuthorID.String(), favorite.RecipeID.String())
	if f.failFavoriteWithDuplicate || f.favorites[key] {
		return gorm.ErrDuplicatedKey
	}
	f.favorites[key] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveFavorite(_ context.Context, userID, recipeID string) (int64, error) {
	key := edgeKey(userID, recipeID)
	if !f.favorites[key] {
		return 0, nil
	}
	delete(f.favorites, key)
	return 1, nil
}

func (f *fakeRecipeRepository) IsFavorited(_ context.Context, userID, recipeID string) (bool, error) {
	return f.favorites[edgeKey(userID, recipeID)], nil
}

func (f *fakeRecipeRepository) AddToCart(_ context.Context, item *entities.ShoppingCart) error {
	key := edgeKey(item.AuthorID.String(), item.RecipeID.String())
	if f.failCartWithDuplicate || f.carts[key] {
		return gorm.ErrDuplicatedKey
	}
	f.carts[key] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveFromCart(_ context.Context, userID, recipeID string) (int64, error) {
	key := edgeKey(userID, recipeID)
	if !f.carts[key] {
		return 0, nil
	}
	delete(f.carts, key)
	return 1, nil
}

func (f *fakeRecipeRepository) IsInCart(_ context.Context, userID, recipeID string) (bool, error) {
	return f.carts[edgeKey(userID, recipeID)], nil
}

type stubUserRepository struct{}

func (stubUserRepository) CreateUser(context.Context, *entities.User) error { return nil }
func (stubUserRepository) GetUserByID(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepository) GetUserByEmail(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepository) EmailExists(context.Context, string) (bool, error)    { return false, nil }
func (stubUserRepository) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (stubUserRepository) MarkVerified(context.Context, string) error           { return nil }
func (stubUserRepository) Subscribe(context.Context, *entities.Subscribe) error { return nil }
func (stubUserRepository) Unsubscribe(context.Context, string, string) (int64, error) {
	return 0, nil
}
func (stubUserRepository) IsSubscribed(context.Context, string, string) (bool, error) {
	return false, nil
}
func (stubUserRepository) GetSubscriptions(context.Context, string, int, int) ([]*entities.Subscribe, int64, error) {
	return nil, 0, nil
}
func (stubUserRepository) GetAuthorRecipes(context.Context, string, int) ([]*entities.Recipe, error) {
	return nil, nil
}

type stubS3 struct{}

func (stubS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + fileName, nil
}
func (stubS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

type recipeFixture struct {
	repo    *fakeRecipeRepository
	service RecipeService

	authorID string
	tagID    string
	flourID  string
	sugarID  string
}

func newRecipeFixture() *recipeFixture {
	repo := newFakeRecipeRepository()

	tagID := uuid.New()
	repo.tags[tagID.String()] = entities.Tag{ID: tagID, Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"}

	flourID := uuid.New()
	sugarID := uuid.New()
	repo.ingredients[flourID.String()] = entities.Ingredient{ID: flourID, Name: "Flour", MeasurementUnit: "g"}
	repo.ingredients[sugarID.String()] = entities.Ingredient{ID: sugarID, Name: "Sugar", MeasurementUnit: "g"}

	return &recipeFixture{
		repo:     repo,
		service:  NewRecipeService(repo, stubUserRepository{}, stubS3{}),
		authorID: uuid.New().String(),
		tagID:    tagID.String(),
		flourID:  flourID.String(),
		sugarID:  sugarID.String(),
	}
}

func (fx *recipeFixture) validRequest() domain.CreateRecipeRequest {
	return domain.CreateRecipeRequest{
		Name:        "pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Tags:        []string{fx.tagID},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: fx.flourID, Amount: 200},
			{ID: fx.sugarID, Amount: 50},
		},
	}
}

func TestCreateRecipe(t *testing.T) {
	fx := newRecipeFixture()

	res, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", res.Name)
	assert.Equal(t, 20, res.CookingTime)
	require.Len(t, res.Ingredients, 2)

	amounts := map[string]int{}
	for _, line := range res.Ingredients {
		amounts[line.Name] = line.Amount
	}
	assert.Equal(t, 200, amounts["Flour"])
	assert.Equal(t, 50, amounts["Sugar"])

	require.Len(t, res.Tags, 1)
	assert.Equal(t, "breakfast", res.Tags[0].Slug)
	assert.False(t, res.IsFavorited)
	assert.False(t, res.IsInShoppingCart)
}

func TestCreateRecipeValidationOrder(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()

	t.Run("no tags", func(t *testing.T) {
		req := fx.validRequest()
		req.Tags = nil
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrNoTags)
	})

	t.Run("unknown tag", func(t *testing.T) {
		req := fx.validRequest()
		req.Tags = []string{uuid.New().String()}
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	t.Run("no ingredients", func(t *testing.T) {
		req := fx.validRequest()
		req.Ingredients = nil
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrNoIngredients)
	})

	t.Run("unknown ingredient", func(t *testing.T) {
		req := fx.validRequest()
		req.Ingredients = []domain.IngredientAmountRequest{{ID: uuid.New().String(), Amount: 10}}
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	})

	t.Run("duplicate ingredient regardless of amounts", func(t *testing.T) {
		req := fx.validRequest()
		req.Ingredients = []domain.IngredientAmountRequest{
			{ID: fx.flourID, Amount: 100},
			{ID: fx.flourID, Amount: 300},
		}
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrIngredientNotUnique)
	})

	t.Run("duplicate wins over bad amount", func(t *testing.T) {
		req := fx.validRequest()
		req.Ingredients = []domain.IngredientAmountRequest{
			{ID: fx.flourID, Amount: -5},
			{ID: fx.flourID, Amount: 300},
		}
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrIngredientNotUnique)
	})

	t.Run("non positive amount", func(t *testing.T) {
		req := fx.validRequest()
		req.Ingredients = []domain.IngredientAmountRequest{{ID: fx.flourID, Amount: 0}}
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("cooking time zero", func(t *testing.T) {
		req := fx.validRequest()
		req.CookingTime = 0
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrInvalidCookingTime)
	})

	t.Run("cooking time boundary one", func(t *testing.T) {
		req := fx.validRequest()
		req.Name = "boundary dish"
		req.CookingTime = 1
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.NoError(t, err)
	})

	t.Run("name too short", func(t *testing.T) {
		req := fx.validRequest()
		req.Name = "ab"
		_, err := fx.service.CreateRecipe(ctx, req, fx.authorID)
		assert.ErrorIs(t, err, domain.ErrRecipeNameTooShort)
	})
}

func TestCreateRecipeDuplicateName(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()

	_, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	_, err = fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	assert.ErrorIs(t, err, domain.ErrDuplicateRecipeName)

	// the same name under a different author is fine
	_, err = fx.service.CreateRecipe(ctx, fx.validRequest(), uuid.New().String())
	assert.NoError(t, err)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()

	created, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	req := fx.validRequest()
	req.Ingredients = []domain.IngredientAmountRequest{{ID: fx.sugarID, Amount: 75}}

	updated, err := fx.service.UpdateRecipe(ctx, created.ID, req, fx.authorID, domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Sugar", updated.Ingredients[0].Name)
	assert.Equal(t, 75, updated.Ingredients[0].Amount)

	stored := fx.repo.recipes[created.ID]
	require.Len(t, stored.Ingredients, 1)
	assert.Equal(t, fx.sugarID, stored.Ingredients[0].IngredientID.String())
}

func TestUpdateRecipeAuthorization(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()

	created, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	_, err = fx.service.UpdateRecipe(ctx, created.ID, fx.validRequest(), uuid.New().String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	// administrators may edit any recipe
	_, err = fx.service.UpdateRecipe(ctx, created.ID, fx.validRequest(), uuid.New().String(), domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestFavoriteToggle(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()
	viewerID := uuid.New().String()

	created, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	short, err := fx.service.AddFavorite(ctx, created.ID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, short.ID)
	assert.Equal(t, "Pancakes", short.Name)
	assert.Equal(t, 20, short.CookingTime)

	_, err = fx.service.AddFavorite(ctx, created.ID, viewerID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	require.NoError(t, fx.service.RemoveFavorite(ctx, created.ID, viewerID))
	assert.ErrorIs(t, fx.service.RemoveFavorite(ctx, created.ID, viewerID), domain.ErrNotFavorited)

	_, err = fx.service.AddFavorite(ctx, uuid.New().String(), viewerID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavoriteConstraintViolationIsConflict(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()

	created, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	// simulate losing the race: the pre-check passes but the insert hits
	// the unique constraint
	fx.repo.failFavoriteWithDuplicate = true
	_, err = fx.service.AddFavorite(ctx, created.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
}

func TestCartToggle(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()
	viewerID := uuid.New().String()

	created, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	short, err := fx.service.AddToCart(ctx, created.ID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, short.ID)

	_, err = fx.service.AddToCart(ctx, created.ID, viewerID)
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)

	require.NoError(t, fx.service.RemoveFromCart(ctx, created.ID, viewerID))
	assert.ErrorIs(t, fx.service.RemoveFromCart(ctx, created.ID, viewerID), domain.ErrNotInCart)
}

func TestViewerRelativeFlags(t *testing.T) {
	fx := newRecipeFixture()
	ctx := context.Background()
	viewerID := uuid.New().String()

	created, err := fx.service.CreateRecipe(ctx, fx.validRequest(), fx.authorID)
	require.NoError(t, err)

	_, err = fx.service.AddFavorite(ctx, created.ID, viewerID)
	require.NoError(t, err)

	res, err := fx.service.GetRecipe(ctx, created.ID, viewerID)
	require.NoError(t, err)
	assert.True(t, res.IsFavorited)
	assert.False(t, res.IsInShoppingCart)

	// anonymous viewer always gets false
	res, err = fx.service.GetRecipe(ctx, created.ID, "")
	require.NoError(t, err)
	assert.False(t, res.IsFavorited)
	assert.False(t, res.IsInShoppingCart)
}
