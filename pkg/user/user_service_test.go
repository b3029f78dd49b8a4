package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	golangjwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users         map[string]*entities.User
	subscriptions map[string]bool
	authorRecipes map[string][]*entities.Recipe

	failSubscribeWithDuplicate bool
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:         make(map[string]*entities.User),
		subscriptions: make(map[string]bool),
		authorRecipes: make(map[string][]*entities.Recipe),
	}
}

func pairKey(userID, authorID string) string {
	return fmt.Sprintf("%s|%s", userID, authorID)
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) MarkVerified(_ context.Context, id string) error {
	if user, ok := f.users[id]; ok {
		user.Verified = true
	}
	return nil
}

func (f *fakeUserRepository) Subscribe(_ context.Context, subscribe *entities.Subscribe) error {
	key := pairKey(subscribe.UserID.String(), subscribe.AuthorID.String())
	if f.failSubscribeWithDuplicate || f.subscriptions[key] {
		return gorm.ErrDuplicatedKey
	}
	f.subscriptions[key] = true
	return nil
}

func (f *fakeUserRepository) Unsubscribe(_ context.Context, userID, authorID string) (int64, error) {
	key := pairKey(userID, authorID)
	if !f.subscriptions[key] {
		return 0, nil
	}
	delete(f.subscriptions, key)
	return 1, nil
}

func (f *fakeUserRepository) IsSubscribed(_ context.Context, userID, authorID string) (bool, error) {
	return f.subscriptions[pairKey(userID, authorID)], nil
}

func (f *fakeUserRepository) GetSubscriptions(_ context.Context, userID string, _, _ int) ([]*entities.Subscribe, int64, error) {
	var out []*entities.Subscribe
	for _, author := range f.users {
		if f.subscriptions[pairKey(userID, author.ID.String())] {
			out = append(out, &entities.Subscribe{
				UserID:   uuid.MustParse(userID),
				AuthorID: author.ID,
				Author:   author,
			})
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepository) GetAuthorRecipes(_ context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	recipes := f.authorRecipes[authorID]
	if len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

type fakeJWTService struct{}

func (fakeJWTService) GenerateTokenUser(userId string, role string) string {
	return "token-" + userId + "-" + role
}

func (fakeJWTService) ValidateTokenUser(string) (*golangjwt.Token, error) {
	return nil, domain.ErrTokenInvalid
}

func (fakeJWTService) GetUserIDByToken(string) (string, string, error) {
	return "", "", domain.ErrTokenInvalid
}

func (fakeJWTService) GenerateVerifyToken(map[string]any, time.Duration) (string, error) {
	return "verify-token", nil
}

func (fakeJWTService) ValidateVerifyToken(string) (golangjwt.MapClaims, error) {
	return nil, domain.ErrTokenInvalid
}

func addUser(repo *fakeUserRepository, username string) *entities.User {
	user := &entities.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Role:      domain.RoleUser,
	}
	repo.users[user.ID.String()] = user
	return user
}

func addRecipes(repo *fakeUserRepository, authorID string, n int) {
	for i := 0; i < n; i++ {
		repo.authorRecipes[authorID] = append(repo.authorRecipes[authorID], &entities.Recipe{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("Dish %d", i+1),
			CookingTime: 10,
		})
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	req := domain.RegisterUserRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "s3cretpass",
	}

	res, err := service.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", res.Email)
	assert.Equal(t, "cook", res.Username)

	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	req.Email = "other@example.com"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterUserRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)

	res, err := service.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestSubscribe(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	follower := addUser(repo, "follower")
	author := addUser(repo, "author")
	addRecipes(repo, author.ID.String(), 2)

	res, err := service.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	require.NoError(t, err)
	assert.Equal(t, "author", res.Username)
	assert.True(t, res.IsSubscribed)
	assert.Len(t, res.Recipes, 2)

	_, err = service.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	_, err = service.Subscribe(ctx, follower.ID.String(), uuid.New().String(), 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSelfSubscribeAlwaysRejected(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	follower := addUser(repo, "follower")

	// rejected even with no prior subscription
	_, err := service.Subscribe(ctx, follower.ID.String(), follower.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrSelfSubscribe)

	// and before the target existence check
	ghost := uuid.New().String()
	_, err = service.Subscribe(ctx, ghost, ghost, 0)
	assert.ErrorIs(t, err, domain.ErrSelfSubscribe)
}

func TestSubscribeConstraintViolationIsConflict(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	follower := addUser(repo, "follower")
	author := addUser(repo, "author")

	repo.failSubscribeWithDuplicate = true
	_, err := service.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestUnsubscribe(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	follower := addUser(repo, "follower")
	author := addUser(repo, "author")

	_, err := service.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	require.NoError(t, err)

	require.NoError(t, service.Unsubscribe(ctx, follower.ID.String(), author.ID.String()))
	assert.ErrorIs(t, service.Unsubscribe(ctx, follower.ID.String(), author.ID.String()), domain.ErrNotSubscribed)
	assert.ErrorIs(t, service.Unsubscribe(ctx, follower.ID.String(), uuid.New().String()), domain.ErrUserNotFound)
}

func TestSubscriptionRecipesLimit(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	follower := addUser(repo, "follower")
	author := addUser(repo, "author")
	addRecipes(repo, author.ID.String(), 5)

	// default caps at three
	res, err := service.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 3)

	list, err := service.GetSubscriptions(ctx, follower.ID.String(), 5, 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Subscriptions, 1)
	assert.Len(t, list.Subscriptions[0].Recipes, 5)
	assert.Equal(t, int64(1), list.Total)
}

func TestGetUserIsSubscribed(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})
	ctx := context.Background()

	follower := addUser(repo, "follower")
	author := addUser(repo, "author")

	res, err := service.GetUser(ctx, author.ID.String(), follower.ID.String())
	require.NoError(t, err)
	assert.False(t, res.IsSubscribed)

	_, err = service.Subscribe(ctx, follower.ID.String(), author.ID.String(), 0)
	require.NoError(t, err)

	res, err = service.GetUser(ctx, author.ID.String(), follower.ID.String())
	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)

	// anonymous viewer
	res, err = service.GetUser(ctx, author.ID.String(), "")
	require.NoError(t, err)
	assert.False(t, res.IsSubscribed)
}
