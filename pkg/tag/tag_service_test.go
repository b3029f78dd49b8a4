package tag

import (
	"context"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTagRepository struct {
	tags map[string]*entities.Tag
}

func newFakeTagRepository() *fakeTagRepository {
	return &fakeTagRepository{tags: make(map[string]*entities.Tag)}
}

func (f *fakeTagRepository) CreateTag(_ context.Context, tag *entities.Tag) error {
	for _, existing := range f.tags {
		if existing.Name == tag.Name || existing.Slug == tag.Slug || existing.Color == tag.Color {
			return gorm.ErrDuplicatedKey
		}
	}
	f.tags[tag.ID.String()] = tag
	return nil
}

func (f *fakeTagRepository) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (f *fakeTagRepository) GetTags(_ context.Context) ([]*entities.Tag, error) {
	out := make([]*entities.Tag, 0, len(f.tags))
	for _, tag := range f.tags {
		out = append(out, tag)
	}
	return out, nil
}

func TestCreateTag(t *testing.T) {
	service := NewTagService(newFakeTagRepository())
	ctx := context.Background()

	req := domain.CreateTagRequest{Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"}

	res, err := service.CreateTag(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", res.Slug)
	assert.NotEmpty(t, res.ID)

	_, err = service.CreateTag(ctx, req)
	assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)
}

func TestGetTagNotFound(t *testing.T) {
	service := NewTagService(newFakeTagRepository())

	_, err := service.GetTag(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}
