package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockRepo) UpsertBySlug(ctx context.Context, c domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "smart-phones", Slugify("  Smart Phones!! "))
	assert.Equal(t, "audio-video", Slugify("Audio & Video"))
	assert.Equal(t, "", Slugify("¡¡"))
}

func TestCreate_DerivesSlug(t *testing.T) {
	repo := new(mockRepo)
	svc := New(repo)
	ctx := context.Background()

	want := domain.Category{Name: "Laptops", Slug: "laptops"}
	repo.On("Create", ctx, want).Return(&domain.Category{ID: 2, Name: "Laptops", Slug: "laptops"}, nil)

	got, err := svc.Create(ctx, domain.Category{Name: " Laptops "})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	repo.AssertExpectations(t)
}

func TestCreate_RequiresName(t *testing.T) {
	svc := New(new(mockRepo))

	_, err := svc.Create(context.Background(), domain.Category{})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
}

func TestUpdate_MergesPatch(t *testing.T) {
	repo := new(mockRepo)
	svc := New(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(&domain.Category{ID: 1, Name: "Phones", Slug: "phones"}, nil)
	repo.On("Update", ctx, domain.Category{ID: 1, Name: "Smartphones", Slug: "phones"}).
		Return(&domain.Category{ID: 1, Name: "Smartphones", Slug: "phones"}, nil)

	name := "Smartphones"
	got, err := svc.Update(ctx, 1, domain.CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Smartphones", got.Name)
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := New(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(9)).Return(&domain.NotFoundError{Entity: "category", ID: 9})

	err := svc.Delete(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
