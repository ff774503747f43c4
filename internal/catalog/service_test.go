package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type stubCatalogRepo struct {
	Repository
	searchResult *ProductList
	searchParams SearchParams
	product      *models.Product
	findErr      error
}

func (s *stubCatalogRepo) Search(ctx context.Context, params SearchParams) (*ProductList, error) {
	s.searchParams = params
	return s.searchResult, nil
}

func (s *stubCatalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.product, nil
}

func newCatalogService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Logger: logger.New(logger.Options{ServiceName: "test"})})
	require.NoError(t, err)
	return svc
}

func TestServiceList_rejectsUnknownOrderBy(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{})

	_, err := svc.List(context.Background(), SearchParams{OrderBy: "rating"})
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestServiceList_mapsProducts(t *testing.T) {
	repo := &stubCatalogRepo{
		searchResult: &ProductList{
			Items: []models.Product{{ID: uuid.New(), Name: "Board", PriceCents: 15000}},
			Meta:  pagination.MetaData{CurrentPage: 1, TotalPages: 1, PageSize: 6, TotalCount: 1},
		},
	}
	svc := newCatalogService(t, repo)

	page, err := svc.List(context.Background(), SearchParams{OrderBy: OrderByPrice})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Board", page.Items[0].Name)
	assert.Equal(t, 15000, page.Items[0].PriceCents)
	assert.Equal(t, 1, page.Meta.TotalCount)
	assert.Equal(t, OrderByPrice, repo.searchParams.OrderBy)
}

func TestServiceGet_notFound(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestServiceGet_requiresID(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{})

	_, err := svc.Get(context.Background(), uuid.Nil)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
