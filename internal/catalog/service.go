package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Service exposes the read-side catalog operations.
type Service interface {
	List(ctx context.Context, params SearchParams) (*ProductPage, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Filters(ctx context.Context) (*FilterOptions, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// ServiceParams collects the catalog service dependencies.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context, params SearchParams) (*ProductPage, error) {
	switch params.OrderBy {
	case "", OrderByName, OrderByPrice, OrderByPriceDesc:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported orderBy %q", params.OrderBy))
	}

	list, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return &ProductPage{
		Items: NewProductDTOs(list.Items),
		Meta:  list.Meta,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) Filters(ctx context.Context) (*FilterOptions, error) {
	opts, err := s.repo.FilterOptions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load filter options")
	}
	return opts, nil
}
