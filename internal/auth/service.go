package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgauth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/security"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const invalidCredentialsMessage = "invalid credentials"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userRepository interface {
	WithTx(tx *gorm.DB) *users.Repository
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	FindAddress(ctx context.Context, userID uuid.UUID) (*models.UserAddress, error)
}

type basketAccessor interface {
	Get(ctx context.Context, buyerKey string) (*basket.BasketDTO, error)
	MergeOnLogin(ctx context.Context, anonymousKey, username string) error
}

// Service defines the account operations behind the account controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
	Login(ctx context.Context, req LoginRequest, anonymousKey string) (*SessionResponse, error)
	CurrentUser(ctx context.Context, username string) (*SessionResponse, error)
	SavedAddress(ctx context.Context, username string) (*types.Address, error)
}

type service struct {
	users       userRepository
	baskets     basketAccessor
	tx          txRunner
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// ServiceParams bundles the dependencies required to build the account service.
type ServiceParams struct {
	Users          userRepository
	Baskets        basketAccessor
	Tx             txRunner
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

// NewService constructs an account service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Baskets == nil {
		return nil, fmt.Errorf("basket accessor required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:       params.Users,
		baskets:     params.Baskets,
		tx:          params.Tx,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.users.WithTx(tx)

		if _, err := repo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}

		created, err = repo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
			Roles:        []enums.Role{enums.RoleMember},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register user")
	}
	return users.FromModel(created), nil
}

// Login authenticates the user and merges any anonymous basket onto the
// username. The anonymous basket wins over a basket from a prior session.
func (s *service) Login(ctx context.Context, req LoginRequest, anonymousKey string) (*SessionResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.baskets.MergeOnLogin(ctx, anonymousKey, user.Username); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	return s.sessionFor(ctx, user, now)
}

// CurrentUser re-issues a token for an already-authenticated username.
func (s *service) CurrentUser(ctx context.Context, username string) (*SessionResponse, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return s.sessionFor(ctx, user, time.Now().UTC())
}

// SavedAddress returns the user's saved shipping address, nil when none is stored.
func (s *service) SavedAddress(ctx context.Context, username string) (*types.Address, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	row, err := s.users.FindAddress(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load saved address")
	}
	address := row.Address
	return &address, nil
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	input := strings.TrimSpace(username)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) sessionFor(ctx context.Context, user *models.User, now time.Time) (*SessionResponse, error) {
	roles := make([]enums.Role, 0, len(user.Roles))
	for _, name := range user.Roles {
		role, err := enums.ParseRole(name)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid stored role")
		}
		roles = append(roles, role)
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    roles,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	held, err := s.baskets.Get(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		AccessToken: token,
		User:        users.FromModel(user),
		Basket:      held,
	}, nil
}
