package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/wichananm65/select-shop-backend/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9]+$`)

type SignupRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Admin      bool   `json:"admin"`
	AdminToken string `json:"adminToken"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(4, 20),
			validation.Match(usernamePattern).Error("must contain only lowercase letters and digits"),
		),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 64)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type Service struct {
	repo       Repository
	adminToken string
}

func NewService(repo Repository, adminToken string) *Service {
	return &Service{repo: repo, adminToken: adminToken}
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a USER account, or an ADMIN account when the request
// carries the configured admin token.
func (s *Service) Register(ctx context.Context, req SignupRequest) (User, error) {
	if err := req.Validate(); err != nil {
		return User{}, apperr.Validation("%s", err.Error())
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return User{}, apperr.Validation("username %q is already taken", req.Username)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return User{}, apperr.Validation("email %q is already registered", req.Email)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	role := RoleUser
	if req.Admin {
		if s.adminToken == "" || subtle.ConstantTimeCompare([]byte(req.AdminToken), []byte(s.adminToken)) != 1 {
			return User{}, apperr.Validation("invalid admin token")
		}
		role = RoleAdmin
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	})
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
