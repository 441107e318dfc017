package auth

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthstack/stockops-api/internal/application/dto"
	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/pkg/jwt"
)

// JWTConfig token generation options.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login.
type AuthUseCase struct {
	users    repository.UserRepository
	jwtCfg   JWTConfig
	validate *validator.Validate
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, validate: validator.New()}
}

// Register creates a user: hashes the password with bcrypt and persists.
// Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.users.FindByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleClinician
	}
	user := &entity.User{
		ID:                  uuid.New().String(),
		Email:               in.Email,
		PasswordHash:        string(hash),
		Name:                name,
		Role:                role,
		Status:              "active",
		DefaultLocationUUID: in.DefaultLocationUUID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, generates a JWT and returns token + user.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                u.Role,
		Status:              u.Status,
		DefaultLocationUUID: u.DefaultLocationUUID,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}
