package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigma-caixa-api/internal/application/dto"
	"github.com/jhoicas/sigma-caixa-api/internal/domain"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/entity"
	"github.com/jhoicas/sigma-caixa-api/internal/domain/repository"
	"github.com/jhoicas/sigma-caixa-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, logout y validación de tokens bearer.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	blacklist TokenBlacklist
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, blacklist TokenBlacklist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, blacklist: blacklist, jwtCfg: jwtCfg}
}

// EnsureUser crea el usuario con la contraseña dada si todavía no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica username/password y emite un token bearer con expiración.
// Usuario inexistente, contraseña incorrecta o usuario inactivo → ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token.Value,
		TokenType:   "bearer",
		ExpiresIn:   int(time.Until(token.ExpiresAt).Round(time.Second) / time.Second),
	}, nil
}

// Authorize valida el token (firma, expiración, revocación) y devuelve sus claims.
func (uc *AuthUseCase) Authorize(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.ID != "" {
		revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
		}
	}
	return claims, nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrUnauthorized
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := uc.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// IsUnauthorized indica si err corresponde a credenciales o token inválidos.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
