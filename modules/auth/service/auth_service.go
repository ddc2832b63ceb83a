package service

import (
	"context"
	"strings"
	"time"

	"appointease/core/cache"
	"appointease/core/constants"
	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"
	"appointease/modules/auth/entity"
	"appointease/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, email, username, password, fullName string) (*entity.User, *errors.AppError)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, appErr *errors.AppError)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, appErr *errors.AppError)
	Logout(ctx context.Context, accessToken string) *errors.AppError
	GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, *errors.AppError)
}

type AuthService struct {
	repo  repository.UserRepositoryInterface
	cache cache.ICache
}

func NewAuthService(repo repository.UserRepositoryInterface, c cache.ICache) *AuthService {
	return &AuthService{repo: repo, cache: c}
}

func (s *AuthService) Register(ctx context.Context, email, username, password, fullName string) (*entity.User, *errors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email, username and password are required", nil)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:Register:GetByEmail", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email is already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("AuthService:Register:Hash", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		logger.Error("AuthService:Register:Create", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	logger.Info("AuthService:Register:Success", "user_id", user.ID, "email", email)
	return user, nil
}

// Login verifies credentials. Failed attempts are counted in redis and the
// account is locked out for constants.BlockDuration after
// constants.MaxLoginAttempts misses.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, *errors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))
	attemptsKey := constants.RedisKeyLoginAttempts + email

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:GetByEmail", err)
		return "", "", errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil {
		return "", "", errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		attempts, cacheErr := s.cache.IncrementLoginAttempts(ctx, attemptsKey)
		if cacheErr != nil {
			logger.Warn("AuthService:Login:IncrementAttempts", "error", cacheErr)
		}
		if attempts == 1 {
			if cacheErr := s.cache.Expire(ctx, attemptsKey, constants.BlockDuration); cacheErr != nil {
				logger.Warn("AuthService:Login:ExpireAttempts", "error", cacheErr)
			}
		}
		if attempts >= constants.MaxLoginAttempts {
			return "", "", errors.NewAppError(errors.ErrForbidden, "too many failed attempts, try again later", nil)
		}
		return "", "", errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	if err := s.cache.ResetLoginAttempts(ctx, attemptsKey); err != nil {
		logger.Warn("AuthService:Login:ResetAttempts", "error", err)
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:Login:AccessToken", err)
		return "", "", errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}
	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenRefresh)
	if err != nil {
		logger.Error("AuthService:Login:RefreshToken", err)
		return "", "", errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	logger.Info("AuthService:Login:Success", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, *errors.AppError) {
	claims, err := utils.ValidateAndParseToken(refreshToken)
	if err != nil {
		return "", errors.NewAppError(errors.ErrUnauthorized, "invalid refresh token", err)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return "", errors.NewAppError(errors.ErrUnauthorized, "token is not a refresh token", nil)
	}

	blacklisted, err := s.cache.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		logger.Warn("AuthService:Refresh:BlacklistCheck", "error", err)
	}
	if blacklisted {
		return "", errors.NewAppError(errors.ErrUnauthorized, "refresh token has been revoked", nil)
	}

	accessToken, err := utils.GenerateToken(claims.UserID, claims.Email, claims.Username, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:Refresh:AccessToken", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}
	return accessToken, nil
}

// Logout blacklists the presented access token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(accessToken)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	ttl := utils.TokenRemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.AddToBlacklist(ctx, accessToken, ttl); err != nil {
		logger.Error("AuthService:Logout:Blacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}

	logger.Info("AuthService:Logout:Success", "user_id", claims.UserID)
	return nil
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:GetMe", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return user, nil
}
