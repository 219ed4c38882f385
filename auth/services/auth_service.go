package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/nuoidev/api/auth/errors"
	"github.com/nuoidev/api/auth/models"
	"github.com/nuoidev/api/auth/repository"
	"github.com/nuoidev/api/internal/auth/tokens"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/pkg/log"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/internal/types"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	profilemodels "github.com/nuoidev/api/profiles/models"
)

// AuthService defines the business operations of the auth module.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	IssueSession(ctx context.Context, user *models.User) (token string, err error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*models.User, error)
	RevokeSession(ctx context.Context, userID uuid.UUID, token string) error
}

// ProfileResolver looks up the profile owned by an account so sessions can
// carry the owner's profile id in their claim. The profiles service
// satisfies it.
type ProfileResolver interface {
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (*profilemodels.Profile, error)
}

// SignupInput carries the validated signup fields.
type SignupInput struct {
	Username    string
	Password    string
	DisplayName string
	Avatar      string
}

// UpdateAccountInput carries the mutable account fields. Nil pointers leave
// the field untouched; an empty Password keeps the current one.
type UpdateAccountInput struct {
	DisplayName *string
	Avatar      *string
	Password    string
}

// ServiceConfig holds the configuration the auth service needs.
type ServiceConfig struct {
	JWTConfig platformconfig.JWTConfig
	AppName   string
}

type authService struct {
	userRepo        repository.UserRepository
	cacheService    *cache.GenericCacheService
	profileResolver ProfileResolver
	config          *ServiceConfig
}

// NewAuthService creates an auth service with its dependencies injected.
// cacheService may be nil when session allowlisting is disabled;
// profileResolver may be nil when sessions need no profile claim.
func NewAuthService(userRepo repository.UserRepository, cacheService *cache.GenericCacheService, profileResolver ProfileResolver, config *ServiceConfig) AuthService {
	return &authService{
		userRepo:        userRepo,
		cacheService:    cacheService,
		profileResolver: profileResolver,
		config:          config,
	}
}

// Signup hashes the password and creates the user record.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &models.User{
		ID:          userID,
		Username:    input.Username,
		Password:    hashedPassword,
		DisplayName: displayName,
		Avatar:      input.Avatar,
		Role:        types.UserRole,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the username/password pair. Unknown usernames and
// wrong passwords both map to ErrInvalidCredentials so login probing cannot
// distinguish them.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	return user, nil
}

// IssueSession creates a signed session token for the user and registers its
// jti in the session allowlist when a cache is available.
func (s *authService) IssueSession(ctx context.Context, user *models.User) (string, error) {
	claim := map[string]interface{}{
		types.HeaderUID: user.ID.String(),
		"username":      user.Username,
		"displayName":   user.DisplayName,
		"avatar":        user.Avatar,
		"role":          user.Role,
	}
	if s.profileResolver != nil {
		// New accounts have no profile yet; the claim is simply omitted then.
		if profile, err := s.profileResolver.GetProfileByUser(ctx, user.ID); err == nil {
			claim["profileId"] = profile.ID.String()
		} else if !errors.Is(err, profileerrors.ErrProfileNotFound) {
			log.Warn("Failed to resolve profile for session of user %s: %v", user.ID, err)
		}
	}
	profile := map[string]string{
		"login": user.Username,
		"name":  user.DisplayName,
	}

	token, jti, err := tokens.CreateToken(s.config.JWTConfig.PrivateKey, s.config.AppName, profile, claim, tokens.DefaultTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	if s.cacheService != nil && s.cacheService.IsEnabled() {
		key := s.cacheService.GenerateHashKey("sessions", map[string]interface{}{"uid": user.ID.String()})
		if err := s.cacheService.SetAdd(ctx, key, jti); err != nil {
			// The token is already signed; a failed allowlist write only
			// weakens revocation, so log and continue.
			log.Warn("Failed to register session %s for user %s: %v", jti, user.ID, err)
		}
	}

	return token, nil
}

// CurrentUser loads the user behind an authenticated session.
func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateAccount applies account edits and returns the refreshed user. The
// caller re-issues the session so the cookie reflects the new identity.
func (s *authService) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*models.User, error) {
	update := &models.UserUpdate{
		DisplayName: input.DisplayName,
		Avatar:      input.Avatar,
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.Password = hashed
	}

	if err := s.userRepo.Update(ctx, userID, update); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(ctx, userID)
}

// RevokeSession removes the token's jti from the session allowlist.
func (s *authService) RevokeSession(ctx context.Context, userID uuid.UUID, token string) error {
	if s.cacheService == nil || !s.cacheService.IsEnabled() {
		return nil
	}

	jti, err := tokens.ExtractJTI(token)
	if err != nil || jti == "" {
		// Nothing to revoke from a token we cannot read.
		return nil
	}

	key := s.cacheService.GenerateHashKey("sessions", map[string]interface{}{"uid": userID.String()})
	return s.cacheService.SetRemove(ctx, key, jti)
}
