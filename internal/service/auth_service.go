package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/apperr"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/utils"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrEmailAlreadyExists = apperr.BadRequest("User already exists")
	ErrInvalidCredentials = apperr.BadRequest("Invalid credentials")
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrCannotDeleteSelf   = apperr.BadRequest("You cannot delete your own account")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates a regular user account and returns it with a bearer token
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateRegisterInput(name, email, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Warn("Email already exists", zap.String("email", email))
		return nil, "", ErrEmailAlreadyExists
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

// Login checks email and password and returns a fresh bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	start := time.Now()
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	verifyStart := time.Now()
	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", ErrInvalidCredentials
	}
	verifyDuration := time.Since(verifyStart)

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.Duration("password_verify_duration", verifyDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

// GetUser returns the account behind a token
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		logger.Log.Error("Failed to fetch users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// DeleteUser hard-deletes an account. Purchases made by the user are kept.
func (s *AuthService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return ErrCannotDeleteSelf
	}

	found, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	logger.Log.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("admin_id", actorID.String()),
	)
	return nil
}

// EnsureAdmin creates an admin account unless the email is already taken.
// It reports whether a new account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := validateRegisterInput(name, email, password); err != nil {
		return nil, false, err
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}
	logger.Log.Debug("Password hashed successfully",
		zap.Duration("hash_duration", time.Since(hashStart)),
	)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Error("Failed to create user in database",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	return user, nil
}

func validateRegisterInput(name, email, password string) error {
	if name == "" {
		return apperr.BadRequest("Name is required")
	}
	if len(name) > 100 {
		return apperr.BadRequest("Name must be at most 100 characters")
	}
	if !emailRegex.MatchString(email) || len(email) > 100 {
		return apperr.BadRequest("Please provide a valid email")
	}
	if len(password) < minPasswordLength {
		return apperr.BadRequest("Password must be at least %d characters", minPasswordLength)
	}
	if len(password) > 128 {
		return apperr.BadRequest("Password too long")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
