package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/app/repositories"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
	"github.com/dmwangi/schooltransit/internal/pkg/auth"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterData, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionData, error)
	RefreshSession(ctx context.Context, refreshToken string) (*dto.SessionData, error)
	ListNumberPlates(ctx context.Context) ([]string, error)
}

// AuthService handles registration, login and session refresh
type AuthService struct {
	userRepo   repositories.IUserRepository
	plateRepo  repositories.INumberPlateRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	plateRepo repositories.INumberPlateRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		plateRepo:  plateRepo,
		jwtService: jwtService,
	}
}

// NormalizeEmail lowercases and trims an email address. Every lookup and
// insert goes through the same normalization so case differences can never
// produce a second account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePlate uppercases and trims a plate number.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Register creates a new user account. Number plates are only consulted for
// roles that operate a vehicle; for everyone else the field is discarded.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterData, error) {
	email := NormalizeEmail(req.Email)
	phoneNumber := strings.TrimSpace(req.PhoneNumber)
	role := models.Role(strings.TrimSpace(req.Role))

	if !role.IsRegisterable() {
		return nil, apperrors.ErrInvalidRole
	}

	exists, err := s.userRepo.EmailOrPhoneExists(ctx, email, phoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateUser
	}

	var numberPlate *string
	if role.RequiresNumberPlate() {
		plate := NormalizePlate(req.NumberPlate)
		if plate == "" {
			return nil, apperrors.ErrNumberPlateRequired
		}

		active, err := s.plateRepo.ActivePlateExists(ctx, plate)
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, apperrors.ErrNumberPlateNotFound
		}

		numberPlate = &plate
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		PhoneNumber: phoneNumber,
		NumberPlate: numberPlate,
		Role:        role,
		Password:    hashedPassword,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterData{
		Email: email,
		Role:  string(role),
	}, nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password both come back as ErrInvalidCredentials so the response never
// reveals whether the account exists.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionData, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// RefreshSession validates a refresh token and issues a fresh token pair.
// The user is re-read by the email embedded in the token, so a renamed or
// deleted account invalidates its outstanding refresh tokens.
func (s *AuthService) RefreshSession(ctx context.Context, refreshToken string) (*dto.SessionData, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	email := NormalizeEmail(claims.Email)
	if email == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	return s.issueSession(user)
}

// ListNumberPlates returns the plates available for registration.
func (s *AuthService) ListNumberPlates(ctx context.Context) ([]string, error) {
	return s.plateRepo.ListActivePlates(ctx)
}

func (s *AuthService) issueSession(user *models.User) (*dto.SessionData, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &dto.SessionData{
		Email:        user.Email,
		Role:         string(user.Role),
		Token:        accessToken,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
