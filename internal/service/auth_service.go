package service

import (
	"aptiprep/internal/apperr"
	"aptiprep/internal/model"
	"aptiprep/internal/repository"
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const minPasswordLength = 8

// AuthService handles user accounts and token issuance
type AuthService struct {
	userRepo  repository.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepo, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account and returns a token for it
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	var problems []string
	if name == "" {
		problems = append(problems, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		problems = append(problems, "email is invalid")
	}
	if len(req.Password) < minPasswordLength {
		problems = append(problems, "password must be at least 8 characters")
	}
	if len(problems) > 0 {
		return nil, apperr.BadRequest("invalid registration", problems...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	return s.issue(user)
}

// Login validates credentials and returns a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, &apperr.Error{Status: http.StatusUnauthorized, Message: ErrInvalidCredentials.Error(), Err: ErrInvalidCredentials}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &apperr.Error{Status: http.StatusUnauthorized, Message: ErrInvalidCredentials.Error(), Err: ErrInvalidCredentials}
	}

	return s.issue(user)
}

// Me returns the account behind a user id
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*model.LoginResponse, error) {
	token, err := s.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &model.LoginResponse{Token: token, User: user}, nil
}

// GenerateToken creates a signed token for a user
func (s *AuthService) GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := &model.UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a user JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
