package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"corrigeaqui/internal/config"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
)

// AuthService handles registration, login, and access token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// AuthResult bundles the issued token with the authenticated user.
type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in"`
	User      *model.User `json:"user"`
}

// Register creates a new citizen account and logs it in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" {
		return nil, model.ErrNameRequired
	}
	if req.Email == "" {
		return nil, model.ErrEmailRequired
	}
	if req.Password == "" {
		return nil, model.ErrPasswordRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHashed: string(hashed),
		CPF:            req.CPF,
		PhoneNumber:    req.Phone,
		Role:           model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrEmailExists or wrapped error
	}

	token, err := s.generateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Printf("[AuthService] Registered user %d (%s)", user.ID, user.Email)

	return &AuthResult{
		Token:     token,
		ExpiresIn: s.config.AccessTokenMaxAge,
		User:      user,
	}, nil
}

// Login verifies credentials and issues an access token.
// Unknown email and wrong password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == model.ErrUserNotFound {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Printf("[AuthService] User %d logged in", user.ID)

	return &AuthResult{
		Token:     token,
		ExpiresIn: s.config.AccessTokenMaxAge,
		User:      user,
	}, nil
}

func (s *AuthService) generateAccessToken(userID int64, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Duration(s.config.AccessTokenMaxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
