package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"corrigeaqui/internal/config"
	"corrigeaqui/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		AccessTokenMaxAge: 3600,
	}
}

func TestRegister_Success(t *testing.T) {
	// ARRANGE
	var createdUser *model.User
	userRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			createdUser = user
			return nil
		},
	}
	svc := NewAuthService(userRepo, testConfig())

	// ACT
	result, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "  Ana Silva  ",
		Email:    "Ana@Example.COM",
		Password: "secret123",
	})

	// ASSERT
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.Token == "" {
		t.Errorf("expected an access token")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", result.ExpiresIn)
	}
	if createdUser.Name != "Ana Silva" {
		t.Errorf("expected trimmed name, got %q", createdUser.Name)
	}
	if createdUser.Email != "ana@example.com" {
		t.Errorf("expected lowercased email, got %q", createdUser.Email)
	}
	if createdUser.Role != model.RoleUser {
		t.Errorf("new accounts must get role %s, got %s", model.RoleUser, createdUser.Role)
	}
	if createdUser.PasswordHashed == "secret123" {
		t.Errorf("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHashed), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.RegisterRequest
		wantErr error
	}{
		{
			name:    "missing name",
			req:     model.RegisterRequest{Email: "a@b.com", Password: "x"},
			wantErr: model.ErrNameRequired,
		},
		{
			name:    "whitespace name",
			req:     model.RegisterRequest{Name: "   ", Email: "a@b.com", Password: "x"},
			wantErr: model.ErrNameRequired,
		},
		{
			name:    "missing email",
			req:     model.RegisterRequest{Name: "Ana", Password: "x"},
			wantErr: model.ErrEmailRequired,
		},
		{
			name:    "missing password",
			req:     model.RegisterRequest{Name: "Ana", Email: "a@b.com"},
			wantErr: model.ErrPasswordRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{}
			svc := NewAuthService(userRepo, testConfig())

			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if userRepo.createCalls != 0 {
				t.Errorf("invalid request must not reach the repository")
			}
		})
	}
}

func TestRegister_EmailExists(t *testing.T) {
	userRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.ErrEmailExists
		},
	}
	svc := NewAuthService(userRepo, testConfig())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ana",
		Email:    "taken@example.com",
		Password: "x",
	})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	stored := &model.User{
		ID:             1,
		Name:           "Ana",
		Email:          "ana@example.com",
		PasswordHashed: string(hashed),
		Role:           model.RoleUser,
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "ana@example.com",
			password: "correct-password",
		},
		{
			name:     "email case and spacing normalized",
			email:    "  ANA@Example.com ",
			password: "correct-password",
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "wrong",
			wantErr:  model.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "correct-password",
			wantErr:  model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					if email == stored.Email {
						return stored, nil
					}
					return nil, model.ErrUserNotFound
				},
			}
			svc := NewAuthService(userRepo, testConfig())

			result, err := svc.Login(context.Background(), model.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if result.Token == "" {
				t.Errorf("expected an access token")
			}
			// HS256 compact JWS has three segments
			if parts := strings.Split(result.Token, "."); len(parts) != 3 {
				t.Errorf("expected a three-part JWT, got %d parts", len(parts))
			}
			if result.User.ID != stored.ID {
				t.Errorf("expected user %d, got %d", stored.ID, result.User.ID)
			}
		})
	}
}
