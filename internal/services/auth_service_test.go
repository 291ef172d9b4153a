package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/codeverse-academy/academy-service/internal/config"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "session",
		TTL:        time.Hour,
	}
}

func newTestAuthService(repo *mockRepository) AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthService(repo, logger, validator.New(), testSessionConfig())
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	service := newTestAuthService(&mockRepository{})

	principal := Principal{UserID: "u1", Role: models.RoleTeacher, Name: "John Teacher"}
	token, err := service.IssueToken(principal)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	parsed, err := service.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if parsed.UserID != principal.UserID || parsed.Role != principal.Role || parsed.Name != principal.Name {
		t.Errorf("ParseToken() = %+v, want %+v", parsed, principal)
	}
}

func TestAuthServiceRejectsTamperedToken(t *testing.T) {
	service := newTestAuthService(&mockRepository{})

	token, err := service.IssueToken(Principal{UserID: "u1", Role: models.RoleAdmin, Name: "Admin"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := service.ParseToken(token + "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ParseToken(tampered) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := service.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ParseToken(garbage) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}

	user := &models.User{
		ID:           "u1",
		Username:     "teacher1",
		PasswordHash: string(hash),
		Name:         "John Teacher",
		Role:         models.RoleTeacher,
	}

	repo := &mockRepository{
		user: &mockUserRepo{
			getByUsername: func(ctx context.Context, username string) (*models.User, error) {
				if username == user.Username {
					return user, nil
				}
				return nil, errNotFound
			},
		},
	}
	service := newTestAuthService(repo)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		response, err := service.Login(ctx, &LoginRequest{Username: "teacher1", Password: "correct-password"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if response.Role != models.RoleTeacher || response.Token == "" {
			t.Errorf("Login() = %+v", response)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Username: "teacher1", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown username is indistinguishable", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Username: "nobody", Password: "correct-password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
