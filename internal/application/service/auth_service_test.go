package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/pkg/utils"
)

// fakeUserRepo is an in-memory user store.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *utils.JWTManager, *entity.User) {
	t.Helper()

	hash, err := utils.HashPassword("hemligt123")
	if err != nil {
		t.Fatal(err)
	}
	user := &entity.User{
		ID:             uuid.New(),
		Name:           "Anna Andersson",
		Email:          "anna@kvitto.se",
		Password:       hash,
		CompanyName:    "Kvitto AB",
		DatabaseNumber: 1,
	}
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, jwtManager), jwtManager, user
}

func TestLogin(t *testing.T) {
	svc, jwtManager, user := newAuthFixture(t)

	out, err := svc.Login(context.Background(), &LoginInput{Email: "anna@kvitto.se", Password: "hemligt123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != user.ID || claims.CompanyName != "Kvitto AB" || claims.DatabaseNumber != 1 {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	cases := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Email: "anna@kvitto.se", Password: "fel-lösenord"}},
		{"unknown email", LoginInput{Email: "ingen@kvitto.se", Password: "hemligt123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tc.input)
			if err == nil {
				t.Fatal("expected credentials error")
			}
			wantStatus(t, err, http.StatusUnauthorized)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	svc, jwtManager, user := newAuthFixture(t)

	refresh, err := jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		t.Fatal(err)
	}

	out, err := svc.RefreshToken(context.Background(), refresh)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.CompanyName != user.CompanyName {
		t.Errorf("expected company claim %q, got %q", user.CompanyName, claims.CompanyName)
	}

	if _, err := svc.RefreshToken(context.Background(), "inte-en-token"); err == nil {
		t.Fatal("expected error for garbage token")
	} else {
		wantStatus(t, err, http.StatusUnauthorized)
	}
}

func TestGetProfile(t *testing.T) {
	svc, _, user := newAuthFixture(t)

	got, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("expected %s, got %s", user.Email, got.Email)
	}

	if _, err := svc.GetProfile(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown user")
	} else {
		wantStatus(t, err, http.StatusNotFound)
	}
}
