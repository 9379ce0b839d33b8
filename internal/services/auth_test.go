package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/nutrilog-backend/internal/data/repos"
	"github.com/yungbote/nutrilog-backend/internal/data/repos/testutil"
	"github.com/yungbote/nutrilog-backend/internal/pkg/ctxutil"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
)

func newAuth(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAuthService(db, log, repos.NewUserRepo(db, log), "test-secret", ttl)
}

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	svc := newAuth(t, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, " Eater@Example.com ", "correct horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "eater@example.com" || user.Password == "correct horse" {
		t.Fatalf("Register: unexpected user %+v", user)
	}

	token, err := svc.Login(ctx, "eater@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	authed, err := svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if got := ctxutil.UserID(authed); got != user.ID {
		t.Fatalf("UserID: want=%s got=%s", user.ID, got)
	}
}

func TestAuthRejects(t *testing.T) {
	svc := newAuth(t, time.Hour)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "a@example.com", "long enough"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(ctx, "A@example.com", "long enough"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("Register duplicate: want conflict, got %v", err)
	}
	if _, err := svc.Register(ctx, "not-an-email", "long enough"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("Register bad email: want invalid argument, got %v", err)
	}
	if _, err := svc.Register(ctx, "b@example.com", "short"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("Register short password: want invalid argument, got %v", err)
	}
	if _, err := svc.Login(ctx, "a@example.com", "wrong password"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("Login wrong password: want unauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "long enough"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("Login unknown: want unauthorized, got %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, "garbage"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("SetContextFromToken garbage: want unauthorized, got %v", err)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	svc := newAuth(t, -time.Minute)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "late@example.com", "long enough"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := svc.Login(ctx, "late@example.com", "long enough")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expired token: want unauthorized, got %v", err)
	}
}
