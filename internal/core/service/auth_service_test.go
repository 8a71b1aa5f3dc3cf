package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

func newAuthSvc(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, stubHasher{}, &stubTokens{}, discardLogger)
}

func message(t *testing.T, err error) string {
	t.Helper()
	de, ok := domain.AsError(err)
	if !ok {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	return de.Message
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	user, err := svc.Signup(context.Background(), ports.Credentials{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Permission != domain.PermissionWorker {
		t.Fatalf("expected default permission W, got %q", user.Permission)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	stored, _ := repo.FindByUsername(context.Background(), "alice")
	if stored == nil || stored.PasswordHash != "hashed:pw1" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	for _, in := range []ports.Credentials{
		{},
		{Username: "alice"},
		{Password: "pw"},
		{Username: "", Password: "pw"},
	} {
		_, err := svc.Signup(context.Background(), in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
	if repo.creates != 0 {
		t.Fatalf("expected no writes, got %d", repo.creates)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	if _, err := svc.Signup(context.Background(), ports.Credentials{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.Signup(context.Background(), ports.Credentials{Username: "bob", Password: "other"})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one write, got %d", repo.creates)
	}
	stored, _ := repo.FindByUsername(context.Background(), "bob")
	if stored.PasswordHash != "hashed:pw" {
		t.Fatalf("existing user was modified: %+v", stored)
	}
}

func TestAuthService_Signup_StoreFailureIsInvalidInput(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("E11000 something internal")
	svc := newAuthSvc(repo)

	_, err := svc.Signup(context.Background(), ports.Credentials{Username: "carol", Password: "pw"})
	if !errors.Is(err, domain.ErrValidation) || message(t, err) != domain.MsgInvalidInputValue {
		t.Fatalf("expected invalid input value, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	alice := repo.seed("alice", "hashed:pw1", domain.PermissionWorker)
	svc := newAuthSvc(repo)

	token, err := svc.Login(context.Background(), ports.Credentials{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "token:"+alice.ID {
		t.Fatalf("token not bound to user id: %q", token)
	}

	_, err = svc.Login(context.Background(), ports.Credentials{Username: "alice", Password: "nope"})
	if !errors.Is(err, domain.ErrUnauthorized) || message(t, err) != domain.MsgInvalidPassword {
		t.Fatalf("expected bad password error, got %v", err)
	}

	_, err = svc.Login(context.Background(), ports.Credentials{Username: "ghost", Password: "pw1"})
	if !errors.Is(err, domain.ErrUnauthorized) || message(t, err) != domain.MsgUnknownUsername {
		t.Fatalf("expected unknown user error, got %v", err)
	}

	_, err = svc.Login(context.Background(), ports.Credentials{Username: "alice"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login_StoreErrorPropagates(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newAuthSvc(repo)

	_, err := svc.Login(context.Background(), ports.Credentials{Username: "alice", Password: "pw"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := domain.AsError(err); ok {
		t.Fatalf("store error must not be classified, got %v", err)
	}
}

func TestAuthService_UpdatePermission(t *testing.T) {
	repo := newStubUserRepo()
	alice := repo.seed("alice", "hashed:pw", domain.PermissionWorker)
	svc := newAuthSvc(repo)

	if err := svc.UpdatePermission(context.Background(), ports.PermissionUpdate{Username: "alice", Permission: "M"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if repo.byID[alice.ID].Permission != domain.PermissionManager {
		t.Fatalf("permission not persisted")
	}

	if err := svc.UpdatePermission(context.Background(), ports.PermissionUpdate{Username: "alice", Permission: "W"}); err != nil {
		t.Fatalf("demote failed: %v", err)
	}
	if repo.byID[alice.ID].Permission != domain.PermissionWorker {
		t.Fatalf("permission not persisted")
	}
}

func TestAuthService_UpdatePermission_Errors(t *testing.T) {
	repo := newStubUserRepo()
	alice := repo.seed("alice", "hashed:pw", domain.PermissionWorker)
	svc := newAuthSvc(repo)
	ctx := context.Background()

	err := svc.UpdatePermission(ctx, ports.PermissionUpdate{Username: "alice"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing permission: expected ErrValidation, got %v", err)
	}

	err = svc.UpdatePermission(ctx, ports.PermissionUpdate{Permission: "M"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing username: expected ErrValidation, got %v", err)
	}

	err = svc.UpdatePermission(ctx, ports.PermissionUpdate{Username: "ghost", Permission: "M"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown target: expected ErrUnauthorized, got %v", err)
	}

	for _, p := range []string{"A", "X", "m"} {
		err = svc.UpdatePermission(ctx, ports.PermissionUpdate{Username: "alice", Permission: p})
		if !errors.Is(err, domain.ErrValidation) || message(t, err) != domain.MsgInvalidPermission {
			t.Fatalf("permission %q: expected invalid permission, got %v", p, err)
		}
	}
	if repo.byID[alice.ID].Permission != domain.PermissionWorker {
		t.Fatalf("permission changed by rejected request")
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "root", "s3cret"); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "root", "different"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one admin to be created, got %d", repo.creates)
	}
	admin, _ := repo.FindByUsername(ctx, "root")
	if admin.Permission != domain.PermissionAdmin || admin.PasswordHash != "hashed:s3cret" {
		t.Fatalf("unexpected admin: %+v", admin)
	}
}

func TestAuthService_EnsureAdmin_Skipped(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	if err := svc.EnsureAdmin(context.Background(), "root", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no admin without a password")
	}
}

func TestAuthService_EnsureAdmin_StoreDown(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("no reachable servers")
	svc := newAuthSvc(repo)

	if err := svc.EnsureAdmin(context.Background(), "root", "pw"); err == nil {
		t.Fatalf("expected error when the store is unreachable")
	}
}
