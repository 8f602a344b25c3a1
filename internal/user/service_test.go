// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/truyenhub/backend/internal/core"
)

type fakeRepository struct {
	users map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*User)}
}

func (r *fakeRepository) Create(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return core.ErrDuplicateKey
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepository) Update(ctx context.Context, user *User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return core.ErrNotFound
	}
	stored.Username = user.Username
	stored.AvatarURL = user.AvatarURL
	stored.Bio = user.Bio
	stored.Role = user.Role
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeRepository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	user, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeRepository) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	user, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	user.IsActive = active
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, len(out), nil
}

func (r *fakeRepository) IsActive(
	ctx context.Context,
	id string,
) (bool, error) {
	user, ok := r.users[id]
	if !ok {
		return false, core.ErrNotFound
	}
	return user.IsActive, nil
}

func seedUser(r *fakeRepository, id, role string, active bool) {
	r.users[id] = &User{
		ID:       id,
		Username: "user-" + id,
		Email:    id + "@example.com",
		Role:     role,
		IsActive: active,
	}
}

func TestService_SetUserActive(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	seedUser(repo, "admin-1", RoleAdmin, true)
	seedUser(repo, "user-1", RoleUser, true)
	svc := NewService(repo)
	ctx := context.Background()

	blocked, err := svc.SetUserActive(ctx, "admin-1", "user-1", false)
	if err != nil {
		t.Fatalf("block error: %v", err)
	}
	if blocked.IsActive {
		t.Fatal("user should be inactive after block")
	}

	active, err := svc.IsActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("IsActive error: %v", err)
	}
	if active {
		t.Fatal("IsActive should report the block immediately")
	}

	unblocked, err := svc.SetUserActive(ctx, "admin-1", "user-1", true)
	if err != nil {
		t.Fatalf("unblock error: %v", err)
	}
	if !unblocked.IsActive {
		t.Fatal("user should be active after unblock")
	}
}

func TestService_SetUserActiveSelfForbidden(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	seedUser(repo, "admin-1", RoleAdmin, true)
	svc := NewService(repo)

	_, err := svc.SetUserActive(context.Background(), "admin-1", "admin-1", false)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("self-block: want ErrForbidden, got %v", err)
	}
}

func TestService_SetUserActiveUnknownTarget(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	seedUser(repo, "admin-1", RoleAdmin, true)
	svc := NewService(repo)

	_, err := svc.SetUserActive(context.Background(), "admin-1", "ghost", false)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestService_CreateLowercasesEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := NewService(repo)

	info, err := svc.Create(
		context.Background(),
		"reader",
		"Reader@Example.COM",
		"hash",
		false,
	)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if info.Email != "reader@example.com" {
		t.Fatalf("email = %q, want lowercase", info.Email)
	}
	if info.Role != RoleUser {
		t.Fatalf("role = %q, want %q", info.Role, RoleUser)
	}
	if info.IsActive {
		t.Fatal("self-registered account should start inactive")
	}
}

func TestService_CreateUserAdminPathIsActive(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "moderator",
		Email:    "mod@example.com",
		Password: "Sup3rSecret!",
		Role:     RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if !user.IsActive {
		t.Fatal("admin-created account should be active immediately")
	}
	if user.Role != RoleAdmin {
		t.Fatalf("role = %q, want admin", user.Role)
	}
	if user.PasswordHash == "Sup3rSecret!" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestService_UpdateProfilePartial(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	seedUser(repo, "user-1", RoleUser, true)
	repo.users["user-1"].Bio = "old bio"
	svc := NewService(repo)

	newName := "renamed"
	updated, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileRequest{
		Username: &newName,
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Username != "renamed" {
		t.Fatalf("username = %q, want renamed", updated.Username)
	}
	if updated.Bio != "old bio" {
		t.Fatalf("bio = %q, untouched fields must survive", updated.Bio)
	}
}

func TestService_UpdateProfileUnauthenticated(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepository())

	_, err := svc.UpdateProfile(context.Background(), "", UpdateProfileRequest{})
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}
