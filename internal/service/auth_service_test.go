package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mixaura/agency-backend/internal/models"
	"github.com/mixaura/agency-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, ok := m.sessions[refreshToken]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.sessions, refreshToken)
	return nil
}

func newTestAuthService(repo *mockAuthRepository, roleRepo *mockRoleRepository, adminEmail string) *AuthService {
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthService(repo, NewRoleService(roleRepo), tokenManager, adminEmail)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo, newMockRoleRepository(), "admin@mixaura.com")

	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{
		Email:    "client@example.com",
		Password: "Password123",
	}, map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}

	loginRes, err := svc.Login(ctx, LoginInput{
		Email:    "client@example.com",
		Password: "Password123",
	}, nil)
	if err != nil {
		t.Fatalf("login вернул ошибку: %v", err)
	}

	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("ожидался access токен")
	}
}

func TestAuthService_RegisterAdminEmailGetsMarker(t *testing.T) {
	repo := newMockAuthRepository()
	roleRepo := newMockRoleRepository()
	svc := newTestAuthService(repo, roleRepo, "admin@mixaura.com")

	res, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Admin@MixAura.com",
		Password: "Password123",
	}, nil)
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if !roleRepo.markers[res.User.ID] {
		t.Fatalf("аккаунт агентства должен получить маркер роли при регистрации")
	}
}

func TestAuthService_RegisterPlainEmailNoMarker(t *testing.T) {
	repo := newMockAuthRepository()
	roleRepo := newMockRoleRepository()
	svc := newTestAuthService(repo, roleRepo, "admin@mixaura.com")

	res, err := svc.Register(context.Background(), RegisterInput{
		Email:    "visitor@example.com",
		Password: "Password123",
	}, nil)
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if roleRepo.markers[res.User.ID] {
		t.Fatalf("обычный аккаунт не должен получать маркер роли")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo, newMockRoleRepository(), "")

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "Password123"}, nil); err != nil {
		t.Fatalf("первая регистрация вернула ошибку: %v", err)
	}

	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "Password123"}, nil); err == nil {
		t.Fatalf("повторная регистрация должна вернуть ошибку")
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo, newMockRoleRepository(), "")

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Password123"}, nil); err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "WrongPass1"}, nil); err == nil {
		t.Fatalf("логин с неверным паролем должен вернуть ошибку")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := NewAuthService(repo, NewRoleService(newMockRoleRepository()), tokenManager, "")

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access должен истекать раньше refresh")
	}

	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := svc.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}

	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newMockAuthRepository()
	svc := newTestAuthService(repo, newMockRoleRepository(), "")

	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Password123"}, nil)
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if err := svc.Logout(ctx, res.TokenPair.RefreshToken); err != nil {
		t.Fatalf("logout вернул ошибку: %v", err)
	}

	if len(repo.sessions) != 0 {
		t.Fatalf("сессия должна быть удалена")
	}

	if err := svc.Logout(ctx, res.TokenPair.RefreshToken); err == nil {
		t.Fatalf("повторный logout должен вернуть ошибку")
	}
}
