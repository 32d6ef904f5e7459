package service

import (
	"context"
	"testing"

	"chatlog/internal/model"
	"chatlog/internal/repository"
	"chatlog/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	var user *model.User
	if v := args.Get(0); v != nil {
		user = v.(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newAuthService(repo repository.UserRepository) (AuthService, *utils.JWTUtil) {
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	return NewAuthService(repo, jwtUtil), jwtUtil
}

func TestAuthService_Signup(t *testing.T) {
	repo := new(mockUserRepo)
	svc, jwtUtil := newAuthService(repo)

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 1
		}).Return(nil)

	user, token, err := svc.Signup(context.Background(), "alice", "password123", "alice@example.com", model.RoleResearcher)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, model.RoleResearcher, user.Role)
	assert.True(t, user.Enabled)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("password123", user.PasswordHash))

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, []string{model.RoleResearcher}, claims.Roles)

	repo.AssertExpectations(t)
}

func TestAuthService_Signup_InvalidRoleCoercedToUser(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	repo.On("ExistsByUsername", mock.Anything, "bob").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "bob@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleUser
	})).Return(nil)

	user, _, err := svc.Signup(context.Background(), "bob", "password123", "bob@example.com", "ROLE_WIZARD")

	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	user, token, err := svc.Signup(context.Background(), "alice", "password123", "new@example.com", model.RoleUser)

	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Nil(t, user)
	assert.Empty(t, token)
	// Nothing is persisted; the email check never runs either
	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	repo.On("ExistsByUsername", mock.Anything, "newuser").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

	user, token, err := svc.Signup(context.Background(), "newuser", "password123", "alice@example.com", model.RoleUser)

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Nil(t, user)
	assert.Empty(t, token)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_RacedInsertMapsConstraintViolation(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	// Both existence checks pass, but a concurrent signup wins the insert
	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateUsername)

	_, _, err := svc.Signup(context.Background(), "alice", "password123", "alice@example.com", model.RoleUser)

	assert.ErrorIs(t, err, ErrUsernameExists)
	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	repo := new(mockUserRepo)
	svc, jwtUtil := newAuthService(repo)

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID: 1, Username: "alice", Email: "alice@example.com",
		PasswordHash: hash, Role: model.RolePremium, Enabled: true,
	}, nil)

	user, token, err := svc.Login(context.Background(), "alice", "password123")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Contains(t, claims.Roles, model.RolePremium)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, _, err := svc.Login(context.Background(), "ghost", "password123")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	hash, _ := utils.HashPassword("password123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		Username: "alice", PasswordHash: hash, Role: model.RoleUser, Enabled: true,
	}, nil)

	_, _, err := svc.Login(context.Background(), "alice", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newAuthService(repo)

	hash, _ := utils.HashPassword("password123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		Username: "alice", PasswordHash: hash, Role: model.RoleUser, Enabled: false,
	}, nil)

	// Correct password, but the account is disabled
	_, _, err := svc.Login(context.Background(), "alice", "password123")

	assert.ErrorIs(t, err, ErrAccountDisabled)
}
