package service_test

import (
	"context"
	"testing"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"
	"monggle/fitlog/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

// fakeUserRepo is an in-memory UserRepository keyed by id, with the same
// uniqueness guarantee on email the mongo index provides.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.FavoriteExercises = append([]string(nil), u.FavoriteExercises...)
	return &c
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := cloneUser(user)
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, id primitive.ObjectID, tokenHash string, exp time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetTokenHash = tokenHash
	u.ResetTokenExp = &exp
	return nil
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash == tokenHash && tokenHash != "" && u.ResetTokenExp != nil && u.ResetTokenExp.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = ""
	u.ResetTokenExp = nil
	return nil
}

func (r *fakeUserRepo) SetGoalWeight(_ context.Context, id primitive.ObjectID, goalWeight *float64) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.GoalWeight = goalWeight
	return nil
}

func (r *fakeUserRepo) ReplaceFavorites(_ context.Context, id primitive.ObjectID, slugs []string) ([]string, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.FavoriteExercises = append([]string(nil), slugs...)
	return append([]string(nil), u.FavoriteExercises...), nil
}

func (r *fakeUserRepo) AddFavorite(_ context.Context, id primitive.ObjectID, slug string) ([]string, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, fav := range u.FavoriteExercises {
		if fav == slug {
			return append([]string(nil), u.FavoriteExercises...), nil
		}
	}
	u.FavoriteExercises = append(u.FavoriteExercises, slug)
	return append([]string(nil), u.FavoriteExercises...), nil
}

func (r *fakeUserRepo) RemoveFavorite(_ context.Context, id primitive.ObjectID, slug string) ([]string, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := u.FavoriteExercises[:0]
	for _, fav := range u.FavoriteExercises {
		if fav != slug {
			kept = append(kept, fav)
		}
	}
	u.FavoriteExercises = kept
	return append([]string(nil), u.FavoriteExercises...), nil
}

// fakeMailer records the reset tokens it was asked to send.
type fakeMailer struct {
	sentTo     []string
	sentTokens []string
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	m.sentTo = append(m.sentTo, to)
	m.sentTokens = append(m.sentTokens, token)
	return nil
}

func newAuthFixture() (*fakeUserRepo, *fakeMailer, service.AuthService) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	return repo, mailer, service.NewAuthService(repo, mailer, testJWTSecret, time.Hour)
}

func TestRegister(t *testing.T) {
	_, _, svc := newAuthFixture()

	token, user, err := svc.Register(context.Background(), "Alex@Example.COM ", "hunter22", gofakeit.Name())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.ID.IsZero())

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["uid"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "alex@example.com", "hunter22", "alex")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "ALEX@example.com", "other", "impostor")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo, _, svc := newAuthFixture()

	_, registered, err := svc.Register(context.Background(), "alex@example.com", "hunter22", "alex")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "alex@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// The stored hash is bcrypt, never the raw password.
	stored := repo.users[registered.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))

	_, _, err = svc.Login(context.Background(), "alex@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestPasswordResetFlow(t *testing.T) {
	repo, mailer, svc := newAuthFixture()
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, "alex@example.com", "hunter22", "alex")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "alex@example.com"))
	require.Len(t, mailer.sentTokens, 1)
	assert.Equal(t, []string{"alex@example.com"}, mailer.sentTo)

	rawToken := mailer.sentTokens[0]
	// Only a digest lands in storage.
	assert.NotEqual(t, rawToken, repo.users[registered.ID].ResetTokenHash)
	assert.NotEmpty(t, repo.users[registered.ID].ResetTokenHash)

	require.NoError(t, svc.ResetPassword(ctx, rawToken, "new-password"))

	_, _, err = svc.Login(ctx, "alex@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "alex@example.com", "new-password")
	assert.NoError(t, err)

	// The token is single-use.
	err = svc.ResetPassword(ctx, rawToken, "another-password")
	assert.ErrorIs(t, err, service.ErrResetTokenInvalid)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	_, mailer, svc := newAuthFixture()

	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, mailer.sentTokens)
}

func TestResetPassword_BadToken(t *testing.T) {
	_, _, svc := newAuthFixture()

	err := svc.ResetPassword(context.Background(), "not-a-real-token", "pw")
	assert.ErrorIs(t, err, service.ErrResetTokenInvalid)

	err = svc.ResetPassword(context.Background(), "", "pw")
	assert.ErrorIs(t, err, service.ErrResetTokenInvalid)
}
