package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/houseofplants/houseofplants/internal/config"
	"github.com/houseofplants/houseofplants/internal/database/users"
	"github.com/houseofplants/houseofplants/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *users.Repository) {
	t.Helper()

	service, repo, _ := setupTestServiceDB(t)
	return service, repo
}

func setupTestServiceDB(t *testing.T) (*Service, *users.Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.User{}))

	repo := users.NewRepository(db)
	return NewService(repo, config.Auth{BcryptCost: 4}), repo, db
}

func validSignup() SignupInput {
	return SignupInput{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "longenough",
		Borough:  "Brooklyn",
	}
}

func TestService_Signup(t *testing.T) {
	service, _ := setupTestService(t)

	user, err := service.Signup(validSignup())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "longenough", user.PasswordHash)
}

func TestService_Signup_DuplicateUsername(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.Signup(validSignup())
	require.NoError(t, err)

	input := validSignup()
	input.Email = "other@example.com"
	_, err = service.Signup(input)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.Signup(validSignup())
	require.NoError(t, err)

	input := validSignup()
	input.Username = "alice2"
	_, err = service.Signup(input)
	assert.ErrorIs(t, err, ErrUserExists)
}

// A signup that slips past the uniqueness pre-check still loses to the
// database's unique index and surfaces as the same conflict. A soft-deleted
// account reproduces this deterministically: the pre-check's lookup misses
// it while its username still occupies the index.
func TestService_Signup_ConstraintRaceMapsToUserExists(t *testing.T) {
	service, _, db := setupTestServiceDB(t)

	created, err := service.Signup(validSignup())
	require.NoError(t, err)
	require.NoError(t, db.Delete(&entities.User{}, created.ID).Error)

	_, err = service.Signup(validSignup())
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Signup_ShortPassword(t *testing.T) {
	service, repo := setupTestService(t)

	input := validSignup()
	input.Password = "short"
	_, err := service.Signup(input)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "short-password signup must not create a user")
}

func TestService_Authenticate(t *testing.T) {
	service, _ := setupTestService(t)

	created, err := service.Signup(validSignup())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "correct credentials",
			username: "alice",
			password: "longenough",
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongwrong",
			wantErr:  ErrWrongCredentials,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "longenough",
			wantErr:  ErrWrongCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Authenticate(tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, created.ID, user.ID)
		})
	}
}

// An unknown username and a wrong password must produce the same error, so
// the login response cannot be used to probe which accounts exist.
func TestService_Authenticate_IndistinguishableFailures(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.Signup(validSignup())
	require.NoError(t, err)

	_, errUnknown := service.Authenticate("nobody", "longenough")
	_, errWrongPass := service.Authenticate("alice", "wrongwrong")

	assert.ErrorIs(t, errUnknown, ErrWrongCredentials)
	assert.ErrorIs(t, errWrongPass, ErrWrongCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}
