package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/houseofplants/houseofplants/internal/database"
	"github.com/houseofplants/houseofplants/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	return NewRepository(db)
}

func testUser() *entities.User {
	return &entities.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhash",
		Name:         "Alice",
		Borough:      "Brooklyn",
	}
}

func TestRepository_Create(t *testing.T) {
	repo := setupTestRepo(t)

	user := testUser()
	require.NoError(t, repo.Create(user))

	assert.NotZero(t, user.ID)
	assert.Equal(t, entities.DefaultPictureURL, user.PictureURL)
}

func TestRepository_Create_KeepsCustomPicture(t *testing.T) {
	repo := setupTestRepo(t)

	user := testUser()
	user.PictureURL = "/static/custom.png"
	require.NoError(t, repo.Create(user))

	fetched, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/static/custom.png", fetched.PictureURL)
}

func TestRepository_Create_UniqueConstraints(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Create(testUser()))

	sameUsername := testUser()
	sameUsername.Email = "other@example.com"
	err := repo.Create(sameUsername)
	require.Error(t, err)
	assert.True(t, database.IsUniqueConstraintViolation(err))

	sameEmail := testUser()
	sameEmail.Username = "alice2"
	err = repo.Create(sameEmail)
	require.Error(t, err)
	assert.True(t, database.IsUniqueConstraintViolation(err))
}

func TestRepository_GetByUsername(t *testing.T) {
	repo := setupTestRepo(t)
	created := testUser()
	require.NoError(t, repo.Create(created))

	user, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetByUsernameOrEmail(t *testing.T) {
	repo := setupTestRepo(t)
	created := testUser()
	require.NoError(t, repo.Create(created))

	byUsername, err := repo.GetByUsernameOrEmail("alice", "unused@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.GetByUsernameOrEmail("unused", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByUsernameOrEmail("unused", "unused@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_UpdateProfile(t *testing.T) {
	repo := setupTestRepo(t)
	created := testUser()
	require.NoError(t, repo.Create(created))

	lon, lat := -73.95, 40.68
	updated, err := repo.UpdateProfile(created.ID, "Alice B", "Queens", "", &lon, &lat)
	require.NoError(t, err)

	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "Queens", updated.Borough)
	require.NotNil(t, updated.Longitude)
	assert.Equal(t, lon, *updated.Longitude)
	// Empty picture URL leaves the existing one in place.
	assert.Equal(t, entities.DefaultPictureURL, updated.PictureURL)
	// Credentials are never touched by a profile update.
	assert.Equal(t, created.Username, updated.Username)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestRepository_UpdateProfile_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.UpdateProfile(999, "Ghost", "", "", nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Count(t *testing.T) {
	repo := setupTestRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Create(testUser()))

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
