package repository

import (
	"testing"

	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewUserRepository(testDB)
	return testDB, repo
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
		Role:         model.RoleUser,
	}

	err := repo.Create(user)
	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(user))

	duplicate := &model.User{
		Email:        "test@example.com",
		PasswordHash: "otherpassword",
		Name:         "Other User",
	}
	err := repo.Create(duplicate)
	assert.Error(t, err)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindModerators(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	users := []model.User{
		{Email: "user@example.com", PasswordHash: "h", Name: "Plain User", Role: model.RoleUser},
		{Email: "mod@example.com", PasswordHash: "h", Name: "Moderator", Role: model.RoleModerator},
		{Email: "admin@example.com", PasswordHash: "h", Name: "Admin", Role: model.RoleAdmin},
	}
	for i := range users {
		require.NoError(t, repo.Create(&users[i]))
	}

	moderators, err := repo.FindModerators()
	assert.NoError(t, err)
	assert.Len(t, moderators, 2)
	for _, m := range moderators {
		assert.True(t, m.Role.IsModerator())
	}
}

func TestUserRepository_Update(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(user))

	user.Name = "Renamed User"
	user.Wishlist = []string{"wireless-headphones"}
	err := repo.Update(user)
	assert.NoError(t, err)

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", found.Name)
	require.Len(t, found.Wishlist, 1)
	assert.Equal(t, "wireless-headphones", found.Wishlist[0])
}
