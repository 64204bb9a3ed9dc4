package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave_HashesPlainPassword(t *testing.T) {
	user := &User{Email: "ivan@example.com", Password: "secret123"}

	err := user.BeforeSave(nil)

	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$2a$"), "пароль должен стать bcrypt-хешем")
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_BeforeSave_SkipsAlreadyHashed(t *testing.T) {
	user := &User{Email: "ivan@example.com", Password: "secret123"}
	require.NoError(t, user.BeforeSave(nil))
	hashed := user.Password

	// Повторное сохранение не должно перехешировать хеш
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, hashed, user.Password)
}
