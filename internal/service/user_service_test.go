package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synergym-api/internal/domain"
	"synergym-api/pkg/utils"
)

func TestUserService_Register(t *testing.T) {
	s := newMemStore()
	svc := NewUserService(s, nil)
	ctx := context.Background()

	v, err := svc.Register(ctx, RegisterInput{Email: " TestUser@Test.com ", Password: "test123", Goal: "Health Management"})
	require.NoError(t, err)
	assert.Equal(t, "testuser@test.com", v.Email)
	assert.Equal(t, "testuser", v.Name)
	assert.Equal(t, "Health Management", v.Goal)

	stored := s.d.users[v.ID]
	assert.True(t, utils.CheckPassword("test123", stored.PasswordHash))

	_, err = svc.Register(ctx, RegisterInput{Email: "testuser@test.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Register(ctx, RegisterInput{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestUserService_GetAndList(t *testing.T) {
	s := newMemStore()
	svc := NewUserService(s, nil)
	ctx := context.Background()
	id := s.addUser("a@test.com")
	s.addUser("b@test.com")

	v, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", v.Email)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, total, err := svc.List(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)
}
