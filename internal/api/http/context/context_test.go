package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/storefront/internal/model"
)

func TestManager_SetUserToContext(t *testing.T) {
	t.Parallel()

	m := NewManager()

	_, ok := m.GetUserFromContext(context.Background())
	assert.False(t, ok)

	user := model.User{ID: uuid.New(), Email: "ann@example.com"}
	ctx := m.SetUserToContext(context.Background(), user)

	got, ok := m.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}
