package services

import (
	"testing"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizeOwner(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}

	assert.NoError(t, AuthorizeOwner(owner, 1))
	assert.ErrorIs(t, AuthorizeOwner(other, 1), apperr.ErrNotOwner)
	assert.ErrorIs(t, AuthorizeOwner(nil, 1), apperr.ErrNotOwner)
}
