package services

import (
	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
)

// AuthorizeOwner allows an action on an owned document only when the acting
// user is present and is the owner. It is consulted before every mutating
// post or comment operation.
func AuthorizeOwner(acting *models.User, ownerID uint) error {
	if acting == nil || acting.ID != ownerID {
		return apperr.ErrNotOwner
	}
	return nil
}
