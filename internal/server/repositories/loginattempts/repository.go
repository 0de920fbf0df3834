package loginattempts

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attempt *models.LoginAttempt) error
}
