package storage

import (
	"context"

	"github.com/iudanet/hearthabitz/internal/models"
)

// DataStorage defines interface for arbitrary user payload persistence
type DataStorage interface {
	// SaveUserData inserts a new payload record
	SaveUserData(ctx context.Context, data *models.UserData) error
}
