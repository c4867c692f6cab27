package repository

import (
	"context"

	"github.com/martijn/clientreg/internal/core/domain"
)

// ClientRepository is the only component that talks to the store. Methods that
// span several statements run in a single transaction.
type ClientRepository interface {
	ListWithPhones(ctx context.Context) ([]*domain.ClientWithPhones, error)
	List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, int, error)
	FindByID(ctx context.Context, id int64) (*domain.ClientWithPhones, error)
	Create(ctx context.Context, input *domain.ClientInput) (int64, error)
	Update(ctx context.Context, id int64, patch *domain.ClientPatch) (bool, error)
	AddPhones(ctx context.Context, id int64, phones []string) (int, error)
	DeletePhone(ctx context.Context, id int64, number string) (string, error)
	DeleteAllPhones(ctx context.Context, id int64) (*domain.PhoneDeletion, error)
	Delete(ctx context.Context, id int64) (*domain.DeletedClient, error)
}
