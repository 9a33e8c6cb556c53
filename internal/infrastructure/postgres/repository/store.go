package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"gorm.io/gorm"
)

// DefaultStore groups the repositories so a workflow step can run all of
// them inside one transaction.
type DefaultStore struct {
	*DefaultRefundRepository
	*DefaultCounterOfferRepository
	*DefaultProofRepository
	*DefaultReturnRepository
	*DefaultDisputeRepository
	*DefaultDirectoryRepository
	db *gorm.DB
}

func NewDefaultStore(db *gorm.DB) *DefaultStore {
	return &DefaultStore{
		DefaultRefundRepository:       NewDefaultRefundRepository(db),
		DefaultCounterOfferRepository: NewDefaultCounterOfferRepository(db),
		DefaultProofRepository:        NewDefaultProofRepository(db),
		DefaultReturnRepository:       NewDefaultReturnRepository(db),
		DefaultDisputeRepository:      NewDefaultDisputeRepository(db),
		DefaultDirectoryRepository:    NewDefaultDirectoryRepository(db),
		db:                            db,
	}
}

func (s *DefaultStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewDefaultStore(tx))
	})
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return err
}
