package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
)

// Resolver turns an identity header value into a known user.
type Resolver struct {
	users domain.DirectoryRepository
}

func NewResolver(users domain.DirectoryRepository) *Resolver {
	return &Resolver{users: users}
}

func (r *Resolver) Resolve(ctx context.Context, raw string) (*domain.User, error) {
	ref, err := domain.ParseActorRef(raw)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	switch ref.Kind {
	case domain.ActorRefID:
		user, err = r.users.GetUserByID(ctx, ref.ID)
	case domain.ActorRefUUID:
		user, err = r.users.GetUserByUUID(ctx, ref.UUID)
	default:
		user, err = r.users.GetUserByUsername(ctx, ref.Username)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrActorNotFound, ref)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RequireStaff resolves the caller and checks the admin or moderator flag.
func (r *Resolver) RequireStaff(ctx context.Context, raw string) (*domain.User, error) {
	user, err := r.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}
	if !user.Staff() {
		return nil, fmt.Errorf("%w: user %d is not an admin", domain.ErrForbidden, user.ID)
	}
	return user, nil
}
