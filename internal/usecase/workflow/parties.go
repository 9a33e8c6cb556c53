package workflow

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
)

type Role int

const (
	RoleBuyer Role = 1 << iota
	RoleSeller
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "buyer"
	case RoleSeller:
		return "seller"
	case RoleAdmin:
		return "admin"
	}
	return "party"
}

// Parties are the order and shop a refund is negotiated between.
type Parties struct {
	Order *domain.Order
	Shop  *domain.Shop
}

func LoadParties(ctx context.Context, dir domain.DirectoryRepository, refund *domain.Refund) (*Parties, error) {
	order, err := dir.GetOrderByID(ctx, refund.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order of refund %s: %w", refund.ID, err)
	}
	shop, err := dir.GetShopByID(ctx, order.ShopID)
	if err != nil {
		return nil, fmt.Errorf("shop of order %s: %w", order.ID, err)
	}
	return &Parties{Order: order, Shop: shop}, nil
}

// RolesOf reports every role the actor holds on the refund.
func (p *Parties) RolesOf(actor *domain.Actor, refund *domain.Refund) Role {
	var roles Role
	if actor == nil || actor.User == nil {
		return roles
	}
	if refund.RequestedBy == actor.User.ID {
		roles |= RoleBuyer
	}
	if p.Shop.OwnerID == actor.User.ID && (actor.ShopID == nil || *actor.ShopID == p.Shop.ID) {
		roles |= RoleSeller
	}
	if actor.User.Staff() {
		roles |= RoleAdmin
	}
	return roles
}

// Require fails with ErrForbidden unless the actor holds one of the roles.
func (s *Step) Require(roles Role) error {
	if s.Parties.RolesOf(s.Actor, s.Refund)&roles != 0 {
		return nil
	}
	return fmt.Errorf("%w: user %d may not act as %s on refund %s",
		domain.ErrForbidden, s.Actor.UserID(), describe(roles), s.Refund.ID)
}

func describe(roles Role) string {
	out := ""
	for _, r := range []Role{RoleBuyer, RoleSeller, RoleAdmin} {
		if roles&r == 0 {
			continue
		}
		if out != "" {
			out += " or "
		}
		out += r.String()
	}
	return out
}
