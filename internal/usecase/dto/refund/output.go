package refunddto

import "github.com/LavaJover/shvark-refund-service/internal/domain"

type ListRefundsOutput struct {
	Refunds []*domain.Refund
	Total   int64
	Page    int
	Limit   int
}
