package disputedto

import (
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/shopspring/decimal"
)

type FileDisputeInput struct {
	RefundID string
	Reason   string
}

type AddEvidenceInput struct {
	File  domain.Attachment
	Notes string
}

// ResolveDisputeInput is the admin ruling. Status is approved or rejected.
type ResolveDisputeInput struct {
	Status        string
	Outcome       string
	AwardedAmount *decimal.Decimal
	AdminNote     string
}
