package response

import (
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/shopspring/decimal"
)

type EvidenceResponse struct {
	ID          string    `json:"id"`
	DisputeID   string    `json:"dispute_id"`
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	UploadedBy  int64     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type DisputeResponse struct {
	ID                   string             `json:"id"`
	RefundID             string             `json:"refund_id"`
	RequestedBy          int64              `json:"requested_by"`
	Reason               string             `json:"reason"`
	Status               string             `json:"status"`
	ProcessedBy          *int64             `json:"processed_by,omitempty"`
	ResolvedAt           *time.Time         `json:"resolved_at,omitempty"`
	AdminNote            string             `json:"admin_note,omitempty"`
	Outcome              string             `json:"outcome,omitempty"`
	AwardedAmount        *decimal.Decimal   `json:"awarded_amount,omitempty"`
	RefundStatusOriginal string             `json:"refund_status_original,omitempty"`
	Evidence             []EvidenceResponse `json:"evidence"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

func FromEvidence(e *domain.DisputeEvidence) EvidenceResponse {
	return EvidenceResponse{
		ID:          e.ID,
		DisputeID:   e.DisputeID,
		FileURL:     e.FileURL,
		ContentType: e.ContentType,
		Notes:       e.Notes,
		UploadedBy:  e.UploadedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func FromDispute(d *domain.DisputeRequest) DisputeResponse {
	evidence := make([]EvidenceResponse, 0, len(d.Evidence))
	for _, e := range d.Evidence {
		evidence = append(evidence, FromEvidence(e))
	}
	return DisputeResponse{
		ID:                   d.ID,
		RefundID:             d.RefundID,
		RequestedBy:          d.RequestedBy,
		Reason:               d.Reason,
		Status:               string(d.Status),
		ProcessedBy:          d.ProcessedBy,
		ResolvedAt:           d.ResolvedAt,
		AdminNote:            d.AdminNote,
		Outcome:              string(d.Outcome),
		AwardedAmount:        d.AwardedAmount,
		RefundStatusOriginal: string(d.RefundStatusOriginal),
		Evidence:             evidence,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}
