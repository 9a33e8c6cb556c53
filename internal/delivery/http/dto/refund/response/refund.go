package response

import (
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/shopspring/decimal"
)

type RefundResponse struct {
	ID                         string           `json:"id"`
	OrderID                    string           `json:"order_id"`
	RequestedBy                int64            `json:"requested_by"`
	Reason                     string           `json:"reason"`
	BuyerPreferredRefundMethod string           `json:"buyer_preferred_refund_method"`
	RefundType                 string           `json:"refund_type"`
	Status                     string           `json:"status"`
	RefundPaymentStatus        string           `json:"refund_payment_status"`
	FinalRefundMethod          string           `json:"final_refund_method,omitempty"`
	AwardedAmount              *decimal.Decimal `json:"awarded_amount,omitempty"`
	AdminNote                  string           `json:"admin_note,omitempty"`
	ApprovedAt                 *time.Time       `json:"approved_at,omitempty"`
	ReturnDeadline             *time.Time       `json:"return_deadline,omitempty"`
	CreatedAt                  time.Time        `json:"created_at"`
	UpdatedAt                  time.Time        `json:"updated_at"`
}

type CounterOfferResponse struct {
	ID                  string     `json:"id"`
	CounterRefundMethod string     `json:"counter_refund_method,omitempty"`
	CounterRefundType   string     `json:"counter_refund_type,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Status              string     `json:"status"`
	ResponseReason      string     `json:"response_reason,omitempty"`
	RequestedBy         int64      `json:"requested_by"`
	RequestedAt         time.Time  `json:"requested_at"`
	RespondedAt         *time.Time `json:"responded_at,omitempty"`
}

type ProofResponse struct {
	ID         string    `json:"id"`
	RefundID   string    `json:"refund_id"`
	FileType   string    `json:"file_type,omitempty"`
	FileURL    string    `json:"file_url"`
	Notes      string    `json:"notes,omitempty"`
	UploadedBy int64     `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReturnMediaResponse struct {
	ID          string `json:"id"`
	FileURL     string `json:"file_url"`
	ContentType string `json:"content_type,omitempty"`
}

type ReturnRequestResponse struct {
	ID              string                `json:"id"`
	RefundID        string                `json:"refund_id"`
	ReturnMethod    string                `json:"return_method,omitempty"`
	Status          string                `json:"status"`
	ReturnDeadline  time.Time             `json:"return_deadline"`
	LogisticService string                `json:"logistic_service,omitempty"`
	TrackingNumber  string                `json:"tracking_number,omitempty"`
	InspectionNotes string                `json:"inspection_notes,omitempty"`
	Media           []ReturnMediaResponse `json:"media"`
}

type ReturnAddressResponse struct {
	RefundID      string `json:"refund_id"`
	RecipientName string `json:"recipient_name"`
	ContactNumber string `json:"contact_number"`
	Country       string `json:"country,omitempty"`
	Province      string `json:"province,omitempty"`
	City          string `json:"city,omitempty"`
	Barangay      string `json:"barangay,omitempty"`
	Street        string `json:"street,omitempty"`
	ZipCode       string `json:"zip_code,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type RefundDetailsResponse struct {
	RefundResponse
	CounterOffers []CounterOfferResponse `json:"counter_offers"`
	Proofs        []ProofResponse        `json:"proofs"`
	ReturnRequest *ReturnRequestResponse `json:"return_request"`
	ReturnAddress *ReturnAddressResponse `json:"return_address"`
	DisputeID     string                 `json:"dispute_id,omitempty"`
	DisputeStatus string                 `json:"dispute_status,omitempty"`
}

type ListRefundsResponse struct {
	Refunds []RefundResponse `json:"refunds"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

func FromRefund(r *domain.Refund) RefundResponse {
	return RefundResponse{
		ID:                         r.ID,
		OrderID:                    r.OrderID,
		RequestedBy:                r.RequestedBy,
		Reason:                     r.Reason,
		BuyerPreferredRefundMethod: string(r.BuyerPreferredRefundMethod),
		RefundType:                 string(r.RefundType),
		Status:                     string(r.Status),
		RefundPaymentStatus:        string(r.RefundPaymentStatus),
		FinalRefundMethod:          string(r.FinalRefundMethod),
		AwardedAmount:              r.AwardedAmount,
		AdminNote:                  r.AdminNote,
		ApprovedAt:                 r.ApprovedAt,
		ReturnDeadline:             r.ReturnDeadline,
		CreatedAt:                  r.CreatedAt,
		UpdatedAt:                  r.UpdatedAt,
	}
}

func FromProof(p *domain.RefundProof) ProofResponse {
	return ProofResponse{
		ID:         p.ID,
		RefundID:   p.RefundID,
		FileType:   p.FileType,
		FileURL:    p.FileURL,
		Notes:      p.Notes,
		UploadedBy: p.UploadedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func FromReturnRequest(rr *domain.ReturnRequestItem) *ReturnRequestResponse {
	if rr == nil {
		return nil
	}
	media := make([]ReturnMediaResponse, 0, len(rr.Media))
	for _, m := range rr.Media {
		media = append(media, ReturnMediaResponse{ID: m.ID, FileURL: m.FileURL, ContentType: m.ContentType})
	}
	return &ReturnRequestResponse{
		ID:              rr.ID,
		RefundID:        rr.RefundID,
		ReturnMethod:    string(rr.ReturnMethod),
		Status:          string(rr.Status),
		ReturnDeadline:  rr.ReturnDeadline,
		LogisticService: rr.LogisticService,
		TrackingNumber:  rr.TrackingNumber,
		InspectionNotes: rr.InspectionNotes,
		Media:           media,
	}
}

func FromReturnAddress(a *domain.ReturnAddress) *ReturnAddressResponse {
	if a == nil {
		return nil
	}
	return &ReturnAddressResponse{
		RefundID:      a.RefundID,
		RecipientName: a.RecipientName,
		ContactNumber: a.ContactNumber,
		Country:       a.Country,
		Province:      a.Province,
		City:          a.City,
		Barangay:      a.Barangay,
		Street:        a.Street,
		ZipCode:       a.ZipCode,
		Notes:         a.Notes,
	}
}

func FromDetails(d *domain.RefundDetails) RefundDetailsResponse {
	resp := RefundDetailsResponse{
		RefundResponse: FromRefund(d.Refund),
		CounterOffers:  make([]CounterOfferResponse, 0, len(d.CounterOffers)),
		Proofs:         make([]ProofResponse, 0, len(d.Proofs)),
		ReturnRequest:  FromReturnRequest(d.ReturnRequest),
		ReturnAddress:  FromReturnAddress(d.ReturnAddress),
	}
	for _, o := range d.CounterOffers {
		resp.CounterOffers = append(resp.CounterOffers, CounterOfferResponse{
			ID:                  o.ID,
			CounterRefundMethod: string(o.CounterRefundMethod),
			CounterRefundType:   string(o.CounterRefundType),
			Notes:               o.Notes,
			Status:              string(o.Status),
			ResponseReason:      o.ResponseReason,
			RequestedBy:         o.RequestedBy,
			RequestedAt:         o.RequestedAt,
			RespondedAt:         o.RespondedAt,
		})
	}
	for _, p := range d.Proofs {
		resp.Proofs = append(resp.Proofs, FromProof(p))
	}
	if d.Dispute != nil {
		resp.DisputeID = d.Dispute.ID
		resp.DisputeStatus = string(d.Dispute.Status)
	}
	return resp
}
