package mappers

import (
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
)

func ToDomainRefund(model *models.RefundModel) *domain.Refund {
	return &domain.Refund{
		ID:                         model.ID,
		OrderID:                    model.OrderID,
		RequestedBy:                model.RequestedBy,
		Reason:                     model.Reason,
		BuyerPreferredRefundMethod: domain.RefundMethod(model.BuyerPreferredRefundMethod),
		RefundType:                 domain.RefundType(model.RefundType),
		Status:                     domain.RefundStatus(model.Status),
		RefundPaymentStatus:        domain.PaymentStatus(model.RefundPaymentStatus),
		FinalRefundMethod:          domain.RefundMethod(model.FinalRefundMethod),
		AwardedAmount:              fromNullDecimal(model.AwardedAmount),
		AdminNote:                  model.AdminNote,
		ApprovedAt:                 model.ApprovedAt,
		ReturnDeadline:             model.ReturnDeadline,
		Version:                    model.Version,
		CreatedAt:                  model.CreatedAt,
		UpdatedAt:                  model.UpdatedAt,
	}
}

func ToGORMRefund(refund *domain.Refund) *models.RefundModel {
	return &models.RefundModel{
		ID:                         refund.ID,
		OrderID:                    refund.OrderID,
		RequestedBy:                refund.RequestedBy,
		Reason:                     refund.Reason,
		BuyerPreferredRefundMethod: string(refund.BuyerPreferredRefundMethod),
		RefundType:                 string(refund.RefundType),
		Status:                     string(refund.Status),
		RefundPaymentStatus:        string(refund.RefundPaymentStatus),
		FinalRefundMethod:          string(refund.FinalRefundMethod),
		AwardedAmount:              toNullDecimal(refund.AwardedAmount),
		AdminNote:                  refund.AdminNote,
		ApprovedAt:                 refund.ApprovedAt,
		ReturnDeadline:             refund.ReturnDeadline,
		Version:                    refund.Version,
		CreatedAt:                  refund.CreatedAt,
		UpdatedAt:                  refund.UpdatedAt,
	}
}

func ToDomainCounterOffer(model *models.CounterOfferModel) *domain.CounterRefundRequest {
	return &domain.CounterRefundRequest{
		ID:                  model.ID,
		RefundID:            model.RefundID,
		CounterRefundMethod: domain.RefundMethod(model.CounterRefundMethod),
		CounterRefundType:   domain.RefundType(model.CounterRefundType),
		Notes:               model.Notes,
		Status:              domain.CounterOfferStatus(model.Status),
		ResponseReason:      model.ResponseReason,
		RequestedBy:         model.RequestedBy,
		RequestedAt:         model.RequestedAt,
		RespondedAt:         model.RespondedAt,
	}
}

func ToGORMCounterOffer(offer *domain.CounterRefundRequest) *models.CounterOfferModel {
	return &models.CounterOfferModel{
		ID:                  offer.ID,
		RefundID:            offer.RefundID,
		CounterRefundMethod: string(offer.CounterRefundMethod),
		CounterRefundType:   string(offer.CounterRefundType),
		Notes:               offer.Notes,
		Status:              string(offer.Status),
		ResponseReason:      offer.ResponseReason,
		RequestedBy:         offer.RequestedBy,
		RequestedAt:         offer.RequestedAt,
		RespondedAt:         offer.RespondedAt,
	}
}

func ToDomainProof(model *models.RefundProofModel) *domain.RefundProof {
	return &domain.RefundProof{
		ID:         model.ID,
		RefundID:   model.RefundID,
		FileType:   model.FileType,
		FileURL:    model.FileURL,
		ObjectKey:  model.ObjectKey,
		Notes:      model.Notes,
		UploadedBy: model.UploadedBy,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMProof(proof *domain.RefundProof) *models.RefundProofModel {
	return &models.RefundProofModel{
		ID:         proof.ID,
		RefundID:   proof.RefundID,
		FileType:   proof.FileType,
		FileURL:    proof.FileURL,
		ObjectKey:  proof.ObjectKey,
		Notes:      proof.Notes,
		UploadedBy: proof.UploadedBy,
		CreatedAt:  proof.CreatedAt,
	}
}
