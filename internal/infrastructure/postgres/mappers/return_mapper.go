package mappers

import (
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
)

func ToDomainReturnRequest(model *models.ReturnRequestModel) *domain.ReturnRequestItem {
	item := &domain.ReturnRequestItem{
		ID:              model.ID,
		RefundID:        model.RefundID,
		ReturnMethod:    domain.RefundMethod(model.ReturnMethod),
		Status:          domain.ReturnStatus(model.Status),
		ReturnDeadline:  model.ReturnDeadline,
		LogisticService: model.LogisticService,
		TrackingNumber:  model.TrackingNumber,
		InspectionNotes: model.InspectionNotes,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	for i := range model.Media {
		item.Media = append(item.Media, ToDomainReturnMedia(&model.Media[i]))
	}
	return item
}

func ToGORMReturnRequest(item *domain.ReturnRequestItem) *models.ReturnRequestModel {
	return &models.ReturnRequestModel{
		ID:              item.ID,
		RefundID:        item.RefundID,
		ReturnMethod:    string(item.ReturnMethod),
		Status:          string(item.Status),
		ReturnDeadline:  item.ReturnDeadline,
		LogisticService: item.LogisticService,
		TrackingNumber:  item.TrackingNumber,
		InspectionNotes: item.InspectionNotes,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func ToDomainReturnMedia(model *models.ReturnMediaModel) *domain.ReturnMedia {
	return &domain.ReturnMedia{
		ID:              model.ID,
		ReturnRequestID: model.ReturnRequestID,
		FileURL:         model.FileURL,
		ObjectKey:       model.ObjectKey,
		ContentType:     model.ContentType,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMReturnMedia(media *domain.ReturnMedia) *models.ReturnMediaModel {
	return &models.ReturnMediaModel{
		ID:              media.ID,
		ReturnRequestID: media.ReturnRequestID,
		FileURL:         media.FileURL,
		ObjectKey:       media.ObjectKey,
		ContentType:     media.ContentType,
		CreatedAt:       media.CreatedAt,
	}
}

func ToDomainReturnAddress(model *models.ReturnAddressModel) *domain.ReturnAddress {
	return &domain.ReturnAddress{
		RefundID:      model.RefundID,
		RecipientName: model.RecipientName,
		ContactNumber: model.ContactNumber,
		Country:       model.Country,
		Province:      model.Province,
		City:          model.City,
		Barangay:      model.Barangay,
		Street:        model.Street,
		ZipCode:       model.ZipCode,
		Notes:         model.Notes,
		CreatedBy:     model.CreatedBy,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMReturnAddress(address *domain.ReturnAddress) *models.ReturnAddressModel {
	return &models.ReturnAddressModel{
		RefundID:      address.RefundID,
		RecipientName: address.RecipientName,
		ContactNumber: address.ContactNumber,
		Country:       address.Country,
		Province:      address.Province,
		City:          address.City,
		Barangay:      address.Barangay,
		Street:        address.Street,
		ZipCode:       address.ZipCode,
		Notes:         address.Notes,
		CreatedBy:     address.CreatedBy,
		CreatedAt:     address.CreatedAt,
		UpdatedAt:     address.UpdatedAt,
	}
}
