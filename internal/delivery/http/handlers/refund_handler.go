package handlers

import (
	"fmt"
	"net/http"

	refundRequest "github.com/LavaJover/shvark-refund-service/internal/delivery/http/dto/refund/request"
	refundResponse "github.com/LavaJover/shvark-refund-service/internal/delivery/http/dto/refund/response"
	"github.com/LavaJover/shvark-refund-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/refund"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RefundHandler struct {
	uc  refund.RefundUsecase
	log *zap.Logger
}

func NewRefundHandler(uc refund.RefundUsecase, log *zap.Logger) *RefundHandler {
	return &RefundHandler{uc: uc, log: log}
}

func (h *RefundHandler) Register(r gin.IRouter) {
	r.GET("/", h.ListRefunds)
	r.POST("/", h.CreateRefund)
	r.GET("/:id", h.GetRefund)
	r.POST("/:id/cancel/", h.CancelRefund)
	r.POST("/:id/seller_respond_to_refund/", h.SellerRespond)
	r.POST("/:id/respond_to_negotiation/", h.RespondToNegotiation)
	r.POST("/:id/add_proof/", h.AddProof)
	r.POST("/:id/process_refund/", h.ProcessRefund)
	r.POST("/:id/confirm_received/", h.ConfirmReceived)
	r.POST("/:id/set_return_address/", h.SetReturnAddress)
	r.POST("/:id/update_tracking/", h.UpdateTracking)
	r.POST("/:id/review_return/", h.ReviewReturn)
	r.POST("/:id/admin_update_refund/", h.AdminUpdateRefund)
}

// bindJSON wraps binding failures as validation errors.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func actorOf(c *gin.Context) *domain.Actor {
	actor, _ := middleware.GetActor(c)
	return actor
}

func (h *RefundHandler) refundResult(c *gin.Context, status int, refund *domain.Refund, err error) {
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(status, refundResponse.FromRefund(refund))
}

func (h *RefundHandler) CreateRefund(c *gin.Context) {
	var req refundRequest.CreateRefundRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	refund, err := h.uc.CreateRefund(c.Request.Context(), actorOf(c), &refunddto.CreateRefundInput{
		OrderID:                    req.OrderID,
		Reason:                     req.Reason,
		BuyerPreferredRefundMethod: req.BuyerPreferredRefundMethod,
		RefundType:                 req.RefundType,
	})
	h.refundResult(c, http.StatusCreated, refund, err)
}

func (h *RefundHandler) GetRefund(c *gin.Context) {
	details, err := h.uc.GetRefund(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, refundResponse.FromDetails(details))
}

func (h *RefundHandler) ListRefunds(c *gin.Context) {
	var q refundRequest.ListRefundsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.log, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	out, err := h.uc.ListRefunds(c.Request.Context(), actorOf(c), &refunddto.ListRefundsInput{
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp := refundResponse.ListRefundsResponse{
		Refunds: make([]refundResponse.RefundResponse, 0, len(out.Refunds)),
		Total:   out.Total,
		Page:    out.Page,
		Limit:   out.Limit,
	}
	for _, r := range out.Refunds {
		resp.Refunds = append(resp.Refunds, refundResponse.FromRefund(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RefundHandler) CancelRefund(c *gin.Context) {
	refund, err := h.uc.CancelRefund(c.Request.Context(), actorOf(c), c.Param("id"))
	h.refundResult(c, http.StatusOK, refund, err)
}

func (h *RefundHandler) SellerRespond(c *gin.Context) {
	var req refundRequest.SellerResponseRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	refund, err := h.uc.SellerRespond(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.SellerResponseInput{
		Action:              req.Action,
		CounterRefundMethod: req.CounterRefundMethod,
		CounterRefundType:   req.CounterRefundType,
		CounterNotes:        req.CounterNotes,
		FinalRefundMethod:   req.FinalRefundMethod,
	})
	h.refundResult(c, http.StatusOK, refund, err)
}

func (h *RefundHandler) RespondToNegotiation(c *gin.Context) {
	var req refundRequest.NegotiationResponseRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	refund, err := h.uc.RespondToNegotiation(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.NegotiationResponseInput{
		Action: req.Action,
		Reason: req.Reason,
	})
	h.refundResult(c, http.StatusOK, refund, err)
}

func (h *RefundHandler) AddProof(c *gin.Context) {
	file, err := formFile(c, "file_data")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	proof, err := h.uc.AddProof(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.AddProofInput{
		File:     file,
		FileType: c.PostForm("file_type"),
		Notes:    c.PostForm("notes"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, refundResponse.FromProof(proof))
}

func (h *RefundHandler) ProcessRefund(c *gin.Context) {
	var req refundRequest.ProcessRefundRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	refund, err := h.uc.ProcessRefund(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.ProcessRefundInput{
		FinalRefundMethod: req.FinalRefundMethod,
		SetStatus:         req.SetStatus,
	})
	h.refundResult(c, http.StatusOK, refund, err)
}

func (h *RefundHandler) ConfirmReceived(c *gin.Context) {
	refund, err := h.uc.ConfirmReceived(c.Request.Context(), actorOf(c), c.Param("id"))
	h.refundResult(c, http.StatusOK, refund, err)
}

func (h *RefundHandler) SetReturnAddress(c *gin.Context) {
	var req refundRequest.ReturnAddressRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	address, err := h.uc.SetReturnAddress(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.ReturnAddressInput{
		RecipientName: req.RecipientName,
		ContactNumber: req.ContactNumber,
		Country:       req.Country,
		Province:      req.Province,
		City:          req.City,
		Barangay:      req.Barangay,
		Street:        req.Street,
		ZipCode:       req.ZipCode,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, refundResponse.FromReturnAddress(address))
}

func (h *RefundHandler) UpdateTracking(c *gin.Context) {
	files, err := formFiles(c, "media_files")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	item, err := h.uc.UpdateTracking(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.UpdateTrackingInput{
		LogisticService: c.PostForm("logistic_service"),
		TrackingNumber:  c.PostForm("tracking_number"),
		MediaFiles:      files,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, refundResponse.FromReturnRequest(item))
}

func (h *RefundHandler) ReviewReturn(c *gin.Context) {
	var req refundRequest.ReviewReturnRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	item, err := h.uc.ReviewReturn(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.ReviewReturnInput{
		Action: req.Action,
		Notes:  req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, refundResponse.FromReturnRequest(item))
}

func (h *RefundHandler) AdminUpdateRefund(c *gin.Context) {
	var req refundRequest.AdminUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	refund, err := h.uc.AdminUpdateRefund(c.Request.Context(), actorOf(c), c.Param("id"), &refunddto.AdminUpdateInput{
		Status:              req.Status,
		RefundPaymentStatus: req.RefundPaymentStatus,
		FinalRefundMethod:   req.FinalRefundMethod,
		AdminNote:           req.AdminNote,
		AwardedAmount:       req.AwardedAmount,
	})
	h.refundResult(c, http.StatusOK, refund, err)
}
