package handlers

import (
	"net/http"

	disputeRequest "github.com/LavaJover/shvark-refund-service/internal/delivery/http/dto/dispute/request"
	disputeResponse "github.com/LavaJover/shvark-refund-service/internal/delivery/http/dto/dispute/response"
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/dispute"
	disputedto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/dispute"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DisputeHandler struct {
	uc  dispute.DisputeUsecase
	log *zap.Logger
}

func NewDisputeHandler(uc dispute.DisputeUsecase, log *zap.Logger) *DisputeHandler {
	return &DisputeHandler{uc: uc, log: log}
}

func (h *DisputeHandler) Register(r gin.IRouter) {
	r.POST("/", h.FileDispute)
	r.GET("/:id", h.GetDispute)
	r.POST("/:id/start_review/", h.StartReview)
	r.POST("/:id/resolve/", h.Resolve)
	r.POST("/:id/acknowledge/", h.Acknowledge)
	r.POST("/:id/withdraw/", h.Withdraw)
	r.POST("/:id/add_evidence/", h.AddEvidence)
}

func (h *DisputeHandler) disputeResult(c *gin.Context, status int, d *domain.DisputeRequest, err error) {
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(status, disputeResponse.FromDispute(d))
}

func (h *DisputeHandler) FileDispute(c *gin.Context) {
	var req disputeRequest.FileDisputeRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	d, err := h.uc.FileDispute(c.Request.Context(), actorOf(c), &disputedto.FileDisputeInput{
		RefundID: req.RefundID,
		Reason:   req.Reason,
	})
	h.disputeResult(c, http.StatusCreated, d, err)
}

func (h *DisputeHandler) GetDispute(c *gin.Context) {
	d, err := h.uc.GetDispute(c.Request.Context(), actorOf(c), c.Param("id"))
	h.disputeResult(c, http.StatusOK, d, err)
}

func (h *DisputeHandler) StartReview(c *gin.Context) {
	d, err := h.uc.StartReview(c.Request.Context(), actorOf(c), c.Param("id"))
	h.disputeResult(c, http.StatusOK, d, err)
}

func (h *DisputeHandler) Resolve(c *gin.Context) {
	var req disputeRequest.ResolveDisputeRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	d, err := h.uc.Resolve(c.Request.Context(), actorOf(c), c.Param("id"), &disputedto.ResolveDisputeInput{
		Status:        req.Status,
		Outcome:       req.Outcome,
		AwardedAmount: req.AwardedAmount,
		AdminNote:     req.AdminNote,
	})
	h.disputeResult(c, http.StatusOK, d, err)
}

func (h *DisputeHandler) Acknowledge(c *gin.Context) {
	d, err := h.uc.Acknowledge(c.Request.Context(), actorOf(c), c.Param("id"))
	h.disputeResult(c, http.StatusOK, d, err)
}

func (h *DisputeHandler) Withdraw(c *gin.Context) {
	d, err := h.uc.Withdraw(c.Request.Context(), actorOf(c), c.Param("id"))
	h.disputeResult(c, http.StatusOK, d, err)
}

func (h *DisputeHandler) AddEvidence(c *gin.Context) {
	file, err := formFile(c, "file")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	evidence, err := h.uc.AddEvidence(c.Request.Context(), actorOf(c), c.Param("id"), &disputedto.AddEvidenceInput{
		File:  file,
		Notes: c.PostForm("notes"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, disputeResponse.FromEvidence(evidence))
}
