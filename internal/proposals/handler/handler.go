package handler

import (
	"errors"
	"net/http"

	"geo-optimizer-server/internal/apierrors"
	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/proposals/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	proposalProcessor processor.ProposalProcessor
	logger            *observability.Logger
}

func New(proposalProcessor processor.ProposalProcessor, logger *observability.Logger) Handler {
	return Handler{proposalProcessor: proposalProcessor, logger: logger}
}

type SendProposalRequest struct {
	ServiceIDs    []uuid.UUID `json:"service_ids" binding:"required"`
	CustomMessage *string     `json:"custom_message"`
	ProposalType  string      `json:"proposal_type" binding:"required"`
}

func (h *Handler) HandleSendProposal(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "invalid customer id")
		return
	}

	var req SendProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	resp, err := h.proposalProcessor.SendProposal(ctx, customerID, processor.SendProposalRequest{
		ServiceIDs:    req.ServiceIDs,
		CustomMessage: req.CustomMessage,
		ProposalType:  req.ProposalType,
	})
	if err != nil {
		switch {
		case errors.Is(err, processor.ErrCustomerNotFound):
			apierrors.NotFound(c, "customer not found")
		case errors.Is(err, processor.ErrNoServicesSelected),
			errors.Is(err, processor.ErrNoActiveServices),
			errors.Is(err, processor.ErrInvalidProposalType):
			apierrors.BadRequest(c, "INVALID_PROPOSAL", err.Error())
		case errors.Is(err, processor.ErrEmailSendFailed):
			apierrors.BadGateway(c, "failed to send proposal email")
		default:
			apierrors.InternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) HandleGetProposals(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "invalid customer id")
		return
	}

	proposals, err := h.proposalProcessor.GetProposals(ctx, customerID)
	if err != nil {
		if errors.Is(err, processor.ErrCustomerNotFound) {
			apierrors.NotFound(c, "customer not found")
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}
