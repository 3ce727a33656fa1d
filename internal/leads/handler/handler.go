package handler

import (
	"net/http"

	"geo-optimizer-server/internal/leads/processor"
	"geo-optimizer-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	leadProcessor processor.LeadProcessor
	logger        *observability.Logger
}

func New(leadProcessor processor.LeadProcessor, logger *observability.Logger) Handler {
	return Handler{leadProcessor: leadProcessor, logger: logger}
}

type SubmitLeadRequest struct {
	BusinessName string  `json:"business_name" binding:"required"`
	ContactName  string  `json:"contact_name" binding:"required"`
	ContactEmail string  `json:"contact_email" binding:"required,email"`
	Phone        *string `json:"phone"`
	WebsiteURL   string  `json:"website_url" binding:"required,url"`
	Message      *string `json:"message"`
}

func (h *Handler) HandleSubmitLead(c *gin.Context) {
	ctx := c.Request.Context()
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.leadProcessor.SubmitLead(ctx, processor.SubmitLeadRequest{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		WebsiteURL:   req.WebsiteURL,
		Message:      req.Message,
	})
	if err != nil {
		h.logger.Error(ctx, "failed to submit lead", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit lead"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}
