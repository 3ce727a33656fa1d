package handler

import (
	"errors"
	"net/http"
	"strconv"

	"geo-optimizer-server/internal/customers/processor"
	"geo-optimizer-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	customerProcessor processor.CustomerProcessor
	logger            *observability.Logger
}

func New(customerProcessor processor.CustomerProcessor, logger *observability.Logger) Handler {
	return Handler{customerProcessor: customerProcessor, logger: logger}
}

func (h *Handler) HandleListCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	req := processor.ListCustomersRequest{}
	if search := c.Query("search"); search != "" {
		req.Search = &search
	}
	if status := c.Query("status"); status != "" {
		req.Status = &status
	}
	if limit := c.Query("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		req.Limit = parsed
	}
	if offset := c.Query("offset"); offset != "" {
		parsed, err := strconv.Atoi(offset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		req.Offset = parsed
	}

	resp, err := h.customerProcessor.ListCustomers(ctx, req)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer status"})
			return
		}
		h.logger.Error(ctx, "failed to list customers", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) HandleGetCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	detail, err := h.customerProcessor.GetCustomerDetail(ctx, customerID)
	if err != nil {
		if errors.Is(err, processor.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Error(ctx, "failed to get customer", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get customer"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) HandleUpdateCustomerStatus(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customerProcessor.UpdateStatus(ctx, customerID, req.Status)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer status"})
			return
		}
		if errors.Is(err, processor.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Error(ctx, "failed to update customer status", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

type UpdateCustomerRequest struct {
	BusinessName *string `json:"business_name"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Notes        *string `json:"notes"`
}

func (h *Handler) HandleUpdateCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customerProcessor.UpdateCustomer(ctx, customerID, processor.UpdateCustomerRequest{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, processor.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Error(ctx, "failed to update customer", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *Handler) HandleDeleteCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	if err := h.customerProcessor.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, processor.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Error(ctx, "failed to delete customer", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

func (h *Handler) HandleGetCustomerStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.customerProcessor.GetStats(ctx)
	if err != nil {
		h.logger.Error(ctx, "failed to get customer stats", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get customer stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) HandleGetReportURL(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	urls, err := h.customerProcessor.GetReportURL(ctx, customerID)
	if err != nil {
		if errors.Is(err, processor.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		if errors.Is(err, processor.ErrNoAnalysis) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer has no analysis"})
			return
		}
		h.logger.Error(ctx, "failed to get report url", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get report url"})
		return
	}

	c.JSON(http.StatusOK, urls)
}
