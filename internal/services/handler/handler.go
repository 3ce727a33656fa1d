package handler

import (
	"errors"
	"net/http"

	"geo-optimizer-server/internal/apierrors"
	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/services/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	serviceProcessor processor.ServiceProcessor
	logger           *observability.Logger
}

func New(serviceProcessor processor.ServiceProcessor, logger *observability.Logger) Handler {
	return Handler{serviceProcessor: serviceProcessor, logger: logger}
}

type CreateServiceRequest struct {
	ServiceName        string `json:"service_name" binding:"required"`
	ServiceDescription string `json:"service_description"`
	PriceRange         string `json:"price_range"`
	DeliveryTime       string `json:"delivery_time"`
	Features           string `json:"features"`
	IsActive           *bool  `json:"is_active"`
}

func (h *Handler) HandleCreateService(c *gin.Context) {
	ctx := c.Request.Context()
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	service, err := h.serviceProcessor.CreateService(ctx, processor.CreateServiceRequest{
		ServiceName:        req.ServiceName,
		ServiceDescription: req.ServiceDescription,
		PriceRange:         req.PriceRange,
		DeliveryTime:       req.DeliveryTime,
		Features:           req.Features,
		IsActive:           req.IsActive,
	})
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service": service})
}

func (h *Handler) HandleListServices(c *gin.Context) {
	ctx := c.Request.Context()

	activeOnly := c.Query("active") == "true"

	services, err := h.serviceProcessor.ListServices(ctx, activeOnly)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

type SetServiceActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *Handler) HandleSetServiceActive(c *gin.Context) {
	ctx := c.Request.Context()
	serviceID, err := uuid.Parse(c.Param("service_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_ID", "invalid service id")
		return
	}

	var req SetServiceActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	service, err := h.serviceProcessor.SetServiceActive(ctx, serviceID, *req.IsActive)
	if err != nil {
		if errors.Is(err, processor.ErrServiceNotFound) {
			apierrors.NotFound(c, "service not found")
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}
