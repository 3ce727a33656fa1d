package handler

import (
	"errors"
	"net/http"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/reports/processor"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	reportProcessor processor.ReportProcessor
	logger          *observability.Logger
}

func New(reportProcessor processor.ReportProcessor, logger *observability.Logger) Handler {
	return Handler{reportProcessor: reportProcessor, logger: logger}
}

func (h *Handler) HandleResolveReport(c *gin.Context) {
	ctx := c.Request.Context()

	analysis, err := h.reportProcessor.ResolveFromQuery(ctx, c.Request.URL.RawQuery)
	if err != nil {
		if errors.Is(err, processor.ErrAnalysisNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		h.logger.Error(ctx, "failed to resolve report", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
