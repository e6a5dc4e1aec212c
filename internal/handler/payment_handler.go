package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/tutorium-admin-api/internal/dto"
	"github.com/noah-isme/tutorium-admin-api/internal/middleware"
	"github.com/noah-isme/tutorium-admin-api/internal/models"
	"github.com/noah-isme/tutorium-admin-api/internal/service"
	appErrors "github.com/noah-isme/tutorium-admin-api/pkg/errors"
	"github.com/noah-isme/tutorium-admin-api/pkg/response"
)

// FilterSessionHeader carries the admin's filter session identifier. The
// server mints one when the client does not send it and echoes it back.
const FilterSessionHeader = "X-Filter-Session"

type paymentService interface {
	List(ctx context.Context, sessionID string) (*dto.PaymentListResponse, *models.Pagination, bool, error)
}

type filterStateService interface {
	Get(ctx context.Context, sessionID string) (*service.FilterSession, error)
	Stage(ctx context.Context, sessionID string, update dto.PaymentFilterUpdate) (*service.FilterSession, error)
	Apply(ctx context.Context, sessionID string) (*service.FilterSession, error)
	Reset(ctx context.Context, sessionID string) (*service.FilterSession, error)
	SetPage(ctx context.Context, sessionID string, page int) (*service.FilterSession, error)
}

type exportService interface {
	Generate(ctx context.Context, sessionID string, format service.ExportFormat) (*service.ExportResult, error)
}

// PaymentHandler wires the transaction table, filter state machine and
// exports to HTTP endpoints.
type PaymentHandler struct {
	payments paymentService
	filters  filterStateService
	exports  exportService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(payments paymentService, filters filterStateService, exports exportService) *PaymentHandler {
	return &PaymentHandler{payments: payments, filters: filters, exports: exports}
}

// List godoc
// @Summary Filtered transaction page
// @Tags Payments
// @Produce json
// @Param X-Filter-Session header string false "Filter session ID"
// @Param page query int false "Result page, 1-based"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	if h.payments == nil || h.filters == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	sessionID := h.sessionID(c)
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "page must be a positive integer"))
			return
		}
		if _, err := h.filters.SetPage(c.Request.Context(), sessionID, page); err != nil {
			response.Error(c, err)
			return
		}
	}
	start := time.Now()
	list, pagination, cacheHit, err := h.payments.List(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, list, pagination, meta)
}

// GetFilters godoc
// @Summary Current draft and applied filters
// @Tags Payments
// @Produce json
// @Param X-Filter-Session header string false "Filter session ID"
// @Success 200 {object} response.Envelope
// @Router /payments/filters [get]
func (h *PaymentHandler) GetFilters(c *gin.Context) {
	if h.filters == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	session, err := h.filters.Get(c.Request.Context(), h.sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toFilterSessionResponse(session), nil)
}

// StageFilters godoc
// @Summary Stage draft filter edits
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Filter-Session header string false "Filter session ID"
// @Param update body dto.PaymentFilterUpdate true "Partial filter update"
// @Success 200 {object} response.Envelope
// @Router /payments/filters [put]
func (h *PaymentHandler) StageFilters(c *gin.Context) {
	if h.filters == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var update dto.PaymentFilterUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	session, err := h.filters.Stage(c.Request.Context(), h.sessionID(c), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toFilterSessionResponse(session), nil)
}

// ApplyFilters godoc
// @Summary Apply the draft filter
// @Tags Payments
// @Produce json
// @Param X-Filter-Session header string false "Filter session ID"
// @Success 200 {object} response.Envelope
// @Router /payments/filters/apply [post]
func (h *PaymentHandler) ApplyFilters(c *gin.Context) {
	if h.filters == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	session, err := h.filters.Apply(c.Request.Context(), h.sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toFilterSessionResponse(session), nil)
}

// ResetFilters godoc
// @Summary Reset filters to defaults
// @Tags Payments
// @Produce json
// @Param X-Filter-Session header string false "Filter session ID"
// @Success 200 {object} response.Envelope
// @Router /payments/filters/reset [post]
func (h *PaymentHandler) ResetFilters(c *gin.Context) {
	if h.filters == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	session, err := h.filters.Reset(c.Request.Context(), h.sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toFilterSessionResponse(session), nil)
}

// Export godoc
// @Summary Download the filtered set
// @Tags Payments
// @Produce text/csv
// @Param X-Filter-Session header string false "Filter session ID"
// @Param format query string false "Export format: csv or pdf (default csv)"
// @Success 200 {file} file
// @Router /payments/export [get]
func (h *PaymentHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := service.ExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	result, err := h.exports.Generate(c.Request.Context(), h.sessionID(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

// sessionID reads the filter session header, minting a fresh ID when absent.
// The chosen ID is always echoed so clients can adopt it.
func (h *PaymentHandler) sessionID(c *gin.Context) string {
	sessionID := strings.TrimSpace(c.GetHeader(FilterSessionHeader))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(FilterSessionHeader, sessionID)
	return sessionID
}

func toFilterSessionResponse(session *service.FilterSession) dto.FilterSessionResponse {
	if session == nil {
		return dto.FilterSessionResponse{
			Draft:   dto.DefaultPaymentFilter(),
			Applied: dto.DefaultPaymentFilter(),
			Page:    1,
		}
	}
	return dto.FilterSessionResponse{
		Draft:   session.Draft,
		Applied: session.Applied,
		Page:    session.Page,
	}
}
