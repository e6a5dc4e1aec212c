package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorium-admin-api/internal/dto"
	"github.com/noah-isme/tutorium-admin-api/internal/models"
	"github.com/noah-isme/tutorium-admin-api/internal/service"
)

type fakePaymentSrv struct {
	list        *dto.PaymentListResponse
	pagination  *models.Pagination
	hit         bool
	err         error
	lastSession string
}

func (f *fakePaymentSrv) List(_ context.Context, sessionID string) (*dto.PaymentListResponse, *models.Pagination, bool, error) {
	f.lastSession = sessionID
	return f.list, f.pagination, f.hit, f.err
}

type fakeFilterSrv struct {
	session     *service.FilterSession
	err         error
	lastStaged  *dto.PaymentFilterUpdate
	lastPage    int
	applied     bool
	resetCalled bool
}

func (f *fakeFilterSrv) Get(context.Context, string) (*service.FilterSession, error) {
	return f.session, f.err
}

func (f *fakeFilterSrv) Stage(_ context.Context, _ string, update dto.PaymentFilterUpdate) (*service.FilterSession, error) {
	f.lastStaged = &update
	return f.session, f.err
}

func (f *fakeFilterSrv) Apply(context.Context, string) (*service.FilterSession, error) {
	f.applied = true
	return f.session, f.err
}

func (f *fakeFilterSrv) Reset(context.Context, string) (*service.FilterSession, error) {
	f.resetCalled = true
	return f.session, f.err
}

func (f *fakeFilterSrv) SetPage(_ context.Context, _ string, page int) (*service.FilterSession, error) {
	f.lastPage = page
	return f.session, f.err
}

type fakeExportSrv struct {
	result     *service.ExportResult
	err        error
	lastFormat service.ExportFormat
}

func (f *fakeExportSrv) Generate(_ context.Context, _ string, format service.ExportFormat) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

func defaultSession() *service.FilterSession {
	return &service.FilterSession{
		Draft:   dto.DefaultPaymentFilter(),
		Applied: dto.DefaultPaymentFilter(),
		Page:    1,
	}
}

func newPaymentTestContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c, rec
}

func TestPaymentListMintsSessionWhenHeaderMissing(t *testing.T) {
	payments := &fakePaymentSrv{
		list:       &dto.PaymentListResponse{Filter: dto.DefaultPaymentFilter()},
		pagination: &models.Pagination{Page: 1, PageSize: 10, TotalPages: 1},
	}
	handler := NewPaymentHandler(payments, &fakeFilterSrv{session: defaultSession()}, nil)

	c, rec := newPaymentTestContext(t, http.MethodGet, "/payments", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(FilterSessionHeader))
	assert.Equal(t, rec.Header().Get(FilterSessionHeader), payments.lastSession)
}

func TestPaymentListEchoesProvidedSession(t *testing.T) {
	payments := &fakePaymentSrv{
		list:       &dto.PaymentListResponse{Filter: dto.DefaultPaymentFilter()},
		pagination: &models.Pagination{Page: 1, PageSize: 10, TotalPages: 1},
	}
	handler := NewPaymentHandler(payments, &fakeFilterSrv{session: defaultSession()}, nil)

	c, rec := newPaymentTestContext(t, http.MethodGet, "/payments", "")
	c.Request.Header.Set(FilterSessionHeader, "sess-42")
	handler.List(c)

	assert.Equal(t, "sess-42", rec.Header().Get(FilterSessionHeader))
	assert.Equal(t, "sess-42", payments.lastSession)
}

func TestPaymentListMovesPage(t *testing.T) {
	payments := &fakePaymentSrv{
		list:       &dto.PaymentListResponse{Filter: dto.DefaultPaymentFilter()},
		pagination: &models.Pagination{Page: 2, PageSize: 10, TotalPages: 3},
	}
	filters := &fakeFilterSrv{session: defaultSession()}
	handler := NewPaymentHandler(payments, filters, nil)

	c, rec := newPaymentTestContext(t, http.MethodGet, "/payments?page=2", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, filters.lastPage)
}

func TestPaymentListRejectsBadPage(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentSrv{}, &fakeFilterSrv{session: defaultSession()}, nil)

	c, rec := newPaymentTestContext(t, http.MethodGet, "/payments?page=zero", "")
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStageFiltersBindsPartialUpdate(t *testing.T) {
	filters := &fakeFilterSrv{session: defaultSession()}
	handler := NewPaymentHandler(&fakePaymentSrv{}, filters, nil)

	c, rec := newPaymentTestContext(t, http.MethodPut, "/payments/filters", `{"status":"paid","preset":"7d"}`)
	handler.StageFilters(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, filters.lastStaged)
	require.NotNil(t, filters.lastStaged.Status)
	assert.Equal(t, dto.StatusPaid, *filters.lastStaged.Status)
	require.NotNil(t, filters.lastStaged.Preset)
	assert.Equal(t, dto.PresetWeek, *filters.lastStaged.Preset)
	assert.Nil(t, filters.lastStaged.Query)
}

func TestStageFiltersRejectsMalformedBody(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentSrv{}, &fakeFilterSrv{session: defaultSession()}, nil)

	c, rec := newPaymentTestContext(t, http.MethodPut, "/payments/filters", `{"status":`)
	handler.StageFilters(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyAndResetFilters(t *testing.T) {
	filters := &fakeFilterSrv{session: defaultSession()}
	handler := NewPaymentHandler(&fakePaymentSrv{}, filters, nil)

	c, rec := newPaymentTestContext(t, http.MethodPost, "/payments/filters/apply", "")
	handler.ApplyFilters(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, filters.applied)

	c, rec = newPaymentTestContext(t, http.MethodPost, "/payments/filters/reset", "")
	handler.ResetFilters(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, filters.resetCalled)
}

func TestExportSetsAttachmentHeaders(t *testing.T) {
	exports := &fakeExportSrv{result: &service.ExportResult{
		Filename:    "payments_2025-06-15.csv",
		ContentType: "text/csv; charset=utf-8",
		Payload:     []byte("id\n1\n"),
	}}
	handler := NewPaymentHandler(&fakePaymentSrv{}, &fakeFilterSrv{session: defaultSession()}, exports)

	c, rec := newPaymentTestContext(t, http.MethodGet, "/payments/export?format=CSV", "")
	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.FormatCSV, exports.lastFormat)
	assert.Equal(t, `attachment; filename="payments_2025-06-15.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "id\n1\n", rec.Body.String())
}

func TestExportPropagatesServiceError(t *testing.T) {
	exports := &fakeExportSrv{err: assert.AnError}
	handler := NewPaymentHandler(&fakePaymentSrv{}, &fakeFilterSrv{session: defaultSession()}, exports)

	c, rec := newPaymentTestContext(t, http.MethodGet, "/payments/export", "")
	handler.Export(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
