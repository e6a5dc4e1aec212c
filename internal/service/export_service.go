package service

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorium-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutorium-admin-api/pkg/errors"
	"github.com/noah-isme/tutorium-admin-api/pkg/export"
)

// ExportFormat selects the export renderer.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered export payload ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the session's filtered transaction set to a file.
type ExportService struct {
	payments *PaymentService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	now      func() time.Time
	loc      *time.Location
}

// NewExportService constructs an ExportService.
func NewExportService(payments *PaymentService, loc *time.Location, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{
		payments: payments,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      time.Now,
		loc:      loc,
	}
}

// Generate renders the full filtered set for the session, never just the
// visible page.
func (s *ExportService) Generate(ctx context.Context, sessionID string, format ExportFormat) (*ExportResult, error) {
	txs, _, err := s.payments.Filtered(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	dataset := buildPaymentDataset(txs)
	stamp := s.now().In(s.loc)

	switch format {
	case FormatCSV, "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, "EXPORT_ERROR", http.StatusInternalServerError, "failed to render CSV export")
		}
		return &ExportResult{
			Filename:    export.Filename("payments", stamp, "csv"),
			ContentType: "text/csv; charset=utf-8",
			Payload:     payload,
		}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(dataset, "Payment Transactions")
		if err != nil {
			return nil, appErrors.Wrap(err, "EXPORT_ERROR", http.StatusInternalServerError, "failed to render PDF export")
		}
		return &ExportResult{
			Filename:    export.Filename("payments", stamp, "pdf"),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+string(format))
	}
}

var paymentExportHeaders = []string{
	"id", "user_id", "charge_id", "amount_thb", "currency",
	"channel", "status", "failure_code", "failure_message", "created_at",
}

func buildPaymentDataset(txs []models.Transaction) export.Dataset {
	rows := make([]map[string]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, map[string]string{
			"id":              strconv.FormatInt(tx.ID, 10),
			"user_id":         strconv.FormatInt(tx.UserID, 10),
			"charge_id":       deref(tx.ChargeID),
			"amount_thb":      strconv.FormatFloat(tx.AmountTHB(), 'f', -1, 64),
			"currency":        deref(tx.Currency),
			"channel":         deref(tx.Channel),
			"status":          deref(tx.Status),
			"failure_code":    deref(tx.FailureCode),
			"failure_message": deref(tx.FailureMessage),
			"created_at":      tx.CreatedAt,
		})
	}
	return export.Dataset{Headers: paymentExportHeaders, Rows: rows}
}
