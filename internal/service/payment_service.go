package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorium-admin-api/internal/dto"
	"github.com/noah-isme/tutorium-admin-api/internal/models"
)

// DefaultPageSize matches the table page size of the admin frontend.
const DefaultPageSize = 10

type filterSessionStore interface {
	Get(ctx context.Context, sessionID string) (*FilterSession, error)
}

// PaymentService runs the filter pipeline over transaction snapshots.
type PaymentService struct {
	snapshots snapshotLoader
	sessions  filterSessionStore
	logger    *zap.Logger
	loc       *time.Location
	pageSize  int
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(snapshots snapshotLoader, sessions filterSessionStore, loc *time.Location, pageSize int, logger *zap.Logger) *PaymentService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &PaymentService{snapshots: snapshots, sessions: sessions, logger: logger, loc: loc, pageSize: pageSize}
}

// List returns the current page of the session's applied filter view.
func (s *PaymentService) List(ctx context.Context, sessionID string) (*dto.PaymentListResponse, *models.Pagination, bool, error) {
	snap, cacheHit, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, false, err
	}

	filtered := FilterTransactions(snap.Transactions, session.Applied, s.loc)
	pageItems, pagination := Paginate(filtered, session.Page, s.pageSize)

	rows := make([]dto.PaymentRow, 0, len(pageItems))
	for _, tx := range pageItems {
		rows = append(rows, toPaymentRow(tx))
	}
	return &dto.PaymentListResponse{Items: rows, Filter: session.Applied}, pagination, cacheHit, nil
}

// Filtered returns the full filtered set for export, never paginated.
func (s *PaymentService) Filtered(ctx context.Context, sessionID string) ([]models.Transaction, dto.PaymentFilter, error) {
	snap, _, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, dto.PaymentFilter{}, err
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, dto.PaymentFilter{}, err
	}
	return FilterTransactions(snap.Transactions, session.Applied, s.loc), session.Applied, nil
}

// FilterTransactions applies the query, status, channel and date-range
// predicates (logical AND) and sorts the survivors most recent first. The
// sort is unconditional and always the final step. Pure: the input slice is
// never mutated, and applying the same filter twice is idempotent.
func FilterTransactions(txs []models.Transaction, f dto.PaymentFilter, loc *time.Location) []models.Transaction {
	if loc == nil {
		loc = time.Local
	}
	query := strings.ToLower(f.Query)

	var startBound, endBound time.Time
	var hasStart, hasEnd bool
	if f.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", f.StartDate, loc); err == nil {
			startBound, hasStart = t, true
		}
	}
	if f.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", f.EndDate, loc); err == nil {
			// inclusive upper bound: end of that calendar day
			endBound, hasEnd = t.Add(24*time.Hour-time.Millisecond), true
		}
	}

	matched := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !matchQuery(tx, query) {
			continue
		}
		if !matchStatus(tx, f.Status) {
			continue
		}
		if !matchChannel(tx, f.Channel) {
			continue
		}
		if hasStart || hasEnd {
			created, ok := tx.CreatedTime(loc)
			if !ok {
				continue
			}
			if hasStart && created.Before(startBound) {
				continue
			}
			if hasEnd && created.After(endBound) {
				continue
			}
		}
		matched = append(matched, tx)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ti, _ := matched[i].CreatedTime(loc)
		tj, _ := matched[j].CreatedTime(loc)
		return ti.After(tj)
	})
	return matched
}

// Paginate clamps the requested page into [1, totalPages] and slices out one
// page. Out-of-range requests clamp instead of erroring.
func Paginate(txs []models.Transaction, page, pageSize int) ([]models.Transaction, *models.Pagination) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(txs) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	if start > len(txs) {
		start = len(txs)
	}
	end := start + pageSize
	if end > len(txs) {
		end = len(txs)
	}
	pagination := &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(txs),
		TotalPages: totalPages,
	}
	return txs[start:end], pagination
}

func matchQuery(tx models.Transaction, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strconv.FormatInt(tx.ID, 10), query) {
		return true
	}
	if strings.Contains(strconv.FormatInt(tx.UserID, 10), query) {
		return true
	}
	return tx.ChargeID != nil && strings.Contains(strings.ToLower(*tx.ChargeID), query)
}

func matchStatus(tx models.Transaction, status dto.PaymentStatus) bool {
	if status == "" || status == dto.StatusAll {
		return true
	}
	return tx.HasStatus(string(status))
}

func matchChannel(tx models.Transaction, channel dto.PaymentChannel) bool {
	switch channel {
	case "", dto.ChannelAll:
		return true
	case dto.ChannelOther:
		_, known := dto.KnownChannels[tx.ChannelName()]
		return !known
	default:
		return tx.ChannelName() == string(channel)
	}
}

func toPaymentRow(tx models.Transaction) dto.PaymentRow {
	return dto.PaymentRow{
		ID:             tx.ID,
		UserID:         tx.UserID,
		ChargeID:       deref(tx.ChargeID),
		AmountTHB:      tx.AmountTHB(),
		Currency:       deref(tx.Currency),
		Channel:        deref(tx.Channel),
		Status:         deref(tx.Status),
		FailureCode:    deref(tx.FailureCode),
		FailureMessage: deref(tx.FailureMessage),
		CreatedAt:      tx.CreatedAt,
	}
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
