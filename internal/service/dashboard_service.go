package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/noah-isme/tutorium-admin-api/internal/dto"
	"github.com/noah-isme/tutorium-admin-api/internal/models"
)

const maxSeriesWindowDays = 90

type snapshotLoader interface {
	Load(ctx context.Context) (*models.Snapshot, bool, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	SeriesWindowDays int
}

// DashboardService composes KPI, series and composition payloads from
// marketplace snapshots. All aggregation helpers are pure; the service only
// adds snapshot loading and clock/zone injection around them.
type DashboardService struct {
	snapshots snapshotLoader
	logger    *zap.Logger
	now       func() time.Time
	loc       *time.Location
	cfg       DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(snapshots snapshotLoader, loc *time.Location, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if cfg.SeriesWindowDays <= 0 {
		cfg.SeriesWindowDays = 14
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
		loc:       loc,
		cfg:       cfg,
	}
}

// Summary returns the four KPI cards and indicates cache utilisation.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, bool, error) {
	snap, cacheHit, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	now := s.now().In(s.loc)
	paidToday := SumPaidToday(snap.Transactions, now, s.loc)
	summary := &dto.DashboardSummaryResponse{
		PendingReports: CountPendingReports(snap.Reports),
		ActiveBans:     models.CountActiveBans(snap.BanLearners, snap.BanTeachers, now, s.loc),
		PaidTodayTHB:   paidToday,
		PaidTodayLabel: FormatTHB(paidToday),
		NewUsersToday:  CountNewUsersToday(snap.Users, now, s.loc),
	}
	return summary, cacheHit, nil
}

// Series returns the trailing daily paid-volume series. A non-positive
// window falls back to the configured default; oversized windows clamp.
func (s *DashboardService) Series(ctx context.Context, windowDays int) (*dto.DailySeriesResponse, bool, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.SeriesWindowDays
	}
	if windowDays > maxSeriesWindowDays {
		windowDays = maxSeriesWindowDays
	}
	snap, cacheHit, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	points := BuildDailySeries(snap.Transactions, windowDays, s.now(), s.loc)
	return &dto.DailySeriesResponse{WindowDays: windowDays, Points: points}, cacheHit, nil
}

// Composition returns the teacher/non-teacher account histogram.
func (s *DashboardService) Composition(ctx context.Context) (*dto.UserCompositionResponse, bool, error) {
	snap, cacheHit, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	composition := UserComposition(snap.Users)
	return &composition, cacheHit, nil
}

// CountPendingReports counts reports whose status is "pending" ignoring case.
func CountPendingReports(reports []models.Report) int {
	count := 0
	for _, report := range reports {
		if report.IsPending() {
			count++
		}
	}
	return count
}

// SumPaidToday sums paid transactions created on the same wall-clock
// calendar day as now, converted to THB major units.
func SumPaidToday(txs []models.Transaction, now time.Time, loc *time.Location) float64 {
	var satang int64
	for _, tx := range txs {
		if !tx.HasStatus("paid") {
			continue
		}
		created, ok := tx.CreatedTime(loc)
		if !ok {
			continue
		}
		if models.SameCalendarDay(created, now, loc) {
			satang += tx.Amount()
		}
	}
	return float64(satang) / 100
}

// CountNewUsersToday counts accounts created on the same calendar day as now.
func CountNewUsersToday(users []models.User, now time.Time, loc *time.Location) int {
	count := 0
	for _, user := range users {
		if user.CreatedAt == nil {
			continue
		}
		created, ok := models.ParseFlexibleTime(*user.CreatedAt, loc)
		if !ok {
			continue
		}
		if models.SameCalendarDay(created, now, loc) {
			count++
		}
	}
	return count
}

// BuildDailySeries buckets paid transactions into windowDays consecutive
// calendar days ending today, oldest first. Days without paid volume emit a
// zero entry; the series is always exactly windowDays long and contiguous.
func BuildDailySeries(txs []models.Transaction, windowDays int, now time.Time, loc *time.Location) []dto.DailySeriesPoint {
	if windowDays < 1 {
		windowDays = 1
	}
	if loc == nil {
		loc = time.Local
	}
	today := models.StartOfDay(now, loc)

	buckets := make(map[int64]float64, windowDays)
	for _, tx := range txs {
		if !tx.HasStatus("paid") {
			continue
		}
		created, ok := tx.CreatedTime(loc)
		if !ok {
			continue
		}
		day := models.StartOfDay(created, loc)
		buckets[day.UnixMilli()] += tx.AmountTHB()
	}

	points := make([]dto.DailySeriesPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.UnixMilli()
		points = append(points, dto.DailySeriesPoint{
			Date:     key,
			Label:    day.Format("02/01"),
			ValueTHB: buckets[key],
		})
	}
	return points
}

// UserComposition partitions accounts into teacher/non-teacher buckets.
func UserComposition(users []models.User) dto.UserCompositionResponse {
	teachers := 0
	for _, user := range users {
		if user.IsTeacher() {
			teachers++
		}
	}
	return dto.UserCompositionResponse{
		Teacher:    teachers,
		NonTeacher: len(users) - teachers,
	}
}

// FormatTHB renders an amount with Thai digit grouping, two fraction digits
// and the baht glyph.
func FormatTHB(v float64) string {
	p := message.NewPrinter(language.Thai)
	return p.Sprintf("฿%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
