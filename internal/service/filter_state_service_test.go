package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorium-admin-api/internal/dto"
)

func newTestFilterState(t *testing.T) *FilterStateService {
	t.Helper()
	svc := NewFilterStateService(nil, mustZone(t), time.Minute, nil)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 14, 0, 0, 0, svc.loc)
	}
	return svc
}

func TestFilterSessionStartsWithDefaults(t *testing.T) {
	svc := newTestFilterState(t)

	session, err := svc.Get(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultPaymentFilter(), session.Draft)
	assert.Equal(t, dto.DefaultPaymentFilter(), session.Applied)
	assert.Equal(t, 1, session.Page)
}

func TestStageKeepsAppliedUntouched(t *testing.T) {
	svc := newTestFilterState(t)
	ctx := context.Background()

	query := "chrg"
	session, err := svc.Stage(ctx, "sess", dto.PaymentFilterUpdate{Query: &query})
	require.NoError(t, err)
	assert.Equal(t, "chrg", session.Draft.Query)
	assert.Equal(t, "", session.Applied.Query)

	session, err = svc.Apply(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, "chrg", session.Applied.Query)
	assert.Equal(t, 1, session.Page)
}

func TestStageRejectsInvalidUpdate(t *testing.T) {
	svc := newTestFilterState(t)

	bad := dto.PaymentStatus("refunded")
	_, err := svc.Stage(context.Background(), "sess", dto.PaymentFilterUpdate{Status: &bad})
	assert.Error(t, err)

	badDate := "15/06/2025"
	_, err = svc.Stage(context.Background(), "sess", dto.PaymentFilterUpdate{StartDate: &badDate})
	assert.Error(t, err)
}

func TestPresetsRewriteBothDateBounds(t *testing.T) {
	svc := newTestFilterState(t)
	ctx := context.Background()

	tests := []struct {
		preset    dto.TimePreset
		wantStart string
		wantEnd   string
	}{
		{dto.PresetToday, "2025-06-15", "2025-06-15"},
		{dto.PresetWeek, "2025-06-09", "2025-06-15"},
		{dto.PresetMonth30, "2025-05-17", "2025-06-15"},
		{dto.PresetMonth, "2025-06-01", "2025-06-30"},
		{dto.PresetAll, "", ""},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			preset := tc.preset
			session, err := svc.Stage(ctx, "sess", dto.PaymentFilterUpdate{Preset: &preset})
			require.NoError(t, err)
			assert.Equal(t, tc.preset, session.Draft.Preset)
			assert.Equal(t, tc.wantStart, session.Draft.StartDate)
			assert.Equal(t, tc.wantEnd, session.Draft.EndDate)
		})
	}
}

func TestManualDateEditDemotesPreset(t *testing.T) {
	svc := newTestFilterState(t)
	ctx := context.Background()

	preset := dto.PresetWeek
	_, err := svc.Stage(ctx, "sess", dto.PaymentFilterUpdate{Preset: &preset})
	require.NoError(t, err)

	start := "2025-06-01"
	session, err := svc.Stage(ctx, "sess", dto.PaymentFilterUpdate{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, dto.PresetAll, session.Draft.Preset)
	assert.Equal(t, "2025-06-01", session.Draft.StartDate)
	assert.Equal(t, "2025-06-15", session.Draft.EndDate, "other bound untouched")
}

func TestResetRestoresDefaultsAndFirstPage(t *testing.T) {
	svc := newTestFilterState(t)
	ctx := context.Background()

	query := "abc"
	_, err := svc.Stage(ctx, "sess", dto.PaymentFilterUpdate{Query: &query})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "sess")
	require.NoError(t, err)
	_, err = svc.SetPage(ctx, "sess", 4)
	require.NoError(t, err)

	session, err := svc.Reset(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultPaymentFilter(), session.Draft)
	assert.Equal(t, dto.DefaultPaymentFilter(), session.Applied)
	assert.Equal(t, 1, session.Page)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newTestFilterState(t)
	ctx := context.Background()

	query := "only-a"
	_, err := svc.Stage(ctx, "sess-a", dto.PaymentFilterUpdate{Query: &query})
	require.NoError(t, err)

	other, err := svc.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.Equal(t, "", other.Draft.Query)
}
