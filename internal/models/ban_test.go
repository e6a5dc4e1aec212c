package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)
	return loc
}

func TestBanRecordIsActive(t *testing.T) {
	loc := bangkok(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)

	tests := []struct {
		name   string
		record BanRecord
		want   bool
	}{
		{
			name:   "within window",
			record: BanRecord{BanStart: strPtr("2025-06-10"), BanEnd: strPtr("2025-06-20")},
			want:   true,
		},
		{
			name:   "expired",
			record: BanRecord{BanStart: strPtr("2025-05-01"), BanEnd: strPtr("2025-05-31")},
			want:   false,
		},
		{
			name:   "not yet started",
			record: BanRecord{BanStart: strPtr("2025-07-01"), BanEnd: strPtr("2025-07-31")},
			want:   false,
		},
		{
			name:   "open ended counts as permanent",
			record: BanRecord{BanStart: strPtr("2025-06-01")},
			want:   true,
		},
		{
			name:   "unparsable end counts as permanent",
			record: BanRecord{BanStart: strPtr("2025-06-01"), BanEnd: strPtr("whenever")},
			want:   true,
		},
		{
			name:   "missing start is never active",
			record: BanRecord{BanEnd: strPtr("2025-12-31")},
			want:   false,
		},
		{
			name:   "unparsable start is never active",
			record: BanRecord{BanStart: strPtr("not a date"), BanEnd: strPtr("2025-12-31")},
			want:   false,
		},
		{
			name:   "boundaries are inclusive",
			record: BanRecord{BanStart: strPtr("2025-06-15T12:00:00"), BanEnd: strPtr("2025-06-15T12:00:00")},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.record.IsActive(now, loc))
		})
	}
}

func TestCountActiveBansSumsBothCollections(t *testing.T) {
	loc := bangkok(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)

	learners := []BanRecord{
		{BanStart: strPtr("2025-06-01"), BanEnd: strPtr("2025-06-30")},
		{BanStart: strPtr("2025-01-01"), BanEnd: strPtr("2025-01-31")},
	}
	teachers := []BanRecord{
		{BanStart: strPtr("2025-06-10")},
	}

	assert.Equal(t, 2, CountActiveBans(learners, teachers, now, loc))
}
