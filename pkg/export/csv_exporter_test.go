package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	at := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "payments_2025-06-15.csv", Filename("payments", at, "csv"))
	assert.Equal(t, "payments_2025-06-15.pdf", Filename("payments", at, "pdf"))
}

func TestCSVRenderQuoting(t *testing.T) {
	data := Dataset{
		Headers: []string{"id", "note"},
		Rows: []map[string]string{
			{"id": "1", "note": `a,"b"`},
			{"id": "2", "note": "line\nbreak"},
			{"id": "3"},
		},
	}

	payload, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	got := string(payload)
	assert.Contains(t, got, "id,note\n")
	assert.Contains(t, got, `"a,""b"""`)
	assert.Contains(t, got, "\"line\nbreak\"")
	assert.Contains(t, got, "3,\n")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
