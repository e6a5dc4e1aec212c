package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorium-admin-api/pkg/config"
	appErrors "github.com/noah-isme/tutorium-admin-api/pkg/errors"
)

func TestClientDecodesCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/payment-transactions":
			w.Write([]byte(`[{"id":1,"user_id":7,"amount_satang":15000,"status":"paid","created_at":"2025-06-15T10:00:00"}]`)) //nolint:errcheck
		case "/users":
			w.Write([]byte(`[{"id":1,"teacher_id":4},{"id":2}]`)) //nolint:errcheck
		default:
			w.Write([]byte(`[]`)) //nolint:errcheck
		}
	}))
	defer srv.Close()

	client := NewClient(config.UpstreamConfig{BaseURL: srv.URL}, nil, nil)

	txs, err := client.PaymentTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(1), txs[0].ID)
	assert.Equal(t, int64(15000), txs[0].Amount())
	assert.True(t, txs[0].HasStatus("PAID"))

	users, err := client.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsTeacher())
	assert.False(t, users[1].IsTeacher())

	reports, err := client.Reports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestClientWrapsHTTPFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.UpstreamConfig{BaseURL: srv.URL}, nil, nil)

	_, err := client.BanLearners(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestClientWrapsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(config.UpstreamConfig{BaseURL: srv.URL}, nil, nil)

	_, err := client.BanTeachers(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
