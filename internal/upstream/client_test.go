package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrng2025001/motorsync-sub002/internal/access"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

func sessionContext() context.Context {
	sess := &shared.Session{UserID: "u1", Role: access.RoleCustomerAdvisor, Token: "tok-123"}
	return shared.ContextWithSession(context.Background(), sess)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"enquiries":[]}}`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Get(sessionContext(), "/api/enquiries", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientRejectsMissingSession(t *testing.T) {
	client := upstream.NewClient("http://backend.invalid", time.Second, nil)
	_, err := client.Get(context.Background(), "/api/enquiries", nil)
	assert.ErrorIs(t, err, upstream.ErrUnauthorized)
}

func TestClientEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"enquiry not editable"}`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Post(sessionContext(), "/api/enquiries", map[string]string{"customerName": "A"})
	var apiErr *upstream.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "enquiry not editable", apiErr.Message)
}

func TestClientHTTPFailureMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"variant is required"}`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Put(sessionContext(), "/api/enquiries/e1", map[string]string{})
	var apiErr *upstream.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "variant is required", apiErr.Error())
}

func TestClientHTTPFailureFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Delete(sessionContext(), "/api/enquiries/e1")
	var apiErr *upstream.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 500", apiErr.Error())
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the port refuses connections

	client := upstream.NewClient(srv.URL, time.Second, nil)
	_, err := client.Get(sessionContext(), "/api/bookings", nil)
	var netErr *upstream.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClientBareArrayResponse(t *testing.T) {
	// Responses that are not envelopes at all must pass through untouched.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"b1"}]`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second, nil)
	raw, err := client.Get(sessionContext(), "/api/bookings", nil)
	require.NoError(t, err)
	assert.Len(t, upstream.Records(raw, "bookings"), 1)
}

func TestClientDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,name\n1,A\n"))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second, nil)
	blob, contentType, err := client.Download(sessionContext(), "/api/bookings/export", nil)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "id,name\n1,A\n", string(blob))
}

func TestMentionsStock(t *testing.T) {
	assert.True(t, upstream.MentionsStock("Requested variant is OUT OF STOCK at all locations"))
	assert.True(t, upstream.MentionsStock("insufficient stock for variant ZX"))
	assert.False(t, upstream.MentionsStock("enquiry already converted"))
	assert.False(t, errors.Is(upstream.ErrOutOfStock, upstream.ErrUnauthorized))
}
