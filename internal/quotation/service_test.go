package quotation_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrng2025001/motorsync-sub002/internal/access"
	"github.com/nrng2025001/motorsync-sub002/internal/quotation"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

type mockBackend struct {
	responses map[string]json.RawMessage
	lastQuery url.Values
	lastBody  any
	calls     int
}

func newMockBackend() *mockBackend {
	return &mockBackend{responses: make(map[string]json.RawMessage)}
}

func (m *mockBackend) respond(method, path, payload string) {
	m.responses[method+" "+path] = json.RawMessage(payload)
}

func (m *mockBackend) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	m.calls++
	m.lastQuery = query
	if raw, ok := m.responses["GET "+path]; ok {
		return raw, nil
	}
	return nil, &upstream.APIError{Status: 404, Message: "not found"}
}

func (m *mockBackend) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	m.calls++
	m.lastBody = body
	if raw, ok := m.responses["POST "+path]; ok {
		return raw, nil
	}
	return nil, &upstream.APIError{Status: 404, Message: "not found"}
}

func TestListPassesFilterAndDecodes(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/quotations", `{"data":{"quotations":[
		{"id":"q1","customerName":"A","variant":"LXi","status":"SENT"},
		{"id":"q2","customerName":"B","variant":"VXi","status":"PENDING"}
	]}}`)

	svc := quotation.NewService(backend, nil)
	sess := &shared.Session{UserID: "u1", Role: access.RoleCustomerAdvisor, Token: "tok"}
	items, err := svc.List(context.Background(), sess, quotation.ListFilter{Status: quotation.StatusSent, EnquiryID: "e1"})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "q1", items[0].ID)
	assert.Equal(t, "SENT", backend.lastQuery.Get("status"))
	assert.Equal(t, "e1", backend.lastQuery.Get("enquiryId"))
}

func TestListVisibleToSupervisors(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/quotations", `{"data":{"quotations":[
		{"id":"q1","customerName":"A","variant":"LXi","status":"SENT","createdBy":"someone-else"}
	]}}`)

	svc := quotation.NewService(backend, nil)
	sess := &shared.Session{UserID: "m1", Role: access.RoleSalesManager, Token: "tok"}
	items, err := svc.List(context.Background(), sess, quotation.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCreateGatedByRole(t *testing.T) {
	backend := newMockBackend()
	svc := quotation.NewService(backend, nil)

	sess := &shared.Session{UserID: "m1", Role: access.RoleGeneralManager, Token: "tok"}
	_, err := svc.Create(context.Background(), sess, quotation.CreateQuotationRequest{CustomerName: "A", Variant: "LXi"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Zero(t, backend.calls, "rejected create must not reach the backend")
}

func TestCreateDecodesEnvelope(t *testing.T) {
	backend := newMockBackend()
	backend.respond("POST", "/api/quotations", `{"success":true,"data":{"quotation":{"id":"q9","customerName":"A","variant":"LXi","status":"PENDING"}}}`)

	svc := quotation.NewService(backend, nil)
	sess := &shared.Session{UserID: "u1", Role: access.RoleCustomerAdvisor, Token: "tok"}
	q, err := svc.Create(context.Background(), sess, quotation.CreateQuotationRequest{CustomerName: "A", Variant: "LXi"})
	require.NoError(t, err)
	assert.Equal(t, "q9", q.ID)
	assert.Equal(t, quotation.StatusPending, q.Status)
}

func TestGetNotFoundOnEmptyEnvelope(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/quotations/q1", `{"success":true,"data":null}`)

	svc := quotation.NewService(backend, nil)
	sess := &shared.Session{UserID: "u1", Role: access.RoleCustomerAdvisor, Token: "tok"}
	_, err := svc.Get(context.Background(), sess, "q1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
