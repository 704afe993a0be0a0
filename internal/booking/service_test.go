package booking_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrng2025001/motorsync-sub002/internal/access"
	"github.com/nrng2025001/motorsync-sub002/internal/booking"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

type call struct {
	method string
	path   string
	body   any
}

type mockBackend struct {
	responses map[string]json.RawMessage
	errors    map[string]error
	calls     []call
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		responses: make(map[string]json.RawMessage),
		errors:    make(map[string]error),
	}
}

func (m *mockBackend) respond(method, path, payload string) {
	m.responses[method+" "+path] = json.RawMessage(payload)
}

func (m *mockBackend) dispatch(method, path string, body any) (json.RawMessage, error) {
	m.calls = append(m.calls, call{method: method, path: path, body: body})
	key := method + " " + path
	if err, ok := m.errors[key]; ok {
		return nil, err
	}
	if raw, ok := m.responses[key]; ok {
		return raw, nil
	}
	return nil, &upstream.APIError{Status: 404, Message: "not found"}
}

func (m *mockBackend) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return m.dispatch("GET", path, nil)
}

func (m *mockBackend) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return m.dispatch("POST", path, body)
}

func (m *mockBackend) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return m.dispatch("PUT", path, body)
}

func (m *mockBackend) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return m.dispatch("PATCH", path, body)
}

func (m *mockBackend) Download(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	raw, err := m.dispatch("GET", path, nil)
	if err != nil {
		return nil, "", err
	}
	return raw, "text/csv", nil
}

func advisorSession(id string) *shared.Session {
	return &shared.Session{UserID: id, Role: access.RoleCustomerAdvisor, Token: "tok"}
}

func bookingJSON(id, advisorID string) string {
	return fmt.Sprintf(`{"id":%q,"advisorId":%q,"status":"CONFIRMED","customerName":"C","variant":"V","bookingDate":"2026-08-01T00:00:00Z"}`, id, advisorID)
}

func TestListAdvisorScenario(t *testing.T) {
	// 10 bookings: 3 mine, 4 someone else's, 3 unscoped. Exactly my 3 survive.
	records := []string{
		bookingJSON("b1", "u1"), bookingJSON("b2", "u2"), bookingJSON("b3", ""),
		bookingJSON("b4", "u1"), bookingJSON("b5", "u2"), bookingJSON("b6", ""),
		bookingJSON("b7", "u2"), bookingJSON("b8", "u1"), bookingJSON("b9", "u2"),
		bookingJSON("b10", ""),
	}
	payload := `{"success":true,"data":{"bookings":[` + records[0]
	for _, r := range records[1:] {
		payload += "," + r
	}
	payload += `]}}`

	backend := newMockBackend()
	backend.respond("GET", "/api/bookings", payload)

	svc := booking.NewService(backend, nil)
	items, err := svc.List(context.Background(), advisorSession("u1"), booking.ListFilter{})
	require.NoError(t, err)

	require.Len(t, items, 3)
	for _, b := range items {
		assert.Equal(t, "u1", b.AdvisorID, "advisor must never see a booking that is not theirs")
		assert.NotEmpty(t, b.AdvisorID)
	}
	assert.Equal(t, []string{"b1", "b4", "b8"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestListDedupesAcrossPages(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings", `{"data":{"bookings":[
		{"id":"b1","advisorId":"u1","status":"PENDING","customerName":"old"},
		{"id":"b2","advisorId":"u1","status":"PENDING","customerName":"x"},
		{"id":"b1","advisorId":"u1","status":"CONFIRMED","customerName":"new"}
	]}}`)

	svc := booking.NewService(backend, nil)
	items, err := svc.List(context.Background(), advisorSession("u1"), booking.ListFilter{})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "b1", items[0].ID)
	assert.Equal(t, booking.StatusConfirmed, items[0].Status)
	assert.Equal(t, "new", items[0].CustomerName)
}

func TestListOverdueOnly(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings", `{"data":{"bookings":[
		{"id":"b1","advisorId":"u1","status":"CONFIRMED","expectedDeliveryDate":"2020-01-01T00:00:00Z"},
		{"id":"b2","advisorId":"u1","status":"DELIVERED","expectedDeliveryDate":"2020-01-01T00:00:00Z"},
		{"id":"b3","advisorId":"u1","status":"CONFIRMED","expectedDeliveryDate":"2099-01-01T00:00:00Z"}
	]}}`)

	svc := booking.NewService(backend, nil)
	items, err := svc.List(context.Background(), advisorSession("u1"), booking.ListFilter{OverdueOnly: true})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "b1", items[0].ID)
}

func TestGetForbiddenForForeignBooking(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings/b1", `{"data":{"booking":`+bookingJSON("b1", "u2")+`}}`)

	svc := booking.NewService(backend, nil)
	_, err := svc.Get(context.Background(), advisorSession("u1"), "b1")
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCreateAssignsCreator(t *testing.T) {
	backend := newMockBackend()
	backend.respond("POST", "/api/bookings", `{"data":{"booking":`+bookingJSON("b9", "u1")+`}}`)

	svc := booking.NewService(backend, nil)
	b, err := svc.Create(context.Background(), advisorSession("u1"), booking.CreateBookingRequest{
		CustomerName:  "C",
		CustomerPhone: "9",
		Variant:       "V",
	})
	require.NoError(t, err)
	assert.Equal(t, "b9", b.ID)

	sent, err := json.Marshal(backend.calls[0].body)
	require.NoError(t, err)
	assert.Contains(t, string(sent), `"advisorId":"u1"`)
}

func TestCreateForbiddenForSupervisors(t *testing.T) {
	backend := newMockBackend()
	svc := booking.NewService(backend, nil)
	sess := &shared.Session{UserID: "m1", Role: access.RoleSalesManager, Token: "tok"}
	_, err := svc.Create(context.Background(), sess, booking.CreateBookingRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Empty(t, backend.calls)
}

func TestUpdateStatusTerminalLock(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings/b1", `{"data":{"booking":{"id":"b1","advisorId":"u1","status":"DELIVERED"}}}`)

	svc := booking.NewService(backend, nil)
	_, err := svc.UpdateStatus(context.Background(), advisorSession("u1"), "b1",
		booking.UpdateStatusRequest{Status: booking.StatusCancelled})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUpdateRemarksWritesOwnTier(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings/b1", `{"data":{"booking":`+bookingJSON("b1", "u1")+`}}`)
	backend.respond("PATCH", "/api/bookings/b1/remarks", `{"data":{"booking":`+bookingJSON("b1", "u1")+`}}`)

	svc := booking.NewService(backend, nil)

	// Team lead annotates a booking they do not own.
	sess := &shared.Session{UserID: "t1", Role: access.RoleTeamLead, Token: "tok"}
	_, err := svc.UpdateRemarks(context.Background(), sess, "b1", booking.RemarksRequest{Remarks: "check finance"})
	require.NoError(t, err)

	last := backend.calls[len(backend.calls)-1]
	body := last.body.(map[string]string)
	assert.Equal(t, "check finance", body["teamLeadRemarks"])
}

func TestUpdateRemarksAdvisorOwnershipEnforced(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings/b1", `{"data":{"booking":`+bookingJSON("b1", "u2")+`}}`)

	svc := booking.NewService(backend, nil)
	_, err := svc.UpdateRemarks(context.Background(), advisorSession("u1"), "b1", booking.RemarksRequest{Remarks: "mine!"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestExport(t *testing.T) {
	backend := newMockBackend()
	backend.respond("GET", "/api/bookings/export", `id,customer`)

	svc := booking.NewService(backend, nil)
	blob, contentType, err := svc.Export(context.Background(), advisorSession("u1"), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "id,customer", string(blob))
}
