package stats_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrng2025001/motorsync-sub002/internal/access"
	"github.com/nrng2025001/motorsync-sub002/internal/enquiry"
	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/stats"
)

type mockLister struct {
	mu       sync.Mutex
	byWindow map[string][]enquiry.Enquiry
	failures map[string]error
	fetched  []string
}

func (m *mockLister) List(ctx context.Context, sess *shared.Session, filter enquiry.ListFilter) ([]enquiry.Enquiry, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, filter.Timeline)
	m.mu.Unlock()
	if err, ok := m.failures[filter.Timeline]; ok {
		return nil, err
	}
	return m.byWindow[filter.Timeline], nil
}

func session() *shared.Session {
	return &shared.Session{UserID: "u1", Role: access.RoleCustomerAdvisor, Token: "tok"}
}

func hot(id string) enquiry.Enquiry {
	return enquiry.Enquiry{ID: id, Category: enquiry.CategoryHot}
}

func TestDashboardCountsAllWindows(t *testing.T) {
	lister := &mockLister{byWindow: map[string][]enquiry.Enquiry{
		"today": {hot("e1")},
		"week":  {hot("e1"), {ID: "e2", Category: enquiry.CategoryBooked}},
		"month": {hot("e1"), {ID: "e2", Category: enquiry.CategoryBooked}, {ID: "e3", Category: enquiry.CategoryLost}},
	}}

	svc := stats.NewService(lister, nil)
	summary, err := svc.Dashboard(context.Background(), session())
	require.NoError(t, err)

	require.Len(t, summary.Windows, 5)
	assert.Equal(t, "today", summary.Windows[0].Timeline)
	assert.Equal(t, 1, summary.Windows[0].Total)
	assert.Equal(t, 1, summary.Windows[0].Hot)

	week := summary.Windows[1]
	assert.Equal(t, 2, week.Total)
	assert.Equal(t, 1, week.Booked)

	month := summary.Windows[2]
	assert.Equal(t, 3, month.Total)
	assert.Equal(t, 1, month.Lost)

	assert.Zero(t, summary.Windows[4].Total)
	assert.ElementsMatch(t, stats.Timelines, lister.fetched)
}

func TestDashboardOneFailureFailsAll(t *testing.T) {
	boom := errors.New("backend down")
	lister := &mockLister{
		byWindow: map[string][]enquiry.Enquiry{"today": {hot("e1")}},
		failures: map[string]error{"quarter": boom},
	}

	svc := stats.NewService(lister, nil)
	summary, err := svc.Dashboard(context.Background(), session())
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "quarter")
}

func TestDashboardNoSession(t *testing.T) {
	svc := stats.NewService(&mockLister{}, nil)
	_, err := svc.Dashboard(context.Background(), nil)
	assert.ErrorIs(t, err, shared.ErrNoSession)
}
