package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"request-tracker/internal/domain"
)

var metricsNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func request(id string, status domain.Status, mutate func(*domain.Request)) domain.Request {
	r := domain.Request{
		ID:        id,
		Title:     "request " + id,
		Status:    status,
		Priority:  domain.PriorityMedium,
		System:    "CRM System",
		UpdatedAt: metricsNow.Add(-time.Hour),
		DueDate:   metricsNow.Add(10 * 24 * time.Hour),
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestComputeGauges(t *testing.T) {
	reqs := []domain.Request{
		request("REQ-001", domain.StatusInDevelopment, func(r *domain.Request) {
			r.AssignedDevelopers = []string{"u2"}
			r.Priority = domain.PriorityEmergency
		}),
		request("REQ-002", domain.StatusCompleted, nil),
		request("REQ-003", domain.StatusRejected, nil),
		// user_rejected is neither completed, rejected nor cancelled, so
		// it still counts as ongoing.
		request("REQ-004", domain.StatusUserRejected, nil),
		request("REQ-005", domain.StatusUATSignoff, func(r *domain.Request) {
			r.DueDate = metricsNow.Add(-24 * time.Hour)
		}),
		request("REQ-006", domain.StatusPendingManagerApproval, func(r *domain.Request) {
			r.UpdatedAt = metricsNow.Add(-45 * 24 * time.Hour)
		}),
	}

	g := ComputeGauges(reqs, domain.RoleDeveloper, "u2", metricsNow)
	assert.Equal(t, 4, g.Ongoing)
	assert.Equal(t, 1, g.PendingActions)
	assert.Equal(t, 1, g.Overdue)
	assert.Equal(t, 1, g.Dormant)
	assert.Equal(t, 1, g.Emergency)
}

func TestPendingAction(t *testing.T) {
	tests := []struct {
		name   string
		req    domain.Request
		role   domain.Role
		userID string
		want   bool
	}{
		{
			"assigned developer in development",
			request("REQ-001", domain.StatusInDevelopment, func(r *domain.Request) { r.AssignedDevelopers = []string{"u2"} }),
			domain.RoleDeveloper, "u2", true,
		},
		{
			"unassigned developer in development",
			request("REQ-001", domain.StatusInDevelopment, func(r *domain.Request) { r.AssignedDevelopers = []string{"u2"} }),
			domain.RoleDeveloper, "u3", false,
		},
		{
			"manager approval queue",
			request("REQ-001", domain.StatusPendingManagerApproval, nil),
			domain.RoleLineManager, "u1", true,
		},
		{
			"manager test case review",
			request("REQ-001", domain.StatusManagerReviewTestCases, nil),
			domain.RoleLineManager, "u1", true,
		},
		{
			"requestor awaiting approval",
			request("REQ-001", domain.StatusPendingUserApproval, func(r *domain.Request) { r.Requestors = []string{"u4"} }),
			domain.RoleEndUser, "u4", true,
		},
		{
			"requestor at uat signoff",
			request("REQ-001", domain.StatusUATSignoff, func(r *domain.Request) { r.Requestors = []string{"u4"} }),
			domain.RoleEndUser, "u4", true,
		},
		{
			"non-requestor end user",
			request("REQ-001", domain.StatusUATSignoff, func(r *domain.Request) { r.Requestors = []string{"u4"} }),
			domain.RoleEndUser, "u5", false,
		},
		{
			"devops never has a queue",
			request("REQ-001", domain.StatusCABReview, nil),
			domain.RoleDevOps, "u7", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PendingAction(tt.req, tt.role, tt.userID))
		})
	}
}

func TestOverdueAndDormantExcludeClosed(t *testing.T) {
	overdue := request("REQ-001", domain.StatusCompleted, func(r *domain.Request) {
		r.DueDate = metricsNow.Add(-24 * time.Hour)
	})
	assert.False(t, Overdue(overdue, metricsNow))

	stale := request("REQ-002", domain.StatusCancelled, func(r *domain.Request) {
		r.UpdatedAt = metricsNow.Add(-60 * 24 * time.Hour)
	})
	assert.False(t, Dormant(stale, metricsNow))

	// rejected requests still show up as overdue
	rejected := request("REQ-003", domain.StatusRejected, func(r *domain.Request) {
		r.DueDate = metricsNow.Add(-24 * time.Hour)
	})
	assert.True(t, Overdue(rejected, metricsNow))
}

func TestTopSystem(t *testing.T) {
	reqs := []domain.Request{
		request("REQ-001", domain.StatusInDevelopment, nil),
		request("REQ-002", domain.StatusInDevelopment, func(r *domain.Request) { r.System = "Inventory System" }),
		request("REQ-003", domain.StatusUATRelease, func(r *domain.Request) { r.System = "Inventory System" }),
		// terminal requests do not count
		request("REQ-004", domain.StatusCompleted, nil),
		request("REQ-005", domain.StatusCompleted, nil),
	}

	assert.Equal(t, "Inventory System", TopSystem(reqs))
}

func TestTopSystemTieGoesToFirstEncountered(t *testing.T) {
	reqs := []domain.Request{
		request("REQ-001", domain.StatusInDevelopment, func(r *domain.Request) { r.System = "Inventory System" }),
		request("REQ-002", domain.StatusInDevelopment, nil),
	}

	assert.Equal(t, "Inventory System", TopSystem(reqs))
	assert.Empty(t, TopSystem(nil))
}

func TestDueWithin(t *testing.T) {
	reqs := []domain.Request{
		request("REQ-001", domain.StatusInDevelopment, func(r *domain.Request) {
			r.DueDate = metricsNow.Add(3 * 24 * time.Hour)
		}),
		request("REQ-002", domain.StatusInDevelopment, func(r *domain.Request) {
			r.DueDate = metricsNow.Add(10 * 24 * time.Hour)
		}),
		// already overdue, not "due soon"
		request("REQ-003", domain.StatusInDevelopment, func(r *domain.Request) {
			r.DueDate = metricsNow.Add(-24 * time.Hour)
		}),
		request("REQ-004", domain.StatusCompleted, func(r *domain.Request) {
			r.DueDate = metricsNow.Add(3 * 24 * time.Hour)
		}),
	}

	got := DueWithin(reqs, 7, metricsNow)
	assert.Len(t, got, 1)
	assert.Equal(t, "REQ-001", got[0].ID)
}

func TestDashboardView(t *testing.T) {
	reqs := []domain.Request{
		request("REQ-001", domain.StatusInDevelopment, func(r *domain.Request) { r.AssignedDevelopers = []string{"u2"} }),
		request("REQ-002", domain.StatusPendingManagerApproval, func(r *domain.Request) { r.LineManager = "u9" }),
		request("REQ-003", domain.StatusUATSignoff, func(r *domain.Request) { r.Requestors = []string{"u5"} }),
		request("REQ-004", domain.StatusCompleted, func(r *domain.Request) { r.LineManager = "u1" }),
	}

	ids := func(got []domain.Request) []string {
		out := make([]string, 0, len(got))
		for _, r := range got {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"REQ-001"}, ids(DashboardView(reqs, domain.RoleDeveloper, "u2")))
	assert.Equal(t, []string{"REQ-002", "REQ-004"}, ids(DashboardView(reqs, domain.RoleLineManager, "u1")))
	// end users see their own requests plus anything waiting on UAT
	assert.Equal(t, []string{"REQ-003"}, ids(DashboardView(reqs, domain.RoleEndUser, "u4")))
	assert.Len(t, DashboardView(reqs, domain.RoleDevOps, "u7"), 4)
}
