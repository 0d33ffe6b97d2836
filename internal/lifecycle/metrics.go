package lifecycle

import (
	"time"

	"request-tracker/internal/domain"
)

// dormantAfter is how long a request can sit without updates before it
// counts as dormant.
const dormantAfter = 30 * 24 * time.Hour

// Gauges are the dashboard counters, recomputed on demand.
type Gauges struct {
	Ongoing        int `json:"ongoing"`
	PendingActions int `json:"pending_actions"`
	Overdue        int `json:"overdue"`
	Dormant        int `json:"dormant"`
	Emergency      int `json:"emergency"`
}

func ComputeGauges(reqs []domain.Request, role domain.Role, userID string, now time.Time) Gauges {
	var g Gauges
	for _, r := range reqs {
		if Ongoing(r) {
			g.Ongoing++
		}
		if PendingAction(r, role, userID) {
			g.PendingActions++
		}
		if Overdue(r, now) {
			g.Overdue++
		}
		if Dormant(r, now) {
			g.Dormant++
		}
		if r.Priority == domain.PriorityEmergency {
			g.Emergency++
		}
	}
	return g
}

func Ongoing(r domain.Request) bool {
	return r.Status != domain.StatusCompleted &&
		r.Status != domain.StatusRejected &&
		r.Status != domain.StatusCancelled
}

// PendingAction reports whether the request currently waits on the given
// role/user to act.
func PendingAction(r domain.Request, role domain.Role, userID string) bool {
	switch role {
	case domain.RoleDeveloper:
		if !r.IsAssignedDeveloper(userID) {
			return false
		}
		return r.Status == domain.StatusUserApproved ||
			r.Status == domain.StatusInDevelopment ||
			r.Status == domain.StatusUATRelease
	case domain.RoleLineManager:
		return r.Status == domain.StatusPendingManagerApproval ||
			r.Status == domain.StatusManagerReviewTestCases
	case domain.RoleEndUser:
		if !r.IsRequestor(userID) {
			return false
		}
		return r.Status == domain.StatusPendingUserApproval ||
			r.Status == domain.StatusUATSignoff
	}
	return false
}

func Overdue(r domain.Request, now time.Time) bool {
	return !r.DueDate.IsZero() && r.DueDate.Before(now) &&
		r.Status != domain.StatusCompleted && r.Status != domain.StatusCancelled
}

func Dormant(r domain.Request, now time.Time) bool {
	return now.Sub(r.UpdatedAt) > dormantAfter &&
		r.Status != domain.StatusCompleted && r.Status != domain.StatusCancelled
}

// TopSystem returns the system with the most non-terminal requests.
// Ties go to whichever system was encountered first.
func TopSystem(reqs []domain.Request) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range reqs {
		if r.System == "" || r.Status.Terminal() {
			continue
		}
		if _, seen := counts[r.System]; !seen {
			order = append(order, r.System)
		}
		counts[r.System]++
	}

	var top string
	var best int
	for _, s := range order {
		if counts[s] > best {
			top = s
			best = counts[s]
		}
	}
	return top
}

// DueWithin returns requests due inside [now, now+days] that are still
// open.
func DueWithin(reqs []domain.Request, days int, now time.Time) []domain.Request {
	limit := now.Add(time.Duration(days) * 24 * time.Hour)
	var out []domain.Request
	for _, r := range reqs {
		if r.Status == domain.StatusCompleted || r.Status == domain.StatusCancelled {
			continue
		}
		if r.DueDate.IsZero() || r.DueDate.Before(now) || r.DueDate.After(limit) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DashboardView narrows the collection to what the role's dashboard
// shows: developers see their assignments, managers their approval queue
// plus their own reports, end users their own requests plus anything in
// UAT sign-off.
func DashboardView(reqs []domain.Request, role domain.Role, userID string) []domain.Request {
	var out []domain.Request
	for _, r := range reqs {
		switch role {
		case domain.RoleDeveloper:
			if r.IsAssignedDeveloper(userID) {
				out = append(out, r)
			}
		case domain.RoleLineManager:
			if r.Status == domain.StatusPendingManagerApproval ||
				r.Status == domain.StatusManagerReviewTestCases ||
				r.LineManager == userID {
				out = append(out, r)
			}
		case domain.RoleEndUser:
			if r.IsRequestor(userID) || r.Status == domain.StatusUATSignoff {
				out = append(out, r)
			}
		default:
			out = append(out, r)
		}
	}
	return out
}
