package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"request-tracker/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeIDs struct {
	requests  int
	testCases int
	comments  int
	releases  int
}

func (g *fakeIDs) RequestID() string {
	g.requests++
	return fmt.Sprintf("REQ-%03d", g.requests)
}

func (g *fakeIDs) TestCaseID() string {
	g.testCases++
	return fmt.Sprintf("tc-%d", g.testCases)
}

func (g *fakeIDs) CommentID() string {
	g.comments++
	return fmt.Sprintf("c-%d", g.comments)
}

func (g *fakeIDs) ReleaseID() string {
	g.releases++
	return fmt.Sprintf("r-%d", g.releases)
}

var (
	manager   = domain.User{ID: "u1", Name: "John Smith", Role: domain.RoleLineManager}
	developer = domain.User{ID: "u2", Name: "Sarah Johnson", Role: domain.RoleDeveloper}
	secondDev = domain.User{ID: "u3", Name: "Mike Chen", Role: domain.RoleDeveloper}
	endUser   = domain.User{ID: "u4", Name: "Emily Davis", Role: domain.RoleEndUser}
	otherUser = domain.User{ID: "u5", Name: "Robert Wilson", Role: domain.RoleEndUser}
)

var testScenarios = []domain.SystemScenario{
	{ID: "sc1", SystemName: "CRM System", ScenarioName: "User Login", Description: "Verify user can login with valid credentials"},
	{ID: "sc2", SystemName: "CRM System", ScenarioName: "Create Contact", Description: "Verify user can create a new contact"},
	{ID: "sc4", SystemName: "Inventory System", ScenarioName: "Add Product", Description: "Verify user can add a new product to inventory"},
}

func newTestEngine() (*Engine, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	directory := NewStaticDirectory([]domain.User{manager, developer, secondDev, endUser, otherUser})
	catalog := NewStaticCatalog(testScenarios)
	return NewEngine(Standard, clock, &fakeIDs{}, directory, catalog), clock
}

func validCreate() CreateRequest {
	return CreateRequest{
		Title:               "Add export functionality to reports",
		Description:         "Users need ability to export reports to Excel",
		Type:                domain.TypeEnhancement,
		Priority:            domain.PriorityHigh,
		System:              "CRM System",
		ImplementationScope: "Add export buttons to all report pages",
		Requestors:          []string{"u4"},
		LineManager:         "u1",
		DueDate:             time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	engine, clock := newTestEngine()

	req, ev, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	assert.Equal(t, "REQ-001", req.ID)
	assert.Equal(t, domain.StatusPendingManagerApproval, req.Status)
	assert.Equal(t, []string{"Emily Davis"}, req.RequestorNames)
	assert.Equal(t, "John Smith", req.LineManagerName)
	assert.Equal(t, clock.now, req.CreatedAt)

	require.Len(t, req.StatusHistory, 1)
	assert.Equal(t, domain.StatusPendingManagerApproval, req.StatusHistory[0].Status)
	assert.Equal(t, "Request created", req.StatusHistory[0].Comment)

	require.NotNil(t, ev)
	assert.Empty(t, ev.From)
	assert.Equal(t, domain.StatusPendingManagerApproval, ev.To)
	assert.Equal(t, endUser.ID, ev.ActorID)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"empty title", func(p *CreateRequest) { p.Title = "  " }, "title"},
		{"empty description", func(p *CreateRequest) { p.Description = "" }, "description"},
		{"empty scope", func(p *CreateRequest) { p.ImplementationScope = "" }, "implementation_scope"},
		{"unknown type", func(p *CreateRequest) { p.Type = "feature" }, "type"},
		{"unknown priority", func(p *CreateRequest) { p.Priority = "critical" }, "priority"},
		{"bug_fix must be emergency", func(p *CreateRequest) {
			p.Type = domain.TypeBugFix
			p.Priority = domain.PriorityHigh
		}, "priority"},
		{"no requestors", func(p *CreateRequest) { p.Requestors = nil }, "requestors"},
		{"zero due date", func(p *CreateRequest) { p.DueDate = time.Time{} }, "due_date"},
		{"line manager wrong role", func(p *CreateRequest) { p.LineManager = "u2" }, "line_manager"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine()
			p := validCreate()
			tt.mutate(&p)

			req, ev, err := engine.Create(endUser, p)
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Zero(t, req)
			assert.Nil(t, ev)
		})
	}
}

func TestCreateUnknownUsers(t *testing.T) {
	engine, _ := newTestEngine()

	p := validCreate()
	p.Requestors = []string{"u4", "u99"}
	_, _, err := engine.Create(endUser, p)
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "u99", notFoundErr.ID)

	p = validCreate()
	p.LineManager = "u99"
	_, _, err = engine.Create(endUser, p)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestBugFixEmergencyAllowed(t *testing.T) {
	engine, _ := newTestEngine()

	p := validCreate()
	p.Type = domain.TypeBugFix
	p.Priority = domain.PriorityEmergency

	req, _, err := engine.Create(endUser, p)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeBugFix, req.Type)
}

// advance replays an action and fails the test on any error.
func advance(t *testing.T, engine *Engine, req domain.Request, actor domain.User, action Action) domain.Request {
	t.Helper()
	next, _, err := engine.Apply(req, actor, action)
	require.NoError(t, err)
	return next
}

func createAndApprove(t *testing.T, engine *Engine) domain.Request {
	t.Helper()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	req = advance(t, engine, req, manager, ManagerDecision{Approve: true, Developers: []string{"u2"}})
	req = advance(t, engine, req, endUser, UserDecision{Approve: true})
	return req
}

func TestFullLifecycle(t *testing.T) {
	engine, clock := newTestEngine()

	req := createAndApprove(t, engine)
	assert.Equal(t, domain.StatusUserApproved, req.Status)
	assert.Equal(t, []string{"Sarah Johnson"}, req.AssignedDeveloperNames)

	clock.Advance(time.Hour)
	req = advance(t, engine, req, developer, SubmitTestCases{
		CustomTestCases: "Export to Excel works\n\nExport to PDF works\n",
		ScenarioIDs:     []string{"sc1"},
		ImpactAnalysis:  "Report pages only, no schema changes",
	})
	assert.Equal(t, domain.StatusManagerReviewTestCases, req.Status)
	require.Len(t, req.TestCases, 3)
	assert.Equal(t, "Export to Excel works", req.TestCases[0].Description)
	assert.True(t, req.TestCases[2].IsPreDefined)
	assert.Equal(t, "sc1", req.TestCases[2].SystemScenarioID)

	req = advance(t, engine, req, manager, ReviewTestCases{Approve: true})
	req = advance(t, engine, req, developer, SubmitDesign{ArchitectureDesign: "Export service behind the report controller"})
	assert.Equal(t, domain.StatusInDevelopment, req.Status)

	// First release moves to uat_release, the second only accumulates.
	req, ev, err := engine.Apply(req, developer, AddRelease{
		Type: domain.ReleaseBinary, RFCCode: "ize-1001", Description: "Export module v1",
	})
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, domain.StatusUATRelease, req.Status)

	historyBefore := len(req.StatusHistory)
	req, ev, err = engine.Apply(req, developer, AddRelease{
		Type: domain.ReleaseDatabase, RFCCode: "ize-1002", Description: "Export audit table",
	})
	require.NoError(t, err)
	assert.Nil(t, ev)
	assert.Equal(t, domain.StatusUATRelease, req.Status)
	assert.Len(t, req.StatusHistory, historyBefore)
	assert.Len(t, req.Releases, 2)

	req = advance(t, engine, req, developer, SubmitForSignoff{})
	assert.Equal(t, domain.StatusUATSignoff, req.Status)

	grades := make(map[string]TestCaseGrade, len(req.TestCases))
	for _, tc := range req.TestCases {
		grades[tc.ID] = TestCaseGrade{Status: domain.TestCasePassed}
	}
	req = advance(t, engine, req, endUser, CompleteSignoff{Grades: grades})
	assert.Equal(t, domain.StatusCABReview, req.Status)
	for _, tc := range req.TestCases {
		assert.Equal(t, domain.TestCasePassed, tc.Status)
		assert.Equal(t, endUser.ID, tc.TestedBy)
		require.NotNil(t, tc.TestedAt)
	}

	req = advance(t, engine, req, developer, ReleaseToProduction{})
	assert.Equal(t, domain.StatusProductionRelease, req.Status)

	req = advance(t, engine, req, developer, CompleteRequest{
		Review:       "Shipped without incident",
		ReleaseNotes: "Adds Excel and PDF export to all reports",
	})
	assert.Equal(t, domain.StatusCompleted, req.Status)
	assert.True(t, req.Status.Terminal())

	// History statuses follow the exact path taken.
	var path []domain.Status
	for _, h := range req.StatusHistory {
		path = append(path, h.Status)
	}
	assert.Equal(t, []domain.Status{
		domain.StatusPendingManagerApproval,
		domain.StatusPendingUserApproval,
		domain.StatusUserApproved,
		domain.StatusManagerReviewTestCases,
		domain.StatusPendingDesignReview,
		domain.StatusInDevelopment,
		domain.StatusUATRelease,
		domain.StatusUATSignoff,
		domain.StatusCABReview,
		domain.StatusProductionRelease,
		domain.StatusCompleted,
	}, path)
	assert.Equal(t, req.Status, req.StatusHistory[len(req.StatusHistory)-1].Status)
}

func TestManagerReject(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	req = advance(t, engine, req, manager, ManagerDecision{Approve: false, Comment: "Not in scope this quarter"})
	assert.Equal(t, domain.StatusRejected, req.Status)
	assert.True(t, req.Status.Terminal())
	assert.Equal(t, "Not in scope this quarter", req.StatusHistory[1].Comment)

	// Nothing moves a terminal request.
	_, _, err = engine.Apply(req, manager, ManagerDecision{Approve: true, Developers: []string{"u2"}})
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}

func TestManagerApproveValidation(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	_, _, err = engine.Apply(req, manager, ManagerDecision{Approve: true})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "developers", validationErr.Field)

	_, _, err = engine.Apply(req, manager, ManagerDecision{Approve: true, Developers: []string{"u4"}})
	require.ErrorAs(t, err, &validationErr)

	_, _, err = engine.Apply(req, manager, ManagerDecision{Approve: true, Developers: []string{"u99"}})
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestManagerApproveAssignsAllDevelopers(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	req = advance(t, engine, req, manager, ManagerDecision{Approve: true, Developers: []string{"u2", "u3"}})
	assert.Equal(t, domain.StatusPendingUserApproval, req.Status)
	assert.Equal(t, []string{"u2", "u3"}, req.AssignedDevelopers)
	assert.Equal(t, []string{"Sarah Johnson", "Mike Chen"}, req.AssignedDeveloperNames)
	assert.Len(t, req.StatusHistory, 2)
}

func TestUserReject(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)
	req = advance(t, engine, req, manager, ManagerDecision{Approve: true, Developers: []string{"u2"}})

	req = advance(t, engine, req, endUser, UserDecision{Approve: false, Comment: "Wrong scope"})
	assert.Equal(t, domain.StatusUserRejected, req.Status)
	assert.True(t, req.Status.Terminal())
}

func TestRoleGating(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	tests := []struct {
		name   string
		actor  domain.User
		action Action
	}{
		{"developer cannot decide for manager", developer, ManagerDecision{Approve: true, Developers: []string{"u2"}}},
		{"end user cannot submit test cases", endUser, SubmitTestCases{ImpactAnalysis: "x"}},
		{"manager cannot release", manager, AddRelease{Type: domain.ReleaseBinary, RFCCode: "ize-1", Description: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := engine.Apply(req, tt.actor, tt.action)
			var authErr *domain.AuthorizationError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.actor.ID, authErr.ActorID)
		})
	}
}

// The authorization check runs before state validity: a wrong-role actor
// in a wrong state still gets the authorization error.
func TestAuthorizationBeforeStateValidity(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	_, _, err = engine.Apply(req, developer, UserDecision{Approve: true})
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	_, _, err = engine.Apply(req, endUser, UserDecision{Approve: true})
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}

func TestRelationshipGating(t *testing.T) {
	engine, _ := newTestEngine()
	req := createAndApprove(t, engine)

	// Mike is a developer but not assigned to this request.
	_, _, err := engine.Apply(req, secondDev, SubmitTestCases{ImpactAnalysis: "x"})
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "u3", authErr.ActorID)

	// Robert is an end user but not a requestor.
	req2, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)
	req2 = advance(t, engine, req2, manager, ManagerDecision{Approve: true, Developers: []string{"u2"}})
	_, _, err = engine.Apply(req2, otherUser, UserDecision{Approve: true})
	require.ErrorAs(t, err, &authErr)
}

func TestRejectedActionLeavesInputUntouched(t *testing.T) {
	engine, _ := newTestEngine()
	req := createAndApprove(t, engine)
	snapshot := req.Clone()

	got, ev, err := engine.Apply(req, developer, SubmitTestCases{
		CustomTestCases: "case one",
		ScenarioIDs:     []string{"sc99"},
		ImpactAnalysis:  "some impact",
	})
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Zero(t, got)
	assert.Nil(t, ev)
	assert.Equal(t, snapshot, req)
}

func TestSubmitTestCasesScenarioScoping(t *testing.T) {
	engine, _ := newTestEngine()
	req := createAndApprove(t, engine)

	// sc4 exists but belongs to the Inventory System catalog.
	_, _, err := engine.Apply(req, developer, SubmitTestCases{
		ScenarioIDs:    []string{"sc4"},
		ImpactAnalysis: "x",
	})
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "sc4", notFoundErr.ID)
}

func TestSubmitTestCasesRequiresImpactAnalysis(t *testing.T) {
	engine, _ := newTestEngine()
	req := createAndApprove(t, engine)

	_, _, err := engine.Apply(req, developer, SubmitTestCases{CustomTestCases: "case one"})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "impact_analysis", validationErr.Field)
}

func TestAddReleaseValidation(t *testing.T) {
	engine, _ := newTestEngine()
	req := createAndApprove(t, engine)
	req = advance(t, engine, req, developer, SubmitTestCases{CustomTestCases: "case one", ImpactAnalysis: "minimal"})
	req = advance(t, engine, req, manager, ReviewTestCases{Approve: true})
	req = advance(t, engine, req, developer, SubmitDesign{ArchitectureDesign: "design"})

	tests := []struct {
		name   string
		action AddRelease
		field  string
	}{
		{"unknown type", AddRelease{Type: "hotfix", RFCCode: "ize-1", Description: "d"}, "type"},
		{"empty rfc code", AddRelease{Type: domain.ReleaseBinary, Description: "d"}, "rfc_code"},
		{"empty description", AddRelease{Type: domain.ReleaseBinary, RFCCode: "ize-1"}, "description"},
		{"unknown status", AddRelease{Type: domain.ReleaseBinary, RFCCode: "ize-1", Description: "d", Status: "rolled_back"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := engine.Apply(req, developer, tt.action)
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	// an empty status is fine, the field is optional
	got := advance(t, engine, req, developer, AddRelease{Type: domain.ReleaseBinary, RFCCode: "ize-1", Description: "d"})
	assert.Equal(t, domain.StatusUATRelease, got.Status)

	// and so is any known value
	got = advance(t, engine, got, developer, AddRelease{
		Type: domain.ReleaseDatabase, RFCCode: "ize-2", Description: "d", Status: domain.ReleaseConcluded,
	})
	assert.Equal(t, domain.ReleaseConcluded, got.Releases[1].Status)
}

func TestReviewTestCasesReject(t *testing.T) {
	engine, _ := newTestEngine()
	req := createAndApprove(t, engine)
	req = advance(t, engine, req, developer, SubmitTestCases{
		CustomTestCases: "case one",
		ImpactAnalysis:  "minimal",
	})

	req = advance(t, engine, req, manager, ReviewTestCases{Approve: false})
	assert.Equal(t, domain.StatusRejected, req.Status)
	assert.Equal(t, "Test cases rejected", req.StatusHistory[len(req.StatusHistory)-1].Comment)
}

func toSignoff(t *testing.T, engine *Engine) domain.Request {
	t.Helper()
	req := createAndApprove(t, engine)
	req = advance(t, engine, req, developer, SubmitTestCases{
		CustomTestCases: "case one\ncase two",
		ImpactAnalysis:  "minimal",
	})
	req = advance(t, engine, req, manager, ReviewTestCases{Approve: true})
	req = advance(t, engine, req, developer, SubmitDesign{ArchitectureDesign: "design"})
	req = advance(t, engine, req, developer, AddRelease{Type: domain.ReleaseBinary, RFCCode: "ize-1", Description: "d"})
	req = advance(t, engine, req, developer, SubmitForSignoff{})
	return req
}

func TestPromoteToCAB(t *testing.T) {
	engine, _ := newTestEngine()
	req := toSignoff(t, engine)

	// other developers cannot promote, only assigned ones
	_, _, err := engine.Apply(req, secondDev, PromoteToCAB{})
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "u3", authErr.ActorID)

	historyLen := len(req.StatusHistory)
	req = advance(t, engine, req, developer, PromoteToCAB{Comment: "Skipping formal sign-off, change board requested early review"})
	assert.Equal(t, domain.StatusCABReview, req.Status)
	require.Len(t, req.StatusHistory, historyLen+1)
	assert.Equal(t, domain.StatusCABReview, req.StatusHistory[historyLen].Status)
	assert.Equal(t, "Skipping formal sign-off, change board requested early review", req.StatusHistory[historyLen].Comment)

	// promoting again from cab_review is a self-loop that still records
	// a history entry
	req = advance(t, engine, req, developer, PromoteToCAB{})
	assert.Equal(t, domain.StatusCABReview, req.Status)
	require.Len(t, req.StatusHistory, historyLen+2)
	assert.Equal(t, "Promoted to CAB review", req.StatusHistory[historyLen+1].Comment)

	// and the request can still move on to production
	req = advance(t, engine, req, developer, ReleaseToProduction{})
	assert.Equal(t, domain.StatusProductionRelease, req.Status)
}

func TestCompleteSignoffJustification(t *testing.T) {
	engine, _ := newTestEngine()
	req := toSignoff(t, engine)

	grades := map[string]TestCaseGrade{
		req.TestCases[0].ID: {Status: domain.TestCasePassed},
		req.TestCases[1].ID: {Status: domain.TestCaseFailed, Comment: "Broken on PDF"},
	}

	_, _, err := engine.Apply(req, endUser, CompleteSignoff{Grades: grades})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "justification", validationErr.Field)

	got := advance(t, engine, req, endUser, CompleteSignoff{
		Grades:        grades,
		Justification: "PDF export is non-blocking, fix scheduled",
	})
	assert.Equal(t, domain.StatusCABReview, got.Status)
	assert.Equal(t, "PDF export is non-blocking, fix scheduled", got.UserApprovalJustification)

	last := got.StatusHistory[len(got.StatusHistory)-1]
	assert.Contains(t, last.Comment, "justification: PDF export is non-blocking")
}

func TestCompleteSignoffPartialGrading(t *testing.T) {
	engine, _ := newTestEngine()
	req := toSignoff(t, engine)

	got := advance(t, engine, req, endUser, CompleteSignoff{
		Grades: map[string]TestCaseGrade{
			req.TestCases[0].ID: {Status: domain.TestCasePassed},
		},
	})

	assert.Equal(t, domain.TestCasePassed, got.TestCases[0].Status)
	assert.Equal(t, domain.TestCasePending, got.TestCases[1].Status)
	assert.Empty(t, got.TestCases[1].TestedBy)
}

func TestCompleteSignoffUnknownTestCase(t *testing.T) {
	engine, _ := newTestEngine()
	req := toSignoff(t, engine)

	_, _, err := engine.Apply(req, endUser, CompleteSignoff{
		Grades: map[string]TestCaseGrade{"tc-999": {Status: domain.TestCasePassed}},
	})
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "tc-999", notFoundErr.ID)
}

func TestCompleteRequestValidation(t *testing.T) {
	engine, _ := newTestEngine()
	req := toSignoff(t, engine)

	grades := map[string]TestCaseGrade{
		req.TestCases[0].ID: {Status: domain.TestCasePassed},
		req.TestCases[1].ID: {Status: domain.TestCasePassed},
	}
	req = advance(t, engine, req, endUser, CompleteSignoff{Grades: grades})
	req = advance(t, engine, req, developer, ReleaseToProduction{})

	_, _, err := engine.Apply(req, developer, CompleteRequest{ReleaseNotes: "notes"})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "review", validationErr.Field)

	_, _, err = engine.Apply(req, developer, CompleteRequest{Review: "review"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "release_notes", validationErr.Field)
}

func TestAddComment(t *testing.T) {
	engine, clock := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)

	historyLen := len(req.StatusHistory)
	clock.Advance(time.Minute)

	got, ev, err := engine.Apply(req, secondDev, AddComment{Text: "Looking at this now"})
	require.NoError(t, err)
	assert.Nil(t, ev)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Looking at this now", got.Comments[0].Content)
	assert.Equal(t, secondDev.ID, got.Comments[0].UserID)
	assert.Len(t, got.StatusHistory, historyLen)
	assert.Equal(t, clock.now, got.UpdatedAt)

	_, _, err = engine.Apply(req, secondDev, AddComment{Text: "  "})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAddCommentOnTerminalRequest(t *testing.T) {
	engine, _ := newTestEngine()
	req, _, err := engine.Create(endUser, validCreate())
	require.NoError(t, err)
	req = advance(t, engine, req, manager, ManagerDecision{Approve: false})

	_, _, err = engine.Apply(req, developer, AddComment{Text: "too late"})
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}

// Two engines with identical injected deps replay the same inputs to the
// same snapshots.
func TestDeterministicReplay(t *testing.T) {
	run := func() domain.Request {
		engine, _ := newTestEngine()
		req := createAndApprove(t, engine)
		return advance(t, engine, req, developer, SubmitTestCases{
			CustomTestCases: "case one",
			ScenarioIDs:     []string{"sc1", "sc2"},
			ImpactAnalysis:  "minimal",
		})
	}

	assert.Equal(t, run(), run())
}
