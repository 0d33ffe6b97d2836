package lifecycle

import "request-tracker/internal/domain"

// Action is a closed union of lifecycle action payloads. Each action is
// dispatched through a type switch in Engine.Apply, so adding a variant
// without handling it there fails at the workflow table lookup.
type Action interface {
	name() string
}

// ManagerDecision approves (assigning developers) or rejects a request
// waiting for line manager approval.
type ManagerDecision struct {
	Approve    bool
	Developers []string
	Comment    string
}

// UserDecision is the requestor's approve/reject at pending_user_approval.
type UserDecision struct {
	Approve bool
	Comment string
}

// SubmitTestCases carries the developer's free-text test cases (one per
// line), selected catalog scenario ids and the impact analysis.
type SubmitTestCases struct {
	CustomTestCases string
	ScenarioIDs     []string
	ImpactAnalysis  string
	Comment         string
}

// ReviewTestCases is the line manager's approve/reject of submitted test
// cases and impact analysis.
type ReviewTestCases struct {
	Approve bool
	Comment string
}

// SubmitDesign records the architecture design and optional design review
// text, moving the request into development.
type SubmitDesign struct {
	ArchitectureDesign string
	DesignReview       string
	Comment            string
}

// AddRelease appends a release record. The first release of a request in
// development also moves it to uat_release.
type AddRelease struct {
	Type        domain.ReleaseType
	RFCCode     string
	Description string
	IsManual    bool
	Status      domain.ReleaseStatus
}

// SubmitForSignoff hands the request over to the requestors for UAT.
type SubmitForSignoff struct {
	Comment string
}

// TestCaseGrade is the sign-off verdict for a single test case.
type TestCaseGrade struct {
	Status  domain.TestCaseStatus
	Comment string
}

// CompleteSignoff grades the test cases keyed by test case id. When any
// grade is failed or partially_passed a non-empty justification is
// required.
type CompleteSignoff struct {
	Grades        map[string]TestCaseGrade
	Justification string
	Comment       string
}

// PromoteToCAB moves the request into change advisory board review.
type PromoteToCAB struct {
	Comment string
}

// ReleaseToProduction moves the request out of CAB review.
type ReleaseToProduction struct {
	Comment string
}

// CompleteRequest closes the request with a post-implementation review
// and release notes.
type CompleteRequest struct {
	Review       string
	ReleaseNotes string
	Comment      string
}

// AddComment appends a collaboration comment. It never touches the
// status history.
type AddComment struct {
	Text string
}

func (ManagerDecision) name() string     { return "manager decision" }
func (UserDecision) name() string        { return "user decision" }
func (SubmitTestCases) name() string     { return "submit test cases" }
func (ReviewTestCases) name() string     { return "review test cases" }
func (SubmitDesign) name() string        { return "submit design" }
func (AddRelease) name() string          { return "add release" }
func (SubmitForSignoff) name() string    { return "submit for signoff" }
func (CompleteSignoff) name() string     { return "complete signoff" }
func (PromoteToCAB) name() string        { return "promote to cab" }
func (ReleaseToProduction) name() string { return "release to production" }
func (CompleteRequest) name() string     { return "complete request" }
func (AddComment) name() string          { return "add comment" }
