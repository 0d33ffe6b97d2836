package lifecycle

import (
	"strings"
	"time"

	"request-tracker/internal/domain"
)

// TransitionEvent is emitted for every state-changing action so a
// collaborator can fan out notifications. Comment-only actions and
// repeat releases emit nothing.
type TransitionEvent struct {
	RequestID    string
	RequestTitle string
	Action       string
	From         domain.Status
	To           domain.Status
	ActorID      string
	At           time.Time
}

// Engine validates and applies lifecycle actions to request snapshots.
// Every operation is a pure function over the caller-supplied snapshot:
// it either returns a new snapshot or rejects with the input untouched.
// Concurrency control between competing writers is the caller's problem.
type Engine struct {
	workflow  WorkflowDefinition
	clock     Clock
	ids       IDGenerator
	directory Directory
	catalog   Catalog
}

func NewEngine(w WorkflowDefinition, clock Clock, ids IDGenerator, directory Directory, catalog Catalog) *Engine {
	return &Engine{
		workflow:  w,
		clock:     clock,
		ids:       ids,
		directory: directory,
		catalog:   catalog,
	}
}

type CreateRequest struct {
	Title               string
	Description         string
	Type                domain.RequestType
	Priority            domain.Priority
	System              string
	ImplementationScope string
	Requestors          []string
	LineManager         string
	DueDate             time.Time
}

const createAction = "create request"

// Create builds the initial snapshot in pending_manager_approval with a
// single history entry. A bug_fix must carry emergency priority.
func (e *Engine) Create(actor domain.User, p CreateRequest) (domain.Request, *TransitionEvent, error) {
	if strings.TrimSpace(p.Title) == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Description) == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "description", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.ImplementationScope) == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "implementation_scope", Reason: "must not be empty"}
	}
	if !p.Type.Valid() {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "type", Reason: "unknown request type"}
	}
	if !p.Priority.Valid() {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "priority", Reason: "unknown priority"}
	}
	if p.Type == domain.TypeBugFix && p.Priority != domain.PriorityEmergency {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "priority", Reason: "bug_fix requests must be emergency priority"}
	}
	if len(p.Requestors) == 0 {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "requestors", Reason: "at least one requestor is required"}
	}
	if p.DueDate.IsZero() {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "due_date", Reason: "must be set"}
	}

	requestorNames := make([]string, 0, len(p.Requestors))
	for _, id := range p.Requestors {
		u, ok := e.directory.User(id)
		if !ok {
			return domain.Request{}, nil, &domain.NotFoundError{Resource: "user", ID: id}
		}
		requestorNames = append(requestorNames, u.Name)
	}

	manager, ok := e.directory.User(p.LineManager)
	if !ok {
		return domain.Request{}, nil, &domain.NotFoundError{Resource: "user", ID: p.LineManager}
	}
	if manager.Role != domain.RoleLineManager {
		return domain.Request{}, nil, &domain.ValidationError{Action: createAction, Field: "line_manager", Reason: "user is not a line manager"}
	}

	now := e.clock.Now()
	req := domain.Request{
		ID:                  e.ids.RequestID(),
		Title:               p.Title,
		Description:         p.Description,
		Type:                p.Type,
		Priority:            p.Priority,
		System:              p.System,
		Status:              domain.StatusPendingManagerApproval,
		Requestors:          append([]string(nil), p.Requestors...),
		RequestorNames:      requestorNames,
		CreatedBy:           actor.ID,
		CreatedByName:       actor.Name,
		LineManager:         manager.ID,
		LineManagerName:     manager.Name,
		ImplementationScope: p.ImplementationScope,
		TestCases:           []domain.TestCase{},
		Releases:            []domain.Release{},
		Comments:            []domain.Comment{},
		Attachments:         []domain.Attachment{},
		CreatedAt:           now,
		UpdatedAt:           now,
		DueDate:             p.DueDate,
		StatusHistory: []domain.StatusChange{{
			Status:        domain.StatusPendingManagerApproval,
			ChangedBy:     actor.ID,
			ChangedByName: actor.Name,
			ChangedAt:     now,
			Comment:       "Request created",
		}},
	}

	ev := &TransitionEvent{
		RequestID:    req.ID,
		RequestTitle: req.Title,
		Action:       createAction,
		To:           domain.StatusPendingManagerApproval,
		ActorID:      actor.ID,
		At:           now,
	}

	return req, ev, nil
}

// Apply validates role gating, transition validity and the action's
// guards, in that order, then returns the mutated snapshot. A nil event
// means the action changed no state (comments, repeat releases).
func (e *Engine) Apply(req domain.Request, actor domain.User, action Action) (domain.Request, *TransitionEvent, error) {
	r, ok := e.workflow.rule(action.name())
	if !ok {
		return domain.Request{}, nil, &domain.InvalidTransitionError{Action: action.name(), Status: req.Status}
	}
	if err := r.authorize(req, actor, action.name()); err != nil {
		return domain.Request{}, nil, err
	}
	if !r.allowsFrom(req.Status) {
		return domain.Request{}, nil, &domain.InvalidTransitionError{Action: action.name(), Status: req.Status}
	}

	next := req.Clone()
	now := e.clock.Now()

	switch a := action.(type) {
	case ManagerDecision:
		return e.applyManagerDecision(next, actor, a, now)
	case UserDecision:
		if a.Approve {
			ev := e.transition(&next, actor, domain.StatusUserApproved, a.Comment, "Approved by requestor", now, a.name())
			return next, ev, nil
		}
		ev := e.transition(&next, actor, domain.StatusUserRejected, a.Comment, "Rejected by requestor", now, a.name())
		return next, ev, nil
	case SubmitTestCases:
		return e.applySubmitTestCases(next, actor, a, now)
	case ReviewTestCases:
		if a.Approve {
			ev := e.transition(&next, actor, domain.StatusPendingDesignReview, a.Comment, "Test cases approved", now, a.name())
			return next, ev, nil
		}
		ev := e.transition(&next, actor, domain.StatusRejected, a.Comment, "Test cases rejected", now, a.name())
		return next, ev, nil
	case SubmitDesign:
		if strings.TrimSpace(a.ArchitectureDesign) == "" {
			return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "architecture_design", Reason: "must not be empty"}
		}
		next.ArchitectureDesign = a.ArchitectureDesign
		next.DesignReview = a.DesignReview
		ev := e.transition(&next, actor, domain.StatusInDevelopment, a.Comment, "Design submitted, development started", now, a.name())
		return next, ev, nil
	case AddRelease:
		return e.applyAddRelease(next, actor, a, now)
	case SubmitForSignoff:
		ev := e.transition(&next, actor, domain.StatusUATSignoff, a.Comment, "Ready for UAT testing", now, a.name())
		return next, ev, nil
	case CompleteSignoff:
		return e.applyCompleteSignoff(next, actor, a, now)
	case PromoteToCAB:
		ev := e.transition(&next, actor, domain.StatusCABReview, a.Comment, "Promoted to CAB review", now, a.name())
		return next, ev, nil
	case ReleaseToProduction:
		ev := e.transition(&next, actor, domain.StatusProductionRelease, a.Comment, "Released to production", now, a.name())
		return next, ev, nil
	case CompleteRequest:
		if strings.TrimSpace(a.Review) == "" {
			return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "review", Reason: "must not be empty"}
		}
		if strings.TrimSpace(a.ReleaseNotes) == "" {
			return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "release_notes", Reason: "must not be empty"}
		}
		next.PostImplementationReview = a.Review
		next.ReleaseNotes = a.ReleaseNotes
		ev := e.transition(&next, actor, domain.StatusCompleted, a.Comment, "Request completed", now, a.name())
		return next, ev, nil
	case AddComment:
		if strings.TrimSpace(a.Text) == "" {
			return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "text", Reason: "must not be empty"}
		}
		next.Comments = append(next.Comments, domain.Comment{
			ID:        e.ids.CommentID(),
			RequestID: next.ID,
			UserID:    actor.ID,
			UserName:  actor.Name,
			Content:   a.Text,
			CreatedAt: now,
		})
		next.UpdatedAt = now
		return next, nil, nil
	}

	return domain.Request{}, nil, &domain.InvalidTransitionError{Action: action.name(), Status: req.Status}
}

func (e *Engine) applyManagerDecision(next domain.Request, actor domain.User, a ManagerDecision, now time.Time) (domain.Request, *TransitionEvent, error) {
	if !a.Approve {
		ev := e.transition(&next, actor, domain.StatusRejected, a.Comment, "Rejected by line manager", now, a.name())
		return next, ev, nil
	}

	if len(a.Developers) == 0 {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "developers", Reason: "at least one developer must be assigned"}
	}

	names := make([]string, 0, len(a.Developers))
	for _, id := range a.Developers {
		u, ok := e.directory.User(id)
		if !ok {
			return domain.Request{}, nil, &domain.NotFoundError{Resource: "user", ID: id}
		}
		if u.Role != domain.RoleDeveloper {
			return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "developers", Reason: "user " + id + " is not a developer"}
		}
		names = append(names, u.Name)
	}

	next.AssignedDevelopers = append([]string(nil), a.Developers...)
	next.AssignedDeveloperNames = names
	ev := e.transition(&next, actor, domain.StatusPendingUserApproval, a.Comment, "Approved, developers assigned", now, a.name())
	return next, ev, nil
}

func (e *Engine) applySubmitTestCases(next domain.Request, actor domain.User, a SubmitTestCases, now time.Time) (domain.Request, *TransitionEvent, error) {
	if strings.TrimSpace(a.ImpactAnalysis) == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "impact_analysis", Reason: "must not be empty"}
	}

	scenarios := make([]domain.SystemScenario, 0, len(a.ScenarioIDs))
	available := e.catalog.ScenariosFor(next.System)
	for _, id := range a.ScenarioIDs {
		found := false
		for _, s := range available {
			if s.ID == id {
				scenarios = append(scenarios, s)
				found = true
				break
			}
		}
		if !found {
			return domain.Request{}, nil, &domain.NotFoundError{Resource: "system scenario", ID: id}
		}
	}

	next.TestCases = append(next.TestCases, buildTestCases(e.ids, a.CustomTestCases, scenarios)...)
	next.ImpactAnalysis = a.ImpactAnalysis
	ev := e.transition(&next, actor, domain.StatusManagerReviewTestCases, a.Comment, "Test cases and impact analysis submitted", now, a.name())
	return next, ev, nil
}

func (e *Engine) applyAddRelease(next domain.Request, actor domain.User, a AddRelease, now time.Time) (domain.Request, *TransitionEvent, error) {
	if a.Type != domain.ReleaseBinary && a.Type != domain.ReleaseDatabase {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "type", Reason: "must be binary or database"}
	}
	if strings.TrimSpace(a.RFCCode) == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "rfc_code", Reason: "must not be empty"}
	}
	if strings.TrimSpace(a.Description) == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "description", Reason: "must not be empty"}
	}
	if !a.Status.Valid() {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "status", Reason: "unknown release status"}
	}

	next.Releases = append(next.Releases, domain.Release{
		ID:             e.ids.ReleaseID(),
		Type:           a.Type,
		RFCCode:        a.RFCCode,
		Description:    a.Description,
		ReleasedBy:     actor.ID,
		ReleasedByName: actor.Name,
		ReleasedAt:     now,
		IsManual:       a.IsManual,
		Status:         a.Status,
	})

	// Only the first release of a request in development moves it to
	// uat_release; later releases just accumulate.
	if next.Status == domain.StatusInDevelopment {
		ev := e.transition(&next, actor, domain.StatusUATRelease, "", "UAT release "+a.RFCCode+" created", now, a.name())
		return next, ev, nil
	}

	next.UpdatedAt = now
	return next, nil, nil
}

func (e *Engine) applyCompleteSignoff(next domain.Request, actor domain.User, a CompleteSignoff, now time.Time) (domain.Request, *TransitionEvent, error) {
	anyFailed := false
	for id, grade := range a.Grades {
		if !grade.Status.Valid() {
			return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "grades", Reason: "unknown test case status for " + id}
		}
		found := false
		for _, tc := range next.TestCases {
			if tc.ID == id {
				found = true
				break
			}
		}
		if !found {
			return domain.Request{}, nil, &domain.NotFoundError{Resource: "test case", ID: id}
		}
		if grade.Status == domain.TestCaseFailed || grade.Status == domain.TestCasePartiallyPassed {
			anyFailed = true
		}
	}

	justification := strings.TrimSpace(a.Justification)
	if anyFailed && justification == "" {
		return domain.Request{}, nil, &domain.ValidationError{Action: a.name(), Field: "justification", Reason: "required when any test case failed or partially passed"}
	}

	next.TestCases = gradeTestCases(next.TestCases, a.Grades, actor, now)
	if justification != "" {
		next.UserApprovalJustification = justification
	}

	comment := a.Comment
	if comment == "" {
		comment = "UAT sign-off completed"
	}
	if justification != "" {
		comment = comment + " (justification: " + justification + ")"
	}

	ev := e.transition(&next, actor, domain.StatusCABReview, comment, "", now, a.name())
	return next, ev, nil
}

// transition appends exactly one history entry and stamps the new
// status. The fallback comment is used when the actor supplied none.
func (e *Engine) transition(next *domain.Request, actor domain.User, to domain.Status, comment, fallback string, now time.Time, action string) *TransitionEvent {
	if comment == "" {
		comment = fallback
	}

	next.StatusHistory = append(next.StatusHistory, domain.StatusChange{
		Status:        to,
		ChangedBy:     actor.ID,
		ChangedByName: actor.Name,
		ChangedAt:     now,
		Comment:       comment,
	})

	ev := &TransitionEvent{
		RequestID:    next.ID,
		RequestTitle: next.Title,
		Action:       action,
		From:         next.Status,
		To:           to,
		ActorID:      actor.ID,
		At:           now,
	}

	next.Status = to
	next.UpdatedAt = now
	return ev
}
