package lifecycle

import "request-tracker/internal/domain"

type relationship int

const (
	relAny relationship = iota
	relRequestor
	relAssignedDeveloper
)

// rule gates a single action: who may invoke it and from which states.
// An empty from list means any non-terminal state.
type rule struct {
	role domain.Role // empty means any authenticated actor
	rel  relationship
	from []domain.Status
}

func (r rule) allowsFrom(s domain.Status) bool {
	if len(r.from) == 0 {
		return !s.Terminal()
	}
	for _, f := range r.from {
		if f == s {
			return true
		}
	}
	return false
}

func (r rule) authorize(req domain.Request, actor domain.User, action string) error {
	if r.role != "" && actor.Role != r.role {
		return &domain.AuthorizationError{
			Action:  action,
			Status:  req.Status,
			ActorID: actor.ID,
			Reason:  "requires role " + string(r.role),
		}
	}

	switch r.rel {
	case relRequestor:
		if !req.IsRequestor(actor.ID) {
			return &domain.AuthorizationError{
				Action:  action,
				Status:  req.Status,
				ActorID: actor.ID,
				Reason:  "actor is not a requestor",
			}
		}
	case relAssignedDeveloper:
		if !req.IsAssignedDeveloper(actor.ID) {
			return &domain.AuthorizationError{
				Action:  action,
				Status:  req.Status,
				ActorID: actor.ID,
				Reason:  "actor is not an assigned developer",
			}
		}
	}

	return nil
}

// WorkflowDefinition names an ordered set of states and the role-gated
// transition rules between them. Effects stay in the engine; the
// definition only decides validity.
type WorkflowDefinition struct {
	Name   string
	States []domain.Status
	rules  map[string]rule
}

func (w WorkflowDefinition) rule(action string) (rule, bool) {
	r, ok := w.rules[action]
	return r, ok
}

// Standard is the full release-tracked workflow.
var Standard = WorkflowDefinition{
	Name: "standard",
	States: []domain.Status{
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
	},
	rules: map[string]rule{
		ManagerDecision{}.name(): {
			role: domain.RoleLineManager,
			from: []domain.Status{domain.StatusPendingManagerApproval},
		},
		UserDecision{}.name(): {
			role: domain.RoleEndUser,
			rel:  relRequestor,
			from: []domain.Status{domain.StatusPendingUserApproval},
		},
		SubmitTestCases{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusUserApproved},
		},
		ReviewTestCases{}.name(): {
			role: domain.RoleLineManager,
			from: []domain.Status{domain.StatusManagerReviewTestCases},
		},
		SubmitDesign{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusPendingDesignReview},
		},
		AddRelease{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusInDevelopment, domain.StatusUATRelease},
		},
		SubmitForSignoff{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusUATRelease},
		},
		CompleteSignoff{}.name(): {
			role: domain.RoleEndUser,
			rel:  relRequestor,
			from: []domain.Status{domain.StatusUATSignoff},
		},
		PromoteToCAB{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusUATSignoff, domain.StatusCABReview},
		},
		ReleaseToProduction{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusCABReview},
		},
		CompleteRequest{}.name(): {
			role: domain.RoleDeveloper,
			rel:  relAssignedDeveloper,
			from: []domain.Status{domain.StatusProductionRelease},
		},
		AddComment{}.name(): {},
	},
}
