package api

import "time"

// Every mutating payload carries the acting user explicitly; the service
// keeps no ambient identity.

type CreateRequestPayload struct {
	ActorID             string    `json:"actor_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Type                string    `json:"type"`
	Priority            string    `json:"priority"`
	System              string    `json:"system"`
	ImplementationScope string    `json:"implementation_scope"`
	Requestors          []string  `json:"requestors"`
	LineManager         string    `json:"line_manager"`
	DueDate             time.Time `json:"due_date"`
}

type ManagerDecisionPayload struct {
	ActorID    string   `json:"actor_id"`
	Approve    bool     `json:"approve"`
	Developers []string `json:"developers"`
	Comment    string   `json:"comment"`
}

type UserDecisionPayload struct {
	ActorID string `json:"actor_id"`
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

type SubmitTestCasesPayload struct {
	ActorID         string   `json:"actor_id"`
	CustomTestCases string   `json:"custom_test_cases"`
	ScenarioIDs     []string `json:"scenario_ids"`
	ImpactAnalysis  string   `json:"impact_analysis"`
	Comment         string   `json:"comment"`
}

type ReviewTestCasesPayload struct {
	ActorID string `json:"actor_id"`
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

type SubmitDesignPayload struct {
	ActorID            string `json:"actor_id"`
	ArchitectureDesign string `json:"architecture_design"`
	DesignReview       string `json:"design_review"`
	Comment            string `json:"comment"`
}

type AddReleasePayload struct {
	ActorID     string `json:"actor_id"`
	Type        string `json:"type"`
	RFCCode     string `json:"rfc_code"`
	Description string `json:"description"`
	IsManual    bool   `json:"is_manual"`
	Status      string `json:"status"`
}

type SubmitSignoffPayload struct {
	ActorID string `json:"actor_id"`
	Comment string `json:"comment"`
}

type TestCaseGradePayload struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

type CompleteSignoffPayload struct {
	ActorID       string                          `json:"actor_id"`
	Grades        map[string]TestCaseGradePayload `json:"grades"`
	Justification string                          `json:"justification"`
	Comment       string                          `json:"comment"`
}

type PromoteCABPayload struct {
	ActorID string `json:"actor_id"`
	Comment string `json:"comment"`
}

type ProductionReleasePayload struct {
	ActorID string `json:"actor_id"`
	Comment string `json:"comment"`
}

type CompleteRequestPayload struct {
	ActorID      string `json:"actor_id"`
	Review       string `json:"review"`
	ReleaseNotes string `json:"release_notes"`
	Comment      string `json:"comment"`
}

type AddCommentPayload struct {
	ActorID string `json:"actor_id"`
	Text    string `json:"text"`
}

type AddAttachmentPayload struct {
	ActorID  string `json:"actor_id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}
