package domain

import "time"

type User struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Team  string `json:"team"`
}

// StatusChange is a single append-only history entry. The last entry's
// status always equals the request's current status.
type StatusChange struct {
	Status        Status    `json:"status"`
	ChangedBy     string    `json:"changed_by"`
	ChangedByName string    `json:"changed_by_name"`
	ChangedAt     time.Time `json:"changed_at"`
	Comment       string    `json:"comment,omitempty"`
}

type TestCase struct {
	ID               string         `json:"id"`
	Description      string         `json:"description"`
	Status           TestCaseStatus `json:"status"`
	TestedBy         string         `json:"tested_by,omitempty"`
	TestedByName     string         `json:"tested_by_name,omitempty"`
	TestedAt         *time.Time     `json:"tested_at,omitempty"`
	Comments         string         `json:"comments,omitempty"`
	IsPreDefined     bool           `json:"is_pre_defined"`
	SystemScenarioID string         `json:"system_scenario_id,omitempty"`
}

type Release struct {
	ID             string        `json:"id"`
	Type           ReleaseType   `json:"type"`
	RFCCode        string        `json:"rfc_code"`
	Description    string        `json:"description"`
	ReleasedBy     string        `json:"released_by"`
	ReleasedByName string        `json:"released_by_name"`
	ReleasedAt     time.Time     `json:"released_at"`
	IsManual       bool          `json:"is_manual"`
	Status         ReleaseStatus `json:"status,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Attachment struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	URL            string    `json:"url"`
	UploadedBy     string    `json:"uploaded_by"`
	UploadedByName string    `json:"uploaded_by_name"`
	UploadedAt     time.Time `json:"uploaded_at"`
	Stage          Status    `json:"stage"`
	Size           int64     `json:"size"`
}

// SystemScenario is a catalog-defined reusable test case template
// scoped to a target system. Read-only reference data.
type SystemScenario struct {
	ID           string `json:"id"`
	SystemName   string `json:"system_name"`
	ScenarioName string `json:"scenario_name"`
	Description  string `json:"description"`
}

type NotificationKind string

const (
	NotificationApproval     NotificationKind = "approval"
	NotificationAssignment   NotificationKind = "assignment"
	NotificationStatusUpdate NotificationKind = "status_update"
	NotificationComment      NotificationKind = "comment"
)

// Notification is a derived, one-way projection of a lifecycle event.
// Only the read flag is mutated after creation.
type Notification struct {
	ID           string           `json:"id"`
	Kind         NotificationKind `json:"type"`
	UserID       string           `json:"user_id"`
	RequestID    string           `json:"request_id"`
	RequestTitle string           `json:"request_title"`
	Message      string           `json:"message"`
	Read         bool             `json:"read"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Request is the central tracked entity.
type Request struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        RequestType `json:"type"`
	Priority    Priority    `json:"priority"`
	System      string      `json:"system"`
	Status      Status      `json:"status"`

	Requestors             []string `json:"requestors"`
	RequestorNames         []string `json:"requestor_names"`
	AssignedDevelopers     []string `json:"assigned_developers,omitempty"`
	AssignedDeveloperNames []string `json:"assigned_developer_names,omitempty"`
	CreatedBy              string   `json:"created_by"`
	CreatedByName          string   `json:"created_by_name"`
	LineManager            string   `json:"line_manager"`
	LineManagerName        string   `json:"line_manager_name"`

	ImplementationScope       string `json:"implementation_scope"`
	ImpactAnalysis            string `json:"impact_analysis,omitempty"`
	ArchitectureDesign        string `json:"architecture_design,omitempty"`
	DesignReview              string `json:"design_review,omitempty"`
	PostImplementationReview  string `json:"post_implementation_review,omitempty"`
	ReleaseNotes              string `json:"release_notes,omitempty"`
	UserApprovalJustification string `json:"user_approval_justification,omitempty"`

	TestCases     []TestCase     `json:"test_cases"`
	Releases      []Release      `json:"releases"`
	StatusHistory []StatusChange `json:"status_history"`
	Comments      []Comment      `json:"comments"`
	Attachments   []Attachment   `json:"attachments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DueDate   time.Time `json:"due_date"`
}

func (r Request) IsRequestor(userID string) bool {
	for _, id := range r.Requestors {
		if id == userID {
			return true
		}
	}
	return false
}

func (r Request) IsAssignedDeveloper(userID string) bool {
	for _, id := range r.AssignedDevelopers {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so lifecycle operations can mutate freely
// without touching the caller's snapshot.
func (r Request) Clone() Request {
	out := r
	out.Requestors = append([]string(nil), r.Requestors...)
	out.RequestorNames = append([]string(nil), r.RequestorNames...)
	out.AssignedDevelopers = append([]string(nil), r.AssignedDevelopers...)
	out.AssignedDeveloperNames = append([]string(nil), r.AssignedDeveloperNames...)
	out.TestCases = append([]TestCase(nil), r.TestCases...)
	out.Releases = append([]Release(nil), r.Releases...)
	out.StatusHistory = append([]StatusChange(nil), r.StatusHistory...)
	out.Comments = append([]Comment(nil), r.Comments...)
	out.Attachments = append([]Attachment(nil), r.Attachments...)
	return out
}
