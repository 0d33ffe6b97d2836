package domain

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPendingManagerApproval  Status = "pending_manager_approval"
	StatusPendingUserApproval     Status = "pending_user_approval"
	StatusUserApproved            Status = "user_approved"
	StatusManagerReviewTestCases  Status = "manager_review_test_cases"
	StatusPendingDesignReview     Status = "pending_design_review"
	StatusInDevelopment           Status = "in_development"
	StatusUATRelease              Status = "uat_release"
	StatusUATSignoff              Status = "uat_signoff"
	StatusCABReview               Status = "cab_review"
	StatusProductionRelease       Status = "production_release"
	StatusCompleted               Status = "completed"
	StatusRejected                Status = "rejected"
	StatusUserRejected            Status = "user_rejected"
	StatusCancelled               Status = "cancelled"
)

// Terminal reports whether no further transitions are accepted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusUserRejected, StatusCancelled:
		return true
	}
	return false
}

type Role string

const (
	RoleDeveloper   Role = "developer"
	RoleLineManager Role = "line_manager"
	RoleEndUser     Role = "end_user"
	RoleDevOps      Role = "devops"
)

type RequestType string

const (
	TypeSmallEnhancement RequestType = "small_enhancement"
	TypeEnhancement      RequestType = "enhancement"
	TypeBugFix           RequestType = "bug_fix"
	TypeUserSupport      RequestType = "user_support"
)

func (t RequestType) Valid() bool {
	switch t {
	case TypeSmallEnhancement, TypeEnhancement, TypeBugFix, TypeUserSupport:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityUrgent    Priority = "urgent"
	PriorityEmergency Priority = "emergency"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent, PriorityEmergency:
		return true
	}
	return false
}

type TestCaseStatus string

const (
	TestCasePending         TestCaseStatus = "pending"
	TestCasePassed          TestCaseStatus = "passed"
	TestCaseFailed          TestCaseStatus = "failed"
	TestCasePartiallyPassed TestCaseStatus = "partially_passed"
)

func (s TestCaseStatus) Valid() bool {
	switch s {
	case TestCasePending, TestCasePassed, TestCaseFailed, TestCasePartiallyPassed:
		return true
	}
	return false
}

type ReleaseType string

const (
	ReleaseBinary   ReleaseType = "binary"
	ReleaseDatabase ReleaseType = "database"
)

type ReleaseStatus string

const (
	ReleasePending   ReleaseStatus = "pending"
	ReleaseConcluded ReleaseStatus = "concluded"
	ReleaseCancelled ReleaseStatus = "cancelled"
)

// Valid accepts the empty string because the field is optional.
func (s ReleaseStatus) Valid() bool {
	switch s {
	case "", ReleasePending, ReleaseConcluded, ReleaseCancelled:
		return true
	}
	return false
}
