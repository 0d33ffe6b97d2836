package lifecycle

import (
	"strings"
	"time"

	"request-tracker/internal/domain"
)

// buildTestCases turns free text (one test case per line, blank lines
// dropped) plus the selected catalog scenarios into pending test cases.
// Custom cases come first, then catalog cases; callers must not rely on
// any ordering beyond that.
func buildTestCases(ids IDGenerator, custom string, scenarios []domain.SystemScenario) []domain.TestCase {
	var out []domain.TestCase

	for _, line := range strings.Split(custom, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, domain.TestCase{
			ID:          ids.TestCaseID(),
			Description: line,
			Status:      domain.TestCasePending,
		})
	}

	for _, s := range scenarios {
		out = append(out, domain.TestCase{
			ID:               ids.TestCaseID(),
			Description:      s.Description,
			Status:           domain.TestCasePending,
			IsPreDefined:     true,
			SystemScenarioID: s.ID,
		})
	}

	return out
}

// gradeTestCases applies the supplied verdicts. Cases without a verdict
// keep their prior status. Grader identity and the single batch
// timestamp are stamped on every graded case.
func gradeTestCases(cases []domain.TestCase, grades map[string]TestCaseGrade, grader domain.User, at time.Time) []domain.TestCase {
	out := make([]domain.TestCase, len(cases))
	for i, tc := range cases {
		grade, ok := grades[tc.ID]
		if !ok {
			out[i] = tc
			continue
		}

		tc.Status = grade.Status
		tc.Comments = grade.Comment
		tc.TestedBy = grader.ID
		tc.TestedByName = grader.Name
		t := at
		tc.TestedAt = &t
		out[i] = tc
	}
	return out
}
