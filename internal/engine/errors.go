package engine

import (
	"errors"
	"fmt"
)

// FailureKind classifies a fatal planning failure.
type FailureKind string

const (
	FailureBudgetInfeasible           FailureKind = "BUDGET_INFEASIBLE"
	FailureInsufficientCoreOptions    FailureKind = "INSUFFICIENT_CORE_OPTIONS"
	FailureScheduleInfeasible         FailureKind = "SCHEDULE_INFEASIBLE"
	FailureBudgetExceeded             FailureKind = "BUDGET_EXCEEDED"
	FailureAssemblyInvariantViolation FailureKind = "ASSEMBLY_INVARIANT_VIOLATION"
)

// PlanningFailure is the single fatal result type the planner returns.
// Category-level problems never become a PlanningFailure; they are absorbed
// into the itinerary's warnings instead.
type PlanningFailure struct {
	Kind   FailureKind
	Detail string
}

func (f *PlanningFailure) Error() string {
	return fmt.Sprintf("planning failed (%s): %s", f.Kind, f.Detail)
}

func newFailure(kind FailureKind, format string, args ...interface{}) *PlanningFailure {
	return &PlanningFailure{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// AsPlanningFailure unwraps err into a *PlanningFailure when it is one.
func AsPlanningFailure(err error) (*PlanningFailure, bool) {
	var failure *PlanningFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// ErrNoCandidatesFound is the recoverable per-category condition: after
// filtering, zero items remain. Callers mark the category unplanned.
var ErrNoCandidatesFound = errors.New("no candidates found")
