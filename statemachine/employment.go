package statemachine

import (
	"errors"
	"fmt"

	"restaurant-ordering-api/models"
)

// ErrInvalidTransition signals a contract violation: feedback applied to a
// fired employee. The host layer must never route feedback to a fired
// employee, so this is a logic fault rather than a user-facing rejection.
var ErrInvalidTransition = errors.New("invalid employment transition")

// Outcome is the result of applying one feedback event to an employee.
// SalaryDelta must be persisted together with Status in a single write.
type Outcome struct {
	Status      models.EmploymentStatus
	SalaryDelta int64
}

// Transition describes one row of the employment state machine for
// documentation purposes.
type Transition struct {
	Event     string                  `json:"event"`
	From      models.EmploymentStatus `json:"from"`
	Condition string                  `json:"condition"`
	To        models.EmploymentStatus `json:"to"`
	Salary    string                  `json:"salary"`
}

// OnCompliment resolves the employment transition after a new compliment has
// been recorded. score is the reputation score including that compliment;
// bonus and demotion are the employee's configured amounts.
func OnCompliment(current models.EmploymentStatus, score int, bonus, demotion int64) (Outcome, error) {
	switch current {
	case models.EmploymentFired:
		return Outcome{}, fmt.Errorf("%w: cannot compliment a fired employee", ErrInvalidTransition)
	case models.EmploymentDemoted:
		if score > -3 {
			return Outcome{Status: models.EmploymentWarned, SalaryDelta: demotion}, nil
		}
		return Outcome{Status: current}, nil
	case models.EmploymentPromoted, models.EmploymentWarned:
		return Outcome{Status: current}, nil
	case models.EmploymentOkay:
		if score >= 3 {
			return Outcome{Status: models.EmploymentPromoted, SalaryDelta: bonus}, nil
		}
		return Outcome{Status: current}, nil
	}
	return Outcome{}, fmt.Errorf("%w: unknown employment status %q", ErrInvalidTransition, current)
}

// OnValidComplaint resolves the employment transition after a manager marks
// a complaint valid. Merely-filed complaints never reach this function.
// A resulting EmploymentFired status must be persisted via the
// suspend-for-firing path so the user account is suspended in the same
// transaction. Demoted has no further firing path: it only recovers to
// Warned through compliments.
func OnValidComplaint(current models.EmploymentStatus, score int, bonus, demotion int64) (Outcome, error) {
	switch current {
	case models.EmploymentFired:
		return Outcome{}, fmt.Errorf("%w: cannot complain about a fired employee", ErrInvalidTransition)
	case models.EmploymentDemoted:
		return Outcome{Status: current}, nil
	case models.EmploymentWarned:
		if score <= -3 {
			return Outcome{Status: models.EmploymentFired}, nil
		}
		return Outcome{Status: current}, nil
	case models.EmploymentPromoted:
		if score < 3 {
			return Outcome{Status: models.EmploymentOkay, SalaryDelta: -bonus}, nil
		}
		return Outcome{Status: current}, nil
	case models.EmploymentOkay:
		if score <= -3 {
			return Outcome{Status: models.EmploymentDemoted, SalaryDelta: -demotion}, nil
		}
		return Outcome{Status: current}, nil
	}
	return Outcome{}, fmt.Errorf("%w: unknown employment status %q", ErrInvalidTransition, current)
}

// Describe returns the full state machine for documentation endpoints.
func Describe() []Transition {
	return []Transition{
		{Event: "compliment", From: models.EmploymentDemoted, Condition: "score > -3", To: models.EmploymentWarned, Salary: "+demotion"},
		{Event: "compliment", From: models.EmploymentOkay, Condition: "score >= 3", To: models.EmploymentPromoted, Salary: "+bonus"},
		{Event: "valid complaint", From: models.EmploymentWarned, Condition: "score <= -3", To: models.EmploymentFired, Salary: "0 (account suspended)"},
		{Event: "valid complaint", From: models.EmploymentPromoted, Condition: "score < 3", To: models.EmploymentOkay, Salary: "-bonus"},
		{Event: "valid complaint", From: models.EmploymentOkay, Condition: "score <= -3", To: models.EmploymentDemoted, Salary: "-demotion"},
	}
}
