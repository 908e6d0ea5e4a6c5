package app

import (
	"fmt"

	"daily-riddle-service/internal/domain"
)

// Policy fixes the two award amounts deployments disagree on: points for a
// correct answer beyond the third, and the consolation for a wrong answer.
type Policy struct {
	Name        string
	LatePoints  int
	WrongPoints int
}

var (
	// PolicyStrict awards nothing past the podium and nothing for a miss.
	PolicyStrict = Policy{Name: "strict", LatePoints: 0, WrongPoints: 0}
	// PolicyGenerous keeps late and wrong answers worth something.
	PolicyGenerous = Policy{Name: "generous", LatePoints: 3, WrongPoints: 1}
)

// PolicyByName resolves a configured policy name. Empty selects generous.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PolicyGenerous.Name:
		return PolicyGenerous, nil
	case PolicyStrict.Name:
		return PolicyStrict, nil
	}
	return Policy{}, fmt.Errorf("unknown scoring policy %q", name)
}

// scoreAnswer decides correctness and the award for a submission.
// correctRank is the number of other players already credited with a correct
// answer today, counted immediately before this call. The caller owns the
// one-answer-per-day guard; this routine does not re-check it.
func scoreAnswer(riddle domain.Riddle, chosen string, correctRank int, p Policy) (awarded int, correct bool) {
	if chosen != riddle.Answer {
		return p.WrongPoints, false
	}
	switch correctRank {
	case 0:
		return 15, true
	case 1:
		return 10, true
	case 2:
		return 5, true
	default:
		return p.LatePoints, true
	}
}
