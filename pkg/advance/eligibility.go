package advance

import (
	"github.com/advancehq/salary-advance/pkg/constants"
)

// Eligibility is the outcome of the salary threshold and advance cap rules.
type Eligibility struct {
	Eligible   bool
	MaxAdvance float64
	Approved   bool
}

// Evaluate applies the minimum-monthly-salary threshold and the
// advance-as-fraction-of-salary cap. An ineligible salary short-circuits:
// MaxAdvance stays 0 and no approval is possible.
func Evaluate(monthlySalary, advanceAmount float64) Eligibility {
	if monthlySalary < constants.MinMonthlySalary {
		return Eligibility{}
	}

	maxAdvance := monthlySalary * constants.MaxAdvanceFraction
	return Eligibility{
		Eligible:   true,
		MaxAdvance: maxAdvance,
		Approved:   advanceAmount <= maxAdvance,
	}
}
