// Package advance implements the salary-advance policy calculations:
// pay-frequency normalization, eligibility rules, and the advance fee.
package advance

import (
	"github.com/advancehq/salary-advance/pkg/constants"
)

// PayFrequency identifies how often a gross salary figure is paid out.
type PayFrequency string

const (
	Weekly   PayFrequency = "Weekly"
	BiWeekly PayFrequency = "Bi-Weekly"
	Monthly  PayFrequency = "Monthly"
	Annually PayFrequency = "Annually"
)

// PayFrequencies lists the supported frequencies in display order.
func PayFrequencies() []PayFrequency {
	return []PayFrequency{Weekly, BiWeekly, Monthly, Annually}
}

// MonthlySalary converts a gross salary quoted at the given pay frequency
// into its monthly equivalent. Weekly salaries count 52 pay periods per
// year and bi-weekly 26, both spread across 12 months.
func MonthlySalary(grossSalary float64, frequency PayFrequency) (float64, error) {
	switch frequency {
	case Weekly:
		return grossSalary * 52 / constants.MonthsPerYear, nil
	case BiWeekly:
		return grossSalary * 26 / constants.MonthsPerYear, nil
	case Monthly:
		return grossSalary, nil
	case Annually:
		return grossSalary / constants.MonthsPerYear, nil
	default:
		return 0, &InvalidInputError{
			Field:  "pay_frequency",
			Reason: "must be one of Weekly, Bi-Weekly, Monthly, Annually",
		}
	}
}
