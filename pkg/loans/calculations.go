// Package loans provides compound-interest and amortization calculations.
package loans

import (
	"math"

	"github.com/advancehq/salary-advance/pkg/advance"
	"github.com/advancehq/salary-advance/pkg/constants"
	"github.com/advancehq/salary-advance/pkg/mathutil"
	"go.uber.org/zap"
)

// Row holds one month of an amortization schedule. All monetary values are
// rounded to two decimals. JSON keys are capitalized to match the schedule's
// CSV header columns.
type Row struct {
	Month     int     `json:"Month"`
	Payment   float64 `json:"Payment"`
	Principal float64 `json:"Principal"`
	Interest  float64 `json:"Interest"`
	Balance   float64 `json:"Balance"`
}

// TotalRepayable computes the total owed on a loan with monthly compounding:
// principal * (1 + r/12)^termMonths, rounded to cents.
func TotalRepayable(principal, annualRatePercent float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, &advance.InvalidInputError{
			Field:  "loan_term",
			Reason: "must be a positive number of months",
		}
	}

	ratePerPeriod := annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
	total := principal * math.Pow(1+ratePerPeriod, float64(termMonths))
	return mathutil.Round(total), nil
}

// MonthlyPayment calculates the level monthly payment for a loan using the
// standard amortization formula, rounded to cents. A zero interest rate
// simply divides the principal by the term.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if annualRatePercent == 0 {
		return mathutil.Round(principal / float64(termMonths))
	}

	monthlyRate := annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
	power := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal * (monthlyRate * power) / (power - 1)
	return mathutil.Round(payment)
}

// Schedule generates the full amortization schedule for a loan. The running
// balance is carried forward unrounded; each emitted row is rounded to
// cents. On the final month any residual balance left by rounding drift is
// folded into the last payment so the loan always retires at exactly 0.
func Schedule(principal, annualRatePercent float64, termMonths int) ([]Row, error) {
	if termMonths <= 0 {
		return nil, &advance.InvalidInputError{
			Field:  "loan_term",
			Reason: "must be a positive number of months",
		}
	}

	monthlyRate := annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)

	rows := make([]Row, 0, termMonths)
	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := balance * monthlyRate
		principalPayment := mathutil.Min(payment-interest, balance)
		balance -= principalPayment

		row := Row{Month: month}
		if month == termMonths && balance > 0 {
			// Residual balance from rounding drift: force the loan closed.
			row.Payment = mathutil.Round(principalPayment + balance)
			row.Interest = mathutil.Round(interest)
			row.Principal = mathutil.Round(principalPayment + balance - interest)
			row.Balance = 0
			balance = 0
		} else {
			row.Payment = payment
			row.Interest = mathutil.Round(interest)
			row.Principal = mathutil.Round(principalPayment)
			row.Balance = mathutil.Round(mathutil.Max(0, balance))
			balance = mathutil.Max(0, balance)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Calculator bundles the loan math with a logger for request-scoped tracing.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a Calculator. A nil logger is replaced with a no-op.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// TotalRepayable computes the compound-interest total for a loan.
func (c *Calculator) TotalRepayable(principal, annualRatePercent float64, termMonths int) (float64, error) {
	total, err := TotalRepayable(principal, annualRatePercent, termMonths)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("computed total repayable",
		zap.String("op", "loans.TotalRepayable"),
		zap.Float64("principal", principal),
		zap.Float64("rate", annualRatePercent),
		zap.Int("term_months", termMonths),
		zap.Float64("total", total),
	)
	return total, nil
}

// Schedule generates the amortization schedule for a loan.
func (c *Calculator) Schedule(principal, annualRatePercent float64, termMonths int) ([]Row, error) {
	rows, err := Schedule(principal, annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.Schedule"),
		zap.Float64("principal", principal),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}
