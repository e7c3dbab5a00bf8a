package ledger

import (
	"time"

	"github.com/advancehq/salary-advance/pkg/advance"
	"github.com/advancehq/salary-advance/pkg/loans"
)

// LoanRecord is the immutable snapshot stored for every approved advance.
// Fields mirror the decision payload at approval time; the record is never
// mutated after insertion.
type LoanRecord struct {
	LoanID               string               `json:"loan_id"`
	AdvanceAmount        float64              `json:"advance_amount"`
	Fee                  float64              `json:"fee"`
	Timestamp            time.Time            `json:"timestamp"`
	GrossSalary          float64              `json:"gross_salary"`
	PayFrequency         advance.PayFrequency `json:"pay_frequency"`
	LoanAmount           *float64             `json:"loan_amount"`
	InterestRate         *float64             `json:"interest_rate"`
	LoanTerm             *int                 `json:"loan_term"`
	TotalRepayable       *float64             `json:"total_repayable"`
	AmortizationSchedule []loans.Row          `json:"amortization_schedule"`
}
