package advance

import (
	coreadvance "github.com/advancehq/salary-advance/pkg/advance"
	"github.com/advancehq/salary-advance/pkg/loans"
)

// Request carries one advance application. Loan fields are optional; they
// are only consulted when the advance itself is approved.
type Request struct {
	GrossSalary         float64                  `json:"gross_salary"`
	PayFrequency        coreadvance.PayFrequency `json:"pay_frequency"`
	AdvanceAmount       float64                  `json:"advance_amount"`
	LoanAmount          *float64                 `json:"loan_amount,omitempty"`
	InterestRate        *float64                 `json:"interest_rate,omitempty"`
	LoanTerm            *int                     `json:"loan_term,omitempty"`
	IncludeAmortization bool                     `json:"include_amortization,omitempty"`
}

// HasLoanTerms reports whether all loan fields are present and non-zero.
// Zero values are treated the same as absent fields.
func (r Request) HasLoanTerms() bool {
	return r.LoanAmount != nil && *r.LoanAmount != 0 &&
		r.InterestRate != nil && *r.InterestRate != 0 &&
		r.LoanTerm != nil && *r.LoanTerm != 0
}

// State is the terminal state of a decision.
type State string

const (
	StateIneligible       State = "ineligible"
	StateRejected         State = "rejected"
	StateApproved         State = "approved"
	StateApprovedWithLoan State = "approved_with_loan"
)

// Decision is the structured outcome returned to the caller.
type Decision struct {
	Eligible             bool        `json:"eligible"`
	AdvanceApproved      bool        `json:"advance_approved"`
	MaxAdvance           float64     `json:"max_advance"`
	ApprovedAmount       float64     `json:"approved_amount"`
	Fee                  float64     `json:"fee"`
	TotalRepayable       *float64    `json:"total_repayable,omitempty"`
	AmortizationSchedule []loans.Row `json:"amortization_schedule,omitempty"`
	Message              string      `json:"message"`
	LoanID               *string     `json:"loan_id,omitempty"`
}

// State derives the terminal state from the decision fields.
func (d Decision) State() State {
	switch {
	case !d.Eligible:
		return StateIneligible
	case !d.AdvanceApproved:
		return StateRejected
	case d.TotalRepayable != nil:
		return StateApprovedWithLoan
	default:
		return StateApproved
	}
}

// Export is the CSV payload returned in export mode in lieu of a Decision.
type Export struct {
	CSVData  string `json:"csv_data"`
	Filename string `json:"filename"`
}
