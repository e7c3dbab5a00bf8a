// Package advance sequences one advance application through normalization,
// eligibility, fees, optional loan math, and the ledger commit.
package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/advancehq/salary-advance/internal/ledger"
	coreadvance "github.com/advancehq/salary-advance/pkg/advance"
	"github.com/advancehq/salary-advance/pkg/constants"
	"github.com/advancehq/salary-advance/pkg/format"
	"github.com/advancehq/salary-advance/pkg/loans"
	"github.com/advancehq/salary-advance/pkg/output"
	"go.uber.org/zap"
)

// Orchestrator computes advance decisions and commits approved ones to the
// ledger. It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	ledger *ledger.Ledger
	calc   *loans.Calculator
	logger *zap.Logger
	now    func() time.Time
}

// New creates an Orchestrator writing approvals to the given ledger.
func New(logger *zap.Logger, ldg *ledger.Ledger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		ledger: ldg,
		calc:   loans.NewCalculator(logger),
		logger: logger,
		now:    time.Now,
	}
}

// Options modify how a decision is returned.
type Options struct {
	// ExportCSV short-circuits the decision: the amortization schedule is
	// returned as delimited text with a fixed filename and nothing is
	// committed to the ledger.
	ExportCSV bool
}

// Decide runs the full decision sequence. Exactly one of the returned
// Decision and Export is non-nil on success. Either a complete decision is
// produced and (if approved) committed, or an error is returned before any
// ledger write.
func (o *Orchestrator) Decide(ctx context.Context, req Request, opts Options) (*Decision, *Export, error) {
	start := time.Now()

	monthlySalary, err := coreadvance.MonthlySalary(req.GrossSalary, req.PayFrequency)
	if err != nil {
		return nil, nil, err
	}

	eligibility := coreadvance.Evaluate(monthlySalary, req.AdvanceAmount)
	if !eligibility.Eligible {
		decision := &Decision{
			Message: fmt.Sprintf("Ineligible: Monthly salary is below the minimum threshold of %s.",
				format.Currency(constants.MinMonthlySalary)),
		}
		o.logDecision(decision, start)
		return decision, nil, nil
	}

	approvedAmount := 0.0
	if eligibility.Approved {
		approvedAmount = req.AdvanceAmount
	}
	fee := coreadvance.Fee(req.AdvanceAmount, eligibility.Approved)

	var totalRepayable *float64
	var schedule []loans.Row
	if eligibility.Approved && req.HasLoanTerms() {
		total, err := o.calc.TotalRepayable(*req.LoanAmount, *req.InterestRate, *req.LoanTerm)
		if err != nil {
			return nil, nil, err
		}
		totalRepayable = &total

		if req.IncludeAmortization || opts.ExportCSV {
			schedule, err = o.calc.Schedule(*req.LoanAmount, *req.InterestRate, *req.LoanTerm)
			if err != nil {
				return nil, nil, err
			}
			if opts.ExportCSV {
				return nil, &Export{
					CSVData:  output.ScheduleCSV(schedule),
					Filename: constants.ScheduleCSVFilename,
				}, nil
			}
		}
	}

	var loanID *string
	if eligibility.Approved {
		id := o.ledger.Record(ctx, ledger.LoanRecord{
			AdvanceAmount:        req.AdvanceAmount,
			Fee:                  fee,
			Timestamp:            o.now(),
			GrossSalary:          req.GrossSalary,
			PayFrequency:         req.PayFrequency,
			LoanAmount:           req.LoanAmount,
			InterestRate:         req.InterestRate,
			LoanTerm:             req.LoanTerm,
			TotalRepayable:       totalRepayable,
			AmortizationSchedule: schedule,
		})
		loanID = &id
	}

	decision := &Decision{
		Eligible:             true,
		AdvanceApproved:      eligibility.Approved,
		MaxAdvance:           eligibility.MaxAdvance,
		ApprovedAmount:       approvedAmount,
		Fee:                  fee,
		TotalRepayable:       totalRepayable,
		AmortizationSchedule: schedule,
		Message:              o.buildMessage(req, eligibility, fee, totalRepayable),
		LoanID:               loanID,
	}
	o.logDecision(decision, start)
	return decision, nil, nil
}

func (o *Orchestrator) buildMessage(req Request, eligibility coreadvance.Eligibility, fee float64, totalRepayable *float64) string {
	if !eligibility.Approved {
		return fmt.Sprintf("Requested advance (%s) exceeds maximum allowed (%s).",
			format.Currency(req.AdvanceAmount), format.Currency(eligibility.MaxAdvance))
	}

	message := fmt.Sprintf("Advance approved! Amount: %s, Fee: %s",
		format.Currency(req.AdvanceAmount), format.Currency(fee))
	if totalRepayable != nil {
		message += fmt.Sprintf(". Loan repayable: %s over %d months.",
			format.Currency(*totalRepayable), *req.LoanTerm)
	}
	return message
}

func (o *Orchestrator) logDecision(decision *Decision, start time.Time) {
	fields := []zap.Field{
		zap.String("op", "advance.Decide"),
		zap.String("state", string(decision.State())),
		zap.Float64("fee", decision.Fee),
		zap.Duration("duration", time.Since(start)),
	}
	if decision.LoanID != nil {
		fields = append(fields, zap.String("loan_id", *decision.LoanID))
	}
	o.logger.Info("advance decision computed", fields...)
}
