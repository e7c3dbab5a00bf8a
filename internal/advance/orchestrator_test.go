package advance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/advancehq/salary-advance/internal/ledger"
	coreadvance "github.com/advancehq/salary-advance/pkg/advance"
	"go.uber.org/zap"
)

func newOrchestrator() (*Orchestrator, *ledger.Ledger) {
	ldg := ledger.New(zap.NewNop(), nil)
	return New(zap.NewNop(), ldg), ldg
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestDecideApprovedAdvanceOnly(t *testing.T) {
	orch, ldg := newOrchestrator()

	decision, export, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 1000,
	}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export != nil {
		t.Fatal("expected no export payload")
	}

	if !decision.Eligible {
		t.Error("expected eligible")
	}
	if !decision.AdvanceApproved {
		t.Error("expected advance approved")
	}
	if decision.MaxAdvance != 2000 {
		t.Errorf("max advance = %v, expected 2000", decision.MaxAdvance)
	}
	if decision.ApprovedAmount != 1000 {
		t.Errorf("approved amount = %v, expected 1000", decision.ApprovedAmount)
	}
	if decision.Fee != 50.0 {
		t.Errorf("fee = %v, expected 50.0", decision.Fee)
	}
	if decision.TotalRepayable != nil {
		t.Error("expected no loan fields on advance-only decision")
	}
	if decision.LoanID == nil {
		t.Fatal("expected a loan id on approval")
	}
	if decision.State() != StateApproved {
		t.Errorf("state = %s, expected %s", decision.State(), StateApproved)
	}
	if !strings.Contains(decision.Message, "$1,000.00") || !strings.Contains(decision.Message, "$50.00") {
		t.Errorf("unexpected message: %q", decision.Message)
	}

	// Approval committed exactly one ledger entry.
	if ldg.Len() != 1 {
		t.Errorf("ledger has %d entries, expected 1", ldg.Len())
	}
	record, err := ldg.Get(context.Background(), *decision.LoanID)
	if err != nil {
		t.Fatalf("record not retrievable: %v", err)
	}
	if record.AdvanceAmount != 1000 || record.Fee != 50.0 {
		t.Errorf("record snapshot mismatch: %+v", record)
	}
}

func TestDecideIneligible(t *testing.T) {
	orch, ldg := newOrchestrator()

	decision, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:   500,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 100,
	}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Eligible || decision.AdvanceApproved {
		t.Error("expected fully ineligible decision")
	}
	if decision.MaxAdvance != 0 || decision.ApprovedAmount != 0 || decision.Fee != 0 {
		t.Errorf("expected zeroed decision, got %+v", decision)
	}
	if decision.LoanID != nil {
		t.Error("ineligible decision must not produce a loan id")
	}
	if decision.State() != StateIneligible {
		t.Errorf("state = %s, expected %s", decision.State(), StateIneligible)
	}
	if !strings.Contains(decision.Message, "below the minimum threshold") {
		t.Errorf("unexpected message: %q", decision.Message)
	}
	if ldg.Len() != 0 {
		t.Error("ineligible decision must not write to the ledger")
	}
}

func TestDecideRejectedOverMax(t *testing.T) {
	orch, ldg := newOrchestrator()

	decision, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 2500,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(12),
		LoanTerm:      intPtr(12),
	}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !decision.Eligible {
		t.Error("expected eligible")
	}
	if decision.AdvanceApproved {
		t.Error("expected rejection above max advance")
	}
	if decision.ApprovedAmount != 0 || decision.Fee != 0 {
		t.Errorf("rejected decision must zero amount and fee, got %+v", decision)
	}
	if decision.TotalRepayable != nil {
		t.Error("rejected decision must skip loan math")
	}
	if decision.LoanID != nil {
		t.Error("rejected decision must not produce a loan id")
	}
	if decision.State() != StateRejected {
		t.Errorf("state = %s, expected %s", decision.State(), StateRejected)
	}
	if !strings.Contains(decision.Message, "$2,500.00") || !strings.Contains(decision.Message, "$2,000.00") {
		t.Errorf("message should state requested and max amounts: %q", decision.Message)
	}
	if ldg.Len() != 0 {
		t.Error("rejected decision must not write to the ledger")
	}
}

func TestDecideApprovedWithLoan(t *testing.T) {
	orch, ldg := newOrchestrator()

	decision, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:         4000,
		PayFrequency:        coreadvance.Monthly,
		AdvanceAmount:       1000,
		LoanAmount:          floatPtr(1000),
		InterestRate:        floatPtr(12),
		LoanTerm:            intPtr(12),
		IncludeAmortization: true,
	}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.TotalRepayable == nil {
		t.Fatal("expected total repayable")
	}
	if *decision.TotalRepayable != 1126.83 {
		t.Errorf("total repayable = %v, expected 1126.83", *decision.TotalRepayable)
	}
	if len(decision.AmortizationSchedule) != 12 {
		t.Errorf("schedule length = %d, expected 12", len(decision.AmortizationSchedule))
	}
	if decision.State() != StateApprovedWithLoan {
		t.Errorf("state = %s, expected %s", decision.State(), StateApprovedWithLoan)
	}
	if !strings.Contains(decision.Message, "Loan repayable: $1,126.83 over 12 months.") {
		t.Errorf("unexpected message: %q", decision.Message)
	}

	record, err := ldg.Get(context.Background(), *decision.LoanID)
	if err != nil {
		t.Fatalf("record not retrievable: %v", err)
	}
	if len(record.AmortizationSchedule) != 12 {
		t.Errorf("record schedule length = %d, expected 12", len(record.AmortizationSchedule))
	}
}

func TestDecideLoanWithoutAmortization(t *testing.T) {
	orch, _ := newOrchestrator()

	decision, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 1000,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(12),
		LoanTerm:      intPtr(12),
	}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.TotalRepayable == nil {
		t.Fatal("expected total repayable")
	}
	if decision.AmortizationSchedule != nil {
		t.Error("schedule must be omitted unless requested")
	}
}

func TestDecideExportShortCircuit(t *testing.T) {
	orch, ldg := newOrchestrator()

	decision, export, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 1000,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(12),
		LoanTerm:      intPtr(12),
	}, Options{ExportCSV: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision != nil {
		t.Error("export mode must not return a decision")
	}
	if export == nil {
		t.Fatal("expected export payload")
	}
	if export.Filename != "amortization_schedule.csv" {
		t.Errorf("filename = %q", export.Filename)
	}
	lines := strings.Split(strings.TrimRight(export.CSVData, "\n"), "\n")
	if lines[0] != "Month,Payment,Principal,Interest,Balance" {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
	if len(lines) != 13 {
		t.Errorf("expected header plus 12 rows, got %d lines", len(lines))
	}

	// Export mode returns before the ledger commit.
	if ldg.Len() != 0 {
		t.Error("export mode must not write to the ledger")
	}
}

func TestDecideInvalidFrequency(t *testing.T) {
	orch, _ := newOrchestrator()

	_, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.PayFrequency("Daily"),
		AdvanceAmount: 100,
	}, Options{})
	if !errors.Is(err, coreadvance.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDecideNegativeLoanTerm(t *testing.T) {
	orch, ldg := newOrchestrator()

	_, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 1000,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(12),
		LoanTerm:      intPtr(-3),
	}, Options{})
	if !errors.Is(err, coreadvance.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if ldg.Len() != 0 {
		t.Error("failed decision must not write to the ledger")
	}
}

func TestDecideZeroLoanFieldsSkipLoanMath(t *testing.T) {
	orch, _ := newOrchestrator()

	// A zero rate means the loan fields are not all truthy; loan math is
	// skipped entirely rather than computing a zero-interest loan.
	decision, _, err := orch.Decide(context.Background(), Request{
		GrossSalary:   4000,
		PayFrequency:  coreadvance.Monthly,
		AdvanceAmount: 1000,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(0),
		LoanTerm:      intPtr(12),
	}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.TotalRepayable != nil {
		t.Error("expected loan math skipped for zero interest rate")
	}
	if decision.State() != StateApproved {
		t.Errorf("state = %s, expected %s", decision.State(), StateApproved)
	}
}
