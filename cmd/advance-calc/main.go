// Command advance-calc computes a single advance decision from the command
// line, without running the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/advancehq/salary-advance/internal/advance"
	"github.com/advancehq/salary-advance/internal/ledger"
	coreadvance "github.com/advancehq/salary-advance/pkg/advance"
	"github.com/advancehq/salary-advance/pkg/constants"
	"github.com/advancehq/salary-advance/pkg/format"
	"github.com/advancehq/salary-advance/pkg/output"
	"go.uber.org/zap"
)

func main() {
	grossSalary := flag.Float64("gross-salary", 0, "gross salary per pay period")
	payFrequency := flag.String("pay-frequency", "Monthly", "pay frequency: Weekly, Bi-Weekly, Monthly, Annually")
	advanceAmount := flag.Float64("advance-amount", 0, "requested advance amount")
	loanAmount := flag.Float64("loan-amount", 0, "optional loan principal")
	interestRate := flag.Float64("interest-rate", 0, "annual interest rate in percent")
	loanTerm := flag.Int("loan-term", 0, "loan term in months")
	includeAmortization := flag.Bool("amortization", false, "include the amortization schedule")
	outputFormat := flag.String("output-format", constants.OutputFormatPretty, "type of output: pretty, csv")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *outputFormat != constants.OutputFormatPretty && *outputFormat != constants.OutputFormatCSV {
		fmt.Fprintf(os.Stderr, "invalid output format %q; expected pretty or csv\n", *outputFormat)
		os.Exit(1)
	}

	req := advance.Request{
		GrossSalary:         *grossSalary,
		PayFrequency:        coreadvance.PayFrequency(*payFrequency),
		AdvanceAmount:       *advanceAmount,
		IncludeAmortization: *includeAmortization,
	}
	if *loanAmount != 0 {
		req.LoanAmount = loanAmount
	}
	if *interestRate != 0 {
		req.InterestRate = interestRate
	}
	if *loanTerm != 0 {
		req.LoanTerm = loanTerm
	}
	if req.HasLoanTerms() && *outputFormat == constants.OutputFormatCSV {
		// CSV output implies the schedule is wanted.
		req.IncludeAmortization = true
	}

	orchestrator := advance.New(logger, ledger.New(logger, nil))
	decision, _, err := orchestrator.Decide(context.Background(), req, advance.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *outputFormat == constants.OutputFormatCSV {
		if len(decision.AmortizationSchedule) == 0 {
			fmt.Fprintln(os.Stderr, "no amortization schedule to export; provide loan-amount, interest-rate and loan-term")
			os.Exit(1)
		}
		fmt.Print(output.ScheduleCSV(decision.AmortizationSchedule))
		return
	}

	fmt.Println(decision.Message)
	fmt.Printf("Eligible:        %t\n", decision.Eligible)
	fmt.Printf("Approved:        %t\n", decision.AdvanceApproved)
	fmt.Printf("Maximum advance: %s\n", format.Currency(decision.MaxAdvance))
	if decision.AdvanceApproved {
		fmt.Printf("Approved amount: %s\n", format.Currency(decision.ApprovedAmount))
		fmt.Printf("Fee:             %s\n", format.Currency(decision.Fee))
	}
	if decision.TotalRepayable != nil {
		fmt.Printf("Total repayable: %s\n", format.Currency(*decision.TotalRepayable))
	}
	if decision.LoanID != nil {
		fmt.Printf("Loan ID:         %s\n", *decision.LoanID)
	}
	if len(decision.AmortizationSchedule) > 0 {
		fmt.Println()
		output.PrettySchedule(decision.AmortizationSchedule)
	}
}
