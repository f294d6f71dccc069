package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
	ratePrecision = int32(28)
)

// LoanInput holds the raw values as they arrive from a form or a JSON body.
type LoanInput struct {
	Principal string `json:"principal"`
	Rate      string `json:"rate"`
	Years     string `json:"years"`
}

// LoanParams is an immutable set of loan parameters. Fields are unexported so
// the derived values can never drift from the inputs they come from.
type LoanParams struct {
	principal  decimal.Decimal
	annualRate decimal.Decimal
	years      int
}

// NewLoanParams builds LoanParams from already parsed values. No validation
// is done here.
func NewLoanParams(principal, annualRatePercent decimal.Decimal, years int) LoanParams {
	return LoanParams{
		principal:  principal,
		annualRate: annualRatePercent,
		years:      years,
	}
}

func (p LoanParams) Principal() decimal.Decimal { return p.principal }

func (p LoanParams) AnnualRatePercent() decimal.Decimal { return p.annualRate }

func (p LoanParams) TermYears() int { return p.years }

// MonthlyRate returns annual_rate / 100 / 12 as a fraction.
func (p LoanParams) MonthlyRate() decimal.Decimal {
	return p.annualRate.
		DivRound(hundred, ratePrecision).
		DivRound(monthsPerYear, ratePrecision)
}

// TotalMonths returns the number of monthly installments.
func (p LoanParams) TotalMonths() int {
	return p.years * 12
}

// LoanResult is the outcome of one calculation. Both amounts are rounded to
// cents.
type LoanResult struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

// Quote is a LoanResult returned to API callers together with the
// parameters it was computed from.
type Quote struct {
	ID             uuid.UUID `json:"id"`
	Principal      string    `json:"principal"`
	AnnualRate     string    `json:"annual_rate"`
	TermYears      int       `json:"term_years"`
	TotalMonths    int       `json:"total_months"`
	MonthlyPayment string    `json:"monthly_payment"`
	TotalCost      string    `json:"total_cost"`
	Cached         bool      `json:"cached"`
}

// NewQuote formats a result for display, amounts with exactly two decimals.
func NewQuote(params LoanParams, result LoanResult, cached bool) Quote {
	return Quote{
		ID:             uuid.New(),
		Principal:      params.Principal().String(),
		AnnualRate:     params.AnnualRatePercent().String(),
		TermYears:      params.TermYears(),
		TotalMonths:    params.TotalMonths(),
		MonthlyPayment: FormatAmount(result.MonthlyPayment),
		TotalCost:      FormatAmount(result.TotalCost),
		Cached:         cached,
	}
}

// FormatAmount renders a currency amount as a plain decimal string with two
// fractional digits.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixedBank(2)
}
