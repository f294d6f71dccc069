package service

import (
	"github.com/shopspring/decimal"

	"loan-calculator/domain"
)

var (
	// zeroRateTolerance is the monthly rate under which a loan is treated as
	// interest free. The annuity formula divides by (1+r)^n - 1, which
	// approaches zero with r.
	zeroRateTolerance = decimal.New(1, -6)

	one = decimal.NewFromInt(1)
)

// intermediatePrecision is the number of fractional digits kept by divisions
// and powers before the final rounding to cents.
const intermediatePrecision = int32(34)

// LoanCalculator turns loan parameters into a monthly payment and the total
// interest cost. It holds no state and is safe for concurrent use.
type LoanCalculator struct{}

func NewLoanCalculator() LoanCalculator {
	return LoanCalculator{}
}

// Calculate returns the monthly payment and total cost of the loan, both
// rounded half-to-even to two fractional digits.
func (LoanCalculator) Calculate(params domain.LoanParams) domain.LoanResult {
	months := params.TotalMonths()
	if months <= 0 {
		return zeroResult()
	}

	principal := params.Principal()
	rate := params.MonthlyRate()
	n := decimal.NewFromInt(int64(months))

	var monthlyPayment, totalCost decimal.Decimal

	if isZeroRate(rate) {
		monthlyPayment = quo(principal, n)
		totalCost = decimal.Zero
	} else {
		growth := pow(one.Add(rate), months)
		denominator := growth.Sub(one)
		if denominator.IsZero() {
			return zeroResult()
		}

		c1 := quo(principal.Mul(rate), denominator)
		monthlyPayment = principal.Mul(rate).Add(c1)
		totalCost = c1.Mul(n).Mul(growth).Sub(principal)
	}

	return domain.LoanResult{
		MonthlyPayment: roundCents(monthlyPayment),
		TotalCost:      roundCents(totalCost),
	}
}

// ZeroRate reports whether params fall into the interest-free branch.
func (LoanCalculator) ZeroRate(params domain.LoanParams) bool {
	return isZeroRate(params.MonthlyRate())
}

func isZeroRate(monthlyRate decimal.Decimal) bool {
	return monthlyRate.Abs().LessThan(zeroRateTolerance)
}

func zeroResult() domain.LoanResult {
	return domain.LoanResult{
		MonthlyPayment: roundCents(decimal.Zero),
		TotalCost:      roundCents(decimal.Zero),
	}
}

func roundCents(value decimal.Decimal) decimal.Decimal {
	return value.RoundBank(2)
}

// quo divides num by den keeping intermediatePrecision digits beyond the
// integer part of den, so tiny quotients of large denominators survive.
func quo(num, den decimal.Decimal) decimal.Decimal {
	places := intermediatePrecision
	if digits := den.NumDigits() + int(den.Exponent()); digits > 0 {
		places += int32(digits)
	}
	return num.DivRound(den, places)
}

// pow raises base to a non-negative integer exponent by repeated squaring,
// rounding each product to intermediatePrecision fractional digits so the
// operands stay bounded for long terms.
func pow(base decimal.Decimal, exp int) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(intermediatePrecision)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base).Round(intermediatePrecision)
		}
	}
	return result
}
