package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loan-calculator/domain"
)

// ParseLoanInput converts raw form values into LoanParams. It is the only
// place where input is checked; the calculator trusts what it receives.
func ParseLoanInput(input domain.LoanInput) (domain.LoanParams, error) {
	principal, err := parseDecimal("principal", input.Principal)
	if err != nil {
		return domain.LoanParams{}, err
	}
	rate, err := parseDecimal("rate", input.Rate)
	if err != nil {
		return domain.LoanParams{}, err
	}
	years, err := parseYears(input.Years)
	if err != nil {
		return domain.LoanParams{}, err
	}

	if principal.IsNegative() {
		return domain.LoanParams{}, &domain.InputError{Field: "principal", Err: domain.ErrNegativePrincipal}
	}
	if principal.GreaterThan(MaxPrincipal) {
		return domain.LoanParams{}, &domain.InputError{
			Field: "principal",
			Err:   fmt.Errorf("%w (%s)", domain.ErrPrincipalTooLarge, MaxPrincipal.StringFixed(2)),
		}
	}
	if rate.IsNegative() {
		return domain.LoanParams{}, &domain.InputError{Field: "rate", Err: domain.ErrNegativeRate}
	}
	if rate.GreaterThan(MaxAnnualRate) {
		return domain.LoanParams{}, &domain.InputError{
			Field: "rate",
			Err:   fmt.Errorf("%w (%s%%)", domain.ErrRateTooHigh, MaxAnnualRate.StringFixed(2)),
		}
	}
	if years < MinTermYears {
		return domain.LoanParams{}, &domain.InputError{Field: "years", Err: domain.ErrTermTooShort}
	}
	if years > MaxTermYears {
		return domain.LoanParams{}, &domain.InputError{
			Field: "years",
			Err:   fmt.Errorf("%w (%d years)", domain.ErrTermTooLong, MaxTermYears),
		}
	}

	return domain.NewLoanParams(principal, rate, years), nil
}

// maxDecimalExponent bounds the exponents accepted from callers. Comparing
// or rescaling a decimal costs time proportional to its exponent.
const maxDecimalExponent = 64

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, &domain.InputError{Field: field, Err: domain.ErrMalformedInput}
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		// NewFromString reports both syntax errors and exponents it cannot
		// represent; a string that looks numeric failed on the latter.
		if looksNumeric(raw) {
			return decimal.Decimal{}, &domain.InputError{Field: field, Err: fmt.Errorf("%w: %v", domain.ErrInvalidDecimal, err)}
		}
		return decimal.Decimal{}, &domain.InputError{Field: field, Err: fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)}
	}
	if exp := value.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Decimal{}, &domain.InputError{Field: field, Err: fmt.Errorf("%w: exponent %d out of range", domain.ErrInvalidDecimal, exp)}
	}
	return value, nil
}

func parseYears(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	years, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.InputError{Field: "years", Err: fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)}
	}
	return years, nil
}

func looksNumeric(raw string) bool {
	mantissa, exponent, found := strings.Cut(strings.ToLower(raw), "e")
	if !found {
		return false
	}
	exponent = strings.TrimLeft(exponent, "+-")
	if exponent == "" || strings.Trim(exponent, "0123456789") != "" {
		return false
	}
	mantissa = strings.TrimLeft(mantissa, "+-")
	return mantissa != "" && strings.Trim(mantissa, "0123456789.") == ""
}
