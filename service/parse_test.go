package service

import (
	"errors"
	"testing"

	"loan-calculator/domain"
)

func TestParseLoanInput_Valid(t *testing.T) {
	p, err := ParseLoanInput(domain.LoanInput{Principal: " 100000.00 ", Rate: "3.5", Years: "20"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Principal().String() != "100000" {
		t.Errorf("Principal = %s, want 100000", p.Principal())
	}
	if p.AnnualRatePercent().String() != "3.5" {
		t.Errorf("AnnualRatePercent = %s, want 3.5", p.AnnualRatePercent())
	}
	if p.TermYears() != 20 {
		t.Errorf("TermYears = %d, want 20", p.TermYears())
	}
}

func TestParseLoanInput_ScientificNotation(t *testing.T) {
	p, err := ParseLoanInput(domain.LoanInput{Principal: "1e3", Rate: "1e-7", Years: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Principal().String() != "1000" {
		t.Errorf("Principal = %s, want 1000", p.Principal())
	}
}

func TestParseLoanInput_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     domain.LoanInput
		wantField string
		wantErr   error
	}{
		{"text principal", domain.LoanInput{Principal: "abc", Rate: "3", Years: "10"}, "principal", domain.ErrMalformedInput},
		{"empty principal", domain.LoanInput{Principal: "", Rate: "3", Years: "10"}, "principal", domain.ErrMalformedInput},
		{"empty rate", domain.LoanInput{Principal: "1000", Rate: "  ", Years: "10"}, "rate", domain.ErrMalformedInput},
		{"text rate", domain.LoanInput{Principal: "1000", Rate: "3,5", Years: "10"}, "rate", domain.ErrMalformedInput},
		{"fractional years", domain.LoanInput{Principal: "1000", Rate: "3", Years: "2.5"}, "years", domain.ErrMalformedInput},
		{"empty years", domain.LoanInput{Principal: "1000", Rate: "3", Years: ""}, "years", domain.ErrMalformedInput},
		{"exponent overflow", domain.LoanInput{Principal: "1e99999999999", Rate: "3", Years: "10"}, "principal", domain.ErrInvalidDecimal},
		{"exponent too large", domain.LoanInput{Principal: "1e500", Rate: "3", Years: "10"}, "principal", domain.ErrInvalidDecimal},
		{"exponent too small", domain.LoanInput{Principal: "1000", Rate: "1e-500", Years: "10"}, "rate", domain.ErrInvalidDecimal},
		{"negative principal", domain.LoanInput{Principal: "-1", Rate: "3", Years: "10"}, "principal", domain.ErrNegativePrincipal},
		{"huge principal", domain.LoanInput{Principal: "1000000000.01", Rate: "3", Years: "10"}, "principal", domain.ErrPrincipalTooLarge},
		{"negative rate", domain.LoanInput{Principal: "1000", Rate: "-0.5", Years: "10"}, "rate", domain.ErrNegativeRate},
		{"huge rate", domain.LoanInput{Principal: "1000", Rate: "1000.5", Years: "10"}, "rate", domain.ErrRateTooHigh},
		{"zero years", domain.LoanInput{Principal: "1000", Rate: "3", Years: "0"}, "years", domain.ErrTermTooShort},
		{"too many years", domain.LoanInput{Principal: "1000", Rate: "3", Years: "51"}, "years", domain.ErrTermTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLoanInput(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}

			var inputErr *domain.InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *domain.InputError, got %T", err)
			}
			if inputErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", inputErr.Field, tt.wantField)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLoanInput_Boundaries(t *testing.T) {
	inputs := []domain.LoanInput{
		{Principal: "0", Rate: "0", Years: "1"},
		{Principal: "1000000000", Rate: "1000", Years: "50"},
	}

	for _, input := range inputs {
		if _, err := ParseLoanInput(input); err != nil {
			t.Errorf("ParseLoanInput(%+v): unexpected error %v", input, err)
		}
	}
}
