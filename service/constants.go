package service

import "github.com/shopspring/decimal"

const (
	MaxTermYears = 50 // 600 meses
	MinTermYears = 1
)

var (
	MaxPrincipal  = decimal.NewFromInt(1_000_000_000) // 1 billón
	MaxAnnualRate = decimal.NewFromInt(1000)          // 1000% anual
)
