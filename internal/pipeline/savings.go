package pipeline

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/salarygap/internal/model"
)

// Purchase frequency assumptions: two coffees a week and one cheese block
// every two weeks. The yearly figures are fixed literals, not 12x monthly.
const (
	MonthsPerYear        = 12
	CheeseBlocksPerMonth = 2
	CheeseBlocksPerYear  = 30
	CoffeesPerMonth      = 8
	CoffeesPerYear       = 100
)

// savingsPrecision is the number of decimal places results are rounded to.
const savingsPrecision = 2

// float64Digits is enough fractional digits to print any float64 exactly.
const float64Digits = 1074

// ComputeSavings derives monthly and annual savings. The sums run in float64
// in left-to-right order and the results are rounded to cents on the exact
// binary value, ties to even. Results are never clamped: negative savings are
// valid.
func ComputeSavings(in model.BudgetInputs) model.SavingsResult {
	// Products are converted explicitly so they are never fused into the adds.
	monthlyCost := in.Rent +
		in.Groceries +
		float64(in.CheeseBlockPrice*CheeseBlocksPerMonth) +
		float64(in.CoffeePrice*CoffeesPerMonth) +
		in.AdditionalMonthlyExpenses
	monthly := float64(in.Salary/MonthsPerYear) - monthlyCost

	annualCost := float64(in.Rent*MonthsPerYear) +
		float64(in.Groceries*MonthsPerYear) +
		float64(in.CheeseBlockPrice*CheeseBlocksPerYear) +
		float64(in.CoffeePrice*CoffeesPerYear) +
		float64(in.AdditionalMonthlyExpenses*MonthsPerYear)
	annual := in.Salary - annualCost

	return model.SavingsResult{
		MonthlySavings: roundCents(monthly),
		AnnualSavings:  roundCents(annual),
	}
}

// roundCents rounds v to cents. decimal.NewFromFloat would start from the
// shortest representation of v, so the exact expansion is parsed instead.
func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact, err := decimal.NewFromString(new(big.Float).SetFloat64(v).Text('f', float64Digits))
	if err != nil {
		return v
	}
	return exact.RoundBank(savingsPrecision).InexactFloat64()
}
