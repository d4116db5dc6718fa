package payroll

import "github.com/shopspring/decimal"

// 2025 statutory tables. Update yearly.
type inssBracket struct {
	Limite   decimal.Decimal
	Aliquota decimal.Decimal
}

type irrfBracket struct {
	Limite         decimal.Decimal
	Aliquota       decimal.Decimal
	ParcelaDeduzir decimal.Decimal
}

var tabelaINSS = []inssBracket{
	{decimal.NewFromFloat(1412.00), decimal.NewFromFloat(7.5)},
	{decimal.NewFromFloat(2666.68), decimal.NewFromFloat(9.0)},
	{decimal.NewFromFloat(4000.03), decimal.NewFromFloat(12.0)},
	{decimal.NewFromFloat(7786.02), decimal.NewFromFloat(14.0)},
}

var tabelaIRRF = []irrfBracket{
	{decimal.NewFromFloat(2259.20), decimal.Zero, decimal.Zero},
	{decimal.NewFromFloat(2826.65), decimal.NewFromFloat(7.5), decimal.NewFromFloat(169.44)},
	{decimal.NewFromFloat(3751.05), decimal.NewFromFloat(15.0), decimal.NewFromFloat(381.44)},
	{decimal.NewFromFloat(4664.68), decimal.NewFromFloat(22.5), decimal.NewFromFloat(662.77)},
	{decimal.NewFromFloat(999999.99), decimal.NewFromFloat(27.5), decimal.NewFromFloat(896.00)},
}

var (
	deducaoDependente = decimal.NewFromFloat(189.59)
	aliquotaFGTS      = decimal.NewFromFloat(0.08)
	aliquotaPatronal  = decimal.NewFromFloat(0.20)
	cem               = decimal.NewFromInt(100)
)

// CalcularINSS applies the progressive table: each bracket taxes only the
// slice of the gross that falls inside it.
func CalcularINSS(bruto decimal.Decimal) decimal.Decimal {
	if bruto.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	total := decimal.Zero
	restante := bruto
	anterior := decimal.Zero

	for _, faixa := range tabelaINSS {
		if restante.LessThanOrEqual(decimal.Zero) {
			break
		}
		largura := faixa.Limite.Sub(anterior)
		fatia := decimal.Min(restante, largura)
		total = total.Add(fatia.Mul(faixa.Aliquota).Div(cem))
		restante = restante.Sub(fatia)
		anterior = faixa.Limite
	}

	return total.Round(2)
}

// CalcularIRRF taxes the base (gross minus INSS minus dependent
// deductions) by the single bracket it lands in, less the bracket's
// standard deduction.
func CalcularIRRF(bruto, inss decimal.Decimal, dependentes int) decimal.Decimal {
	base := bruto.Sub(inss).Sub(deducaoDependente.Mul(decimal.NewFromInt(int64(dependentes))))
	if base.LessThanOrEqual(tabelaIRRF[0].Limite) {
		return decimal.Zero
	}

	for _, faixa := range tabelaIRRF {
		if base.LessThanOrEqual(faixa.Limite) {
			ir := base.Mul(faixa.Aliquota).Div(cem).Sub(faixa.ParcelaDeduzir)
			if ir.IsNegative() {
				return decimal.Zero
			}
			return ir.Round(2)
		}
	}
	return decimal.Zero
}

// CalcularEncargos returns the employer-side charges: FGTS 8% plus the
// simplified 20% employer INSS.
func CalcularEncargos(bruto decimal.Decimal) decimal.Decimal {
	fgts := bruto.Mul(aliquotaFGTS)
	patronal := bruto.Mul(aliquotaPatronal)
	return fgts.Add(patronal).Round(2)
}
