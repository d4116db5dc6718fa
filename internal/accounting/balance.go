package accounting

import (
	"net/http"

	"github.com/shopspring/decimal"

	"sige/internal/shared/apperror"
)

var (
	ErrImbalance = apperror.New(
		apperror.CodeAccountingImbalance,
		"Debits and credits do not balance",
		http.StatusInternalServerError,
	)

	ErrNoLines = apperror.New(
		apperror.CodeInvalidState,
		"An accounting entry needs at least one debit and one credit",
		http.StatusInternalServerError,
	)
)

// balanceTolerance absorbs numeric(14,2) rounding, nothing more.
var balanceTolerance = decimal.NewFromFloat(0.01)

// ValidateBalanced checks that the lines form a proper double entry:
// at least one line per side and |sum(debits) - sum(credits)| <= 0.01.
func ValidateBalanced(partidas []PartidaContabil) error {
	debits := decimal.Zero
	credits := decimal.Zero
	hasDebit, hasCredit := false, false

	for _, p := range partidas {
		switch p.Tipo {
		case LadoDebito:
			debits = debits.Add(p.Valor)
			hasDebit = true
		case LadoCredito:
			credits = credits.Add(p.Valor)
			hasCredit = true
		}
	}

	if !hasDebit || !hasCredit {
		return ErrNoLines
	}

	if debits.Sub(credits).Abs().GreaterThan(balanceTolerance) {
		return ErrImbalance
	}
	return nil
}
