package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(tipo, conta string, valor float64) PartidaContabil {
	return PartidaContabil{
		Tipo:        tipo,
		ContaCodigo: conta,
		Valor:       decimal.NewFromFloat(valor),
	}
}

func TestValidateBalanced_AcceptsProperEntry(t *testing.T) {
	partidas := []PartidaContabil{
		line(LadoDebito, ContaDespesaSalarios, 3000),
		line(LadoCredito, ContaSalariosAPagar, 2500),
		line(LadoCredito, ContaINSSARecolher, 330),
		line(LadoCredito, ContaIRRFARecolher, 170),
	}

	assert.NoError(t, ValidateBalanced(partidas))
}

func TestValidateBalanced_RejectsImbalance(t *testing.T) {
	partidas := []PartidaContabil{
		line(LadoDebito, ContaDespesaSalarios, 3000),
		line(LadoCredito, ContaSalariosAPagar, 2900),
	}

	assert.ErrorIs(t, ValidateBalanced(partidas), ErrImbalance)
}

func TestValidateBalanced_ToleratesCentRounding(t *testing.T) {
	partidas := []PartidaContabil{
		line(LadoDebito, ContaClientes, 100.00),
		line(LadoCredito, ContaReceitaServicos, 99.99),
	}

	assert.NoError(t, ValidateBalanced(partidas))
}

func TestValidateBalanced_RequiresBothSides(t *testing.T) {
	onlyDebits := []PartidaContabil{
		line(LadoDebito, ContaBancos, 50),
		line(LadoDebito, ContaClientes, 50),
	}

	assert.ErrorIs(t, ValidateBalanced(onlyDebits), ErrNoLines)
	assert.ErrorIs(t, ValidateBalanced(nil), ErrNoLines)
}

func TestExpenseAccountFor(t *testing.T) {
	assert.Equal(t, ContaCustoMateriais, ExpenseAccountFor("MATERIAIS"))
	assert.Equal(t, ContaCustoMateriais, ExpenseAccountFor("SUPRIMENTOS"))
	assert.Equal(t, ContaCustoMateriais, ExpenseAccountFor("EQUIPAMENTOS"))
	assert.Equal(t, ContaCMV, ExpenseAccountFor("MERCADORIAS"))
	assert.Equal(t, ContaDespesasComerciais, ExpenseAccountFor("SERVICOS"))
	assert.Equal(t, ContaDespesasComerciais, ExpenseAccountFor("COMERCIAL"))
	assert.Equal(t, ContaDespesasFinanceiras, ExpenseAccountFor("FINANCEIRO"))
	assert.Equal(t, ContaDespesasAdmin, ExpenseAccountFor("OUTROS"))
	assert.Equal(t, ContaDespesasAdmin, ExpenseAccountFor("UNKNOWN"))
}

func TestExpenseAccountFor_IgnoresCase(t *testing.T) {
	assert.Equal(t, ContaCustoMateriais, ExpenseAccountFor("equipamentos"))
	assert.Equal(t, ContaDespesasComerciais, ExpenseAccountFor("Servicos"))
	assert.Equal(t, ContaDespesasAdmin, ExpenseAccountFor("qualquer_coisa"))
}
