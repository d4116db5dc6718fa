package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"sige/internal/employee"
	"sige/internal/kpi"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalcularINSS_Progressive(t *testing.T) {
	cases := []struct {
		name  string
		bruto string
		want  string
	}{
		{"zero", "0", "0"},
		{"first bracket only", "1412.00", "105.90"},
		{"spans three brackets", "3000.00", "258.82"},
		{"two brackets", "2000.00", "158.82"},
		{"capped at the table ceiling", "10000.00", "908.86"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalcularINSS(dec(tc.bruto))
			assert.True(t, got.Equal(dec(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestCalcularIRRF(t *testing.T) {
	t.Run("exempt below first limit", func(t *testing.T) {
		got := CalcularIRRF(dec("2000.00"), dec("158.82"), 0)
		assert.True(t, got.IsZero())
	})

	t.Run("second bracket", func(t *testing.T) {
		got := CalcularIRRF(dec("3000.00"), dec("258.82"), 0)
		assert.True(t, got.Equal(dec("36.15")), "got %s", got)
	})

	t.Run("top bracket", func(t *testing.T) {
		got := CalcularIRRF(dec("10000.00"), dec("908.86"), 0)
		assert.True(t, got.Equal(dec("1604.06")), "got %s", got)
	})

	t.Run("dependents shrink the base", func(t *testing.T) {
		with := CalcularIRRF(dec("3000.00"), dec("258.82"), 2)
		without := CalcularIRRF(dec("3000.00"), dec("258.82"), 0)
		assert.True(t, with.LessThan(without))
	})
}

func TestCalcularEncargos(t *testing.T) {
	got := CalcularEncargos(dec("3000.00"))
	assert.True(t, got.Equal(dec("840.00")), "FGTS 8%% plus employer INSS 20%%, got %s", got)
}

func TestMontarFolha(t *testing.T) {
	emp := &employee.Funcionario{ID: 5, Salario: 2200, AdminID: 1}
	bundle := &kpi.Bundle{
		ValorHora:       12.50,
		HorasExtras:     2,
		Faltas:          1,
		DiasProgramados: 23,
		HorasEsperadas:  184,
	}

	f := MontarFolha(emp, bundle, "2025-07")

	assert.Equal(t, int64(5), f.FuncionarioID)
	assert.Equal(t, "2025-07", f.Competencia)
	assert.Equal(t, StatusProcessada, f.Status)
	// 2200 + 2h extra at 1.5x12.50 - one 8h absence at 12.50
	assert.True(t, f.SalarioBruto.Equal(dec("2137.50")), "bruto %s", f.SalarioBruto)
	assert.True(t, f.INSS.Equal(dec("171.20")), "inss %s", f.INSS)
	assert.True(t, f.IRRF.IsZero(), "irrf %s", f.IRRF)
	assert.True(t, f.Encargos.Equal(dec("598.50")), "encargos %s", f.Encargos)
	assert.True(t, f.SalarioLiquido.Equal(dec("1966.30")), "liquido %s", f.SalarioLiquido)
}

func TestMontarFolha_GrossNeverNegative(t *testing.T) {
	emp := &employee.Funcionario{ID: 9, Salario: 100, AdminID: 1}
	bundle := &kpi.Bundle{
		ValorHora:       12.50,
		Faltas:          20,
		DiasProgramados: 23,
		HorasEsperadas:  184,
	}

	f := MontarFolha(emp, bundle, "2025-07")

	assert.True(t, f.SalarioBruto.IsZero())
	assert.True(t, f.SalarioLiquido.IsZero())
}
