package accounting

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	LadoDebito  = "DEBITO"
	LadoCredito = "CREDITO"
)

// Chart of accounts codes used by the event handlers. Fixed codes, the
// chart itself is not user-editable.
const (
	ContaBancos              = "1.1.01.002"
	ContaClientes            = "1.1.02.001"
	ContaEstoque             = "1.1.03.001"
	ContaSalariosAPagar      = "2.1.02.001"
	ContaINSSARecolher       = "2.1.03.001"
	ContaIRRFARecolher       = "2.1.03.002"
	ContaDespesaSalarios     = "3.1.01.001"
	ContaReceitaServicos     = "4.1.01.001"
	ContaCustoMateriais      = "5.1.02.001"
	ContaCMV                 = "5.1.03.001"
	ContaDespesasAdmin       = "5.1.04.001"
	ContaDespesasComerciais  = "5.1.05.001"
	ContaDespesasFinanceiras = "5.2.01.001"
)

// ExpenseAccountFor maps an invoice category to its expense account.
// Matching ignores case; unknown categories land in administrative
// expenses.
func ExpenseAccountFor(categoria string) string {
	switch strings.ToUpper(categoria) {
	case "MATERIAIS", "SUPRIMENTOS", "EQUIPAMENTOS":
		return ContaCustoMateriais
	case "MERCADORIAS":
		return ContaCMV
	case "SERVICOS", "COMERCIAL":
		return ContaDespesasComerciais
	case "FINANCEIRO":
		return ContaDespesasFinanceiras
	default:
		return ContaDespesasAdmin
	}
}

// Origin tags recorded on lancamento_contabil.origem. Together with
// origem_id they make re-posting the same fact impossible (unique per
// tenant).
const (
	OrigemFolha    = "folha_pagamento"
	OrigemProposta = "proposta_comercial"
	OrigemNotaPaga = "nota_fiscal"
	OrigemMaterial = "movimento_material"
)

type LancamentoContabil struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Numero     int64             `gorm:"column:numero"`
	Data       time.Time         `gorm:"column:data;type:date"`
	Historico  string            `gorm:"column:historico"`
	ValorTotal decimal.Decimal   `gorm:"column:valor_total;type:numeric(14,2)"`
	Origem     string            `gorm:"column:origem;type:varchar(30)"`
	OrigemID   int64             `gorm:"column:origem_id"`
	AdminID    int64             `gorm:"column:admin_id"`
	CriadoEm   time.Time         `gorm:"column:criado_em;autoCreateTime"`
	Partidas   []PartidaContabil `gorm:"foreignKey:LancamentoID"`
}

func (LancamentoContabil) TableName() string {
	return "lancamento_contabil"
}

type PartidaContabil struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	LancamentoID int64           `gorm:"column:lancamento_id"`
	Sequencia    int             `gorm:"column:sequencia"`
	ContaCodigo  string          `gorm:"column:conta_codigo;type:varchar(20)"`
	Tipo         string          `gorm:"column:tipo;type:varchar(10)"`
	Valor        decimal.Decimal `gorm:"column:valor;type:numeric(14,2)"`
	Historico    *string         `gorm:"column:historico;type:varchar(255)"`
	AdminID      int64           `gorm:"column:admin_id"`
}

func (PartidaContabil) TableName() string {
	return "partida_contabil"
}
