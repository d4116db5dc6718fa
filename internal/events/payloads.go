package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type PunchRegisteredPayload struct {
	RegistroID    int64     `json:"registro_id"`
	FuncionarioID int64     `json:"funcionario_id"`
	Data          time.Time `json:"data"`
}

type PayrollProcessedPayload struct {
	FolhaID       int64           `json:"folha_id"`
	FuncionarioID int64           `json:"funcionario_id"`
	Competencia   string          `json:"competencia"` // YYYY-MM
	SalarioBruto  decimal.Decimal `json:"salario_bruto"`
	INSS          decimal.Decimal `json:"inss"`
	IRRF          decimal.Decimal `json:"irrf"`
	Encargos      decimal.Decimal `json:"encargos"`
}

type ProposalApprovedPayload struct {
	PropostaID    int64           `json:"proposta_id"`
	Cliente       string          `json:"cliente"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	DataAprovacao time.Time       `json:"data_aprovacao"`
	ObraID        *int64          `json:"obra_id,omitempty"`
}

type InvoicePaidPayload struct {
	NotaFiscalID  int64           `json:"nota_fiscal_id"`
	Fornecedor    string          `json:"fornecedor"`
	Categoria     string          `json:"categoria"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	DataPagamento time.Time       `json:"data_pagamento"`
}

type MaterialMovedPayload struct {
	MovimentoID int64           `json:"movimento_id"`
	ObraID      int64           `json:"obra_id"`
	Item        string          `json:"item"`
	Tipo        string          `json:"tipo"` // ENTRADA | SAIDA
	ValorTotal  decimal.Decimal `json:"valor_total"`
}

type MonthClosingPayload struct {
	Competencia string `json:"competencia"` // YYYY-MM
}
