package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPendente = "PENDENTE"
	StatusPaga     = "PAGA"
)

type NotaFiscal struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Numero        string          `gorm:"column:numero;type:varchar(30)"`
	Fornecedor    string          `gorm:"column:fornecedor;type:varchar(120)"`
	ValorTotal    decimal.Decimal `gorm:"column:valor_total;type:numeric(12,2)"`
	Categoria     string          `gorm:"column:categoria;type:varchar(30)"`
	Status        string          `gorm:"column:status;type:varchar(20)"`
	DataEmissao   *time.Time      `gorm:"column:data_emissao;type:date"`
	DataPagamento *time.Time      `gorm:"column:data_pagamento;type:date"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (NotaFiscal) TableName() string {
	return "nota_fiscal"
}
