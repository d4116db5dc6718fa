package payroll

import "github.com/shopspring/decimal"

const StatusProcessada = "PROCESSADA"

type FolhaPagamento struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	FuncionarioID  int64           `gorm:"column:funcionario_id"`
	Competencia    string          `gorm:"column:competencia;type:varchar(7)"`
	SalarioBruto   decimal.Decimal `gorm:"column:salario_bruto;type:numeric(12,2)"`
	INSS           decimal.Decimal `gorm:"column:inss;type:numeric(12,2)"`
	IRRF           decimal.Decimal `gorm:"column:irrf;type:numeric(12,2)"`
	Encargos       decimal.Decimal `gorm:"column:encargos;type:numeric(12,2)"`
	SalarioLiquido decimal.Decimal `gorm:"column:salario_liquido;type:numeric(12,2)"`
	Status         string          `gorm:"column:status;type:varchar(20)"`
	AdminID        int64           `gorm:"column:admin_id"`
}

func (FolhaPagamento) TableName() string {
	return "folha_pagamento"
}
