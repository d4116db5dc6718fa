package rdo

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusRascunho   = "RASCUNHO"
	StatusFinalizado = "FINALIZADO"
)

// RDO is the daily worksite report (Relatorio Diario de Obra).
type RDO struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Numero        string          `gorm:"column:numero;type:varchar(30)"`
	ObraID        int64           `gorm:"column:obra_id"`
	DataRelatorio time.Time       `gorm:"column:data_relatorio;type:date"`
	Status        string          `gorm:"column:status;type:varchar(20)"`
	CustoTotal    decimal.Decimal `gorm:"column:custo_total;type:numeric(12,2)"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (RDO) TableName() string {
	return "rdo"
}

type RDOServico struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RDOID      int64           `gorm:"column:rdo_id"`
	Descricao  string          `gorm:"column:descricao;type:varchar(255)"`
	Quantidade decimal.Decimal `gorm:"column:quantidade;type:numeric(12,2)"`
	AdminID    int64           `gorm:"column:admin_id"`
}

func (RDOServico) TableName() string {
	return "rdo_servico"
}
