package receivable

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPendente = "PENDENTE"
	StatusRecebido = "RECEBIDO"
)

type ContaReceber struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Cliente        string          `gorm:"column:cliente;type:varchar(120)"`
	Descricao      *string         `gorm:"column:descricao;type:varchar(255)"`
	Valor          decimal.Decimal `gorm:"column:valor;type:numeric(12,2)"`
	DataVencimento time.Time       `gorm:"column:data_vencimento;type:date"`
	Status         string          `gorm:"column:status;type:varchar(20)"`
	Origem         *string         `gorm:"column:origem;type:varchar(30)"`
	OrigemID       *int64          `gorm:"column:origem_id"`
	AdminID        int64           `gorm:"column:admin_id"`
	CriadoEm       time.Time       `gorm:"column:criado_em;autoCreateTime"`
}

func (ContaReceber) TableName() string {
	return "conta_receber"
}
