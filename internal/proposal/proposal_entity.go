package proposal

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusRascunho = "RASCUNHO"
	StatusEnviada  = "ENVIADA"
	StatusAprovada = "APROVADA"
	StatusRecusada = "RECUSADA"
)

type PropostaComercial struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Numero        string          `gorm:"column:numero;type:varchar(30)"`
	Cliente       string          `gorm:"column:cliente;type:varchar(120)"`
	ValorTotal    decimal.Decimal `gorm:"column:valor_total;type:numeric(12,2)"`
	Status        string          `gorm:"column:status;type:varchar(20)"`
	DataAprovacao *time.Time      `gorm:"column:data_aprovacao;type:date"`
	ObraID        *int64          `gorm:"column:obra_id"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (PropostaComercial) TableName() string {
	return "proposta_comercial"
}
