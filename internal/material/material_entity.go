package material

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TipoEntrada = "ENTRADA"
	TipoSaida   = "SAIDA"
)

type MovimentoMaterial struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ObraID        int64           `gorm:"column:obra_id"`
	Item          string          `gorm:"column:item;type:varchar(120)"`
	Quantidade    decimal.Decimal `gorm:"column:quantidade;type:numeric(12,3)"`
	ValorUnitario decimal.Decimal `gorm:"column:valor_unitario;type:numeric(12,2)"`
	ValorTotal    decimal.Decimal `gorm:"column:valor_total;type:numeric(12,2)"`
	Tipo          string          `gorm:"column:tipo;type:varchar(10)"`
	Data          time.Time       `gorm:"column:data;type:date"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (MovimentoMaterial) TableName() string {
	return "movimento_material"
}
