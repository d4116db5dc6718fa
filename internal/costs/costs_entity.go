package costs

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegistroAlimentacao struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	FuncionarioID int64           `gorm:"column:funcionario_id"`
	ObraID        *int64          `gorm:"column:obra_id"`
	Data          time.Time       `gorm:"column:data;type:date"`
	Tipo          string          `gorm:"column:tipo;type:varchar(30)"`
	Valor         decimal.Decimal `gorm:"column:valor;type:numeric(10,2)"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (RegistroAlimentacao) TableName() string {
	return "registro_alimentacao"
}

type OutroCusto struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	FuncionarioID int64           `gorm:"column:funcionario_id"`
	ObraID        *int64          `gorm:"column:obra_id"`
	Data          time.Time       `gorm:"column:data;type:date"`
	Tipo          string          `gorm:"column:tipo;type:varchar(50)"`
	Categoria     *string         `gorm:"column:categoria;type:varchar(30)"`
	Valor         decimal.Decimal `gorm:"column:valor;type:numeric(10,2)"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (OutroCusto) TableName() string {
	return "outro_custo"
}

type VeiculoDespesa struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	FuncionarioID *int64          `gorm:"column:funcionario_id"`
	Data          time.Time       `gorm:"column:data;type:date"`
	Tipo          string          `gorm:"column:tipo;type:varchar(30)"`
	Valor         decimal.Decimal `gorm:"column:valor;type:numeric(10,2)"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (VeiculoDespesa) TableName() string {
	return "veiculo_despesa"
}
