package worksite

import (
	"time"

	"github.com/shopspring/decimal"
)

type Obra struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Nome    string `gorm:"column:nome;type:varchar(120)"`
	Status  string `gorm:"column:status;type:varchar(30)"`
	Ativo   bool   `gorm:"column:ativo"`
	AdminID int64  `gorm:"column:admin_id"`
}

func (Obra) TableName() string {
	return "obra"
}

// Cost kinds recorded on custo_obra.tipo.
const (
	CustoMaoObra  = "mao_obra"
	CustoMaterial = "material"
	CustoServico  = "servico"
	CustoOutro    = "outro"
)

type CustoObra struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ObraID        int64           `gorm:"column:obra_id"`
	Data          time.Time       `gorm:"column:data;type:date"`
	Tipo          string          `gorm:"column:tipo;type:varchar(30)"`
	Descricao     *string         `gorm:"column:descricao;type:varchar(255)"`
	Valor         decimal.Decimal `gorm:"column:valor;type:numeric(12,2)"`
	FuncionarioID *int64          `gorm:"column:funcionario_id"`
	AdminID       int64           `gorm:"column:admin_id"`
}

func (CustoObra) TableName() string {
	return "custo_obra"
}
