package schedule

import "time"

// HorarioTrabalho is a working-hours definition. A row either belongs to
// one employee (funcionario_id set) or is shared and referenced through
// funcionario.horario_trabalho_id. Validity windows let salary-neutral
// schedule changes coexist with historical punches.
type HorarioTrabalho struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Nome          string     `gorm:"column:nome;type:varchar(80)"`
	Entrada       string     `gorm:"column:entrada;type:varchar(5)"`
	SaidaAlmoco   *string    `gorm:"column:saida_almoco;type:varchar(5)"`
	RetornoAlmoco *string    `gorm:"column:retorno_almoco;type:varchar(5)"`
	Saida         string     `gorm:"column:saida;type:varchar(5)"`
	HorasDiarias  float64    `gorm:"column:horas_diarias;type:numeric(4,2)"`
	FuncionarioID *int64     `gorm:"column:funcionario_id"`
	ValidoDe      time.Time  `gorm:"column:valido_de;type:date"`
	ValidoAte     *time.Time `gorm:"column:valido_ate;type:date"`
	Ativo         bool       `gorm:"column:ativo"`
	AdminID       int64      `gorm:"column:admin_id"`
}

func (HorarioTrabalho) TableName() string {
	return "horario_trabalho"
}
