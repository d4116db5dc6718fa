package employee

import "time"

type Funcionario struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Codigo            string     `gorm:"column:codigo;type:varchar(20)"`
	Nome              string     `gorm:"column:nome;type:varchar(120)"`
	Salario           float64    `gorm:"column:salario;type:numeric(12,2)"`
	DataAdmissao      *time.Time `gorm:"column:data_admissao;type:date"`
	HorarioTrabalhoID *int64     `gorm:"column:horario_trabalho_id"`
	ObraID            *int64     `gorm:"column:obra_id"`
	Ativo             bool       `gorm:"column:ativo"`
	AdminID           int64      `gorm:"column:admin_id"`
}

func (Funcionario) TableName() string {
	return "funcionario"
}

// AuditoriaSalario records every salary change, written by the
// salary-update workflow alongside the change itself.
type AuditoriaSalario struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FuncionarioID   int64     `gorm:"column:funcionario_id"`
	SalarioAnterior float64   `gorm:"column:salario_anterior;type:numeric(12,2)"`
	SalarioNovo     float64   `gorm:"column:salario_novo;type:numeric(12,2)"`
	Motivo          string    `gorm:"column:motivo"`
	AdminID         int64     `gorm:"column:admin_id"`
	CriadoEm        time.Time `gorm:"column:criado_em;autoCreateTime"`
}

func (AuditoriaSalario) TableName() string {
	return "auditoria_salario"
}
