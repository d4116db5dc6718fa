package punch

import "time"

// Record kinds persisted in registro_ponto.tipo_registro. The Portuguese
// values are a wire contract shared with reports, do not translate.
const (
	TipoTrabalhoNormal    = "trabalho_normal"
	TipoMeioPeriodo       = "meio_periodo"
	TipoAtrasoEntrada     = "atraso_entrada"
	TipoSaidaAntecipada   = "saida_antecipada"
	TipoFalta             = "falta"
	TipoFaltaJustificada  = "falta_justificada"
	TipoSabadoExtras      = "sabado_horas_extras"
	TipoDomingoExtras     = "domingo_horas_extras"
	TipoFeriadoTrabalhado = "feriado_trabalhado"
	TipoSabadoFolga       = "sabado_folga"
	TipoDomingoFolga      = "domingo_folga"
	TipoFeriadoFolga      = "feriado_folga"
)

func IsKnownTipo(tipo string) bool {
	switch tipo {
	case TipoTrabalhoNormal, TipoMeioPeriodo, TipoAtrasoEntrada, TipoSaidaAntecipada,
		TipoFalta, TipoFaltaJustificada, TipoSabadoExtras, TipoDomingoExtras,
		TipoFeriadoTrabalhado, TipoSabadoFolga, TipoDomingoFolga, TipoFeriadoFolga:
		return true
	}
	return false
}

// isWorkday reports whether the kind follows normal schedule arithmetic
// (lateness and early/late overtime against the expected window).
func isWorkday(tipo string) bool {
	switch tipo {
	case TipoTrabalhoNormal, TipoMeioPeriodo, TipoAtrasoEntrada, TipoSaidaAntecipada:
		return true
	}
	return false
}

// isSpecialWorked reports whether every worked hour counts as overtime.
func isSpecialWorked(tipo string) bool {
	switch tipo {
	case TipoSabadoExtras, TipoDomingoExtras, TipoFeriadoTrabalhado:
		return true
	}
	return false
}

type RegistroPonto struct {
	ID                   int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FuncionarioID        int64     `gorm:"column:funcionario_id"`
	ObraID               *int64    `gorm:"column:obra_id"`
	Data                 time.Time `gorm:"column:data;type:date"`
	TipoRegistro         string    `gorm:"column:tipo_registro;type:varchar(30)"`
	HoraEntrada          *string   `gorm:"column:hora_entrada;type:varchar(5)"`
	HoraSaida            *string   `gorm:"column:hora_saida;type:varchar(5)"`
	HoraAlmocoSaida      *string   `gorm:"column:hora_almoco_saida;type:varchar(5)"`
	HoraAlmocoRetorno    *string   `gorm:"column:hora_almoco_retorno;type:varchar(5)"`
	HorasTrabalhadas     float64   `gorm:"column:horas_trabalhadas;type:numeric(6,2)"`
	HorasExtras          float64   `gorm:"column:horas_extras;type:numeric(6,2)"`
	MinutosAtrasoEntrada int       `gorm:"column:minutos_atraso_entrada"`
	MinutosAtrasoSaida   int       `gorm:"column:minutos_atraso_saida"`
	TotalAtrasoHoras     float64   `gorm:"column:total_atraso_horas;type:numeric(6,2)"`
	MinutosExtrasEntrada int       `gorm:"column:minutos_extras_entrada"`
	MinutosExtrasSaida   int       `gorm:"column:minutos_extras_saida"`
	PercentualExtras     float64   `gorm:"column:percentual_extras;type:numeric(5,2)"`
	Observacoes          *string   `gorm:"column:observacoes"`
	AdminID              int64     `gorm:"column:admin_id"`
}

func (RegistroPonto) TableName() string {
	return "registro_ponto"
}
