package punch

import "time"

type punchRequest struct {
	FuncionarioID     int64   `json:"funcionario_id" binding:"required"`
	ObraID            *int64  `json:"obra_id"`
	Data              string  `json:"data" binding:"required"` // YYYY-MM-DD
	TipoRegistro      string  `json:"tipo_registro" binding:"required"`
	HoraEntrada       *string `json:"hora_entrada"`
	HoraSaida         *string `json:"hora_saida"`
	HoraAlmocoSaida   *string `json:"hora_almoco_saida"`
	HoraAlmocoRetorno *string `json:"hora_almoco_retorno"`
	Observacoes       *string `json:"observacoes"`
}

type punchResponse struct {
	ID                   int64   `json:"id"`
	FuncionarioID        int64   `json:"funcionario_id"`
	ObraID               *int64  `json:"obra_id,omitempty"`
	Data                 string  `json:"data"`
	TipoRegistro         string  `json:"tipo_registro"`
	HoraEntrada          *string `json:"hora_entrada,omitempty"`
	HoraSaida            *string `json:"hora_saida,omitempty"`
	HorasTrabalhadas     float64 `json:"horas_trabalhadas"`
	HorasExtras          float64 `json:"horas_extras"`
	MinutosAtrasoEntrada int     `json:"minutos_atraso_entrada"`
	MinutosAtrasoSaida   int     `json:"minutos_atraso_saida"`
	TotalAtrasoHoras     float64 `json:"total_atraso_horas"`
	PercentualExtras     float64 `json:"percentual_extras"`
}

func toResponse(rec *RegistroPonto) punchResponse {
	return punchResponse{
		ID:                   rec.ID,
		FuncionarioID:        rec.FuncionarioID,
		ObraID:               rec.ObraID,
		Data:                 rec.Data.Format("2006-01-02"),
		TipoRegistro:         rec.TipoRegistro,
		HoraEntrada:          rec.HoraEntrada,
		HoraSaida:            rec.HoraSaida,
		HorasTrabalhadas:     rec.HorasTrabalhadas,
		HorasExtras:          rec.HorasExtras,
		MinutosAtrasoEntrada: rec.MinutosAtrasoEntrada,
		MinutosAtrasoSaida:   rec.MinutosAtrasoSaida,
		TotalAtrasoHoras:     rec.TotalAtrasoHoras,
		PercentualExtras:     rec.PercentualExtras,
	}
}

func (in punchRequest) toInput() (RegisterInput, error) {
	data, err := time.Parse("2006-01-02", in.Data)
	if err != nil {
		return RegisterInput{}, err
	}
	return RegisterInput{
		FuncionarioID:     in.FuncionarioID,
		ObraID:            in.ObraID,
		Data:              data,
		TipoRegistro:      in.TipoRegistro,
		HoraEntrada:       in.HoraEntrada,
		HoraSaida:         in.HoraSaida,
		HoraAlmocoSaida:   in.HoraAlmocoSaida,
		HoraAlmocoRetorno: in.HoraAlmocoRetorno,
		Observacoes:       in.Observacoes,
	}, nil
}
