package rdo

import (
	"time"

	"github.com/shopspring/decimal"

	"sige/internal/saga"
)

type servicoRequest struct {
	Descricao  string          `json:"descricao" binding:"required"`
	Quantidade decimal.Decimal `json:"quantidade" binding:"required"`
}

type createRequest struct {
	Numero        string           `json:"numero" binding:"required"`
	ObraID        int64            `json:"obra_id" binding:"required"`
	DataRelatorio string           `json:"data_relatorio" binding:"required"`
	Servicos      []servicoRequest `json:"servicos"`
}

func (r createRequest) toInput() (CreateInput, error) {
	data, err := time.Parse("2006-01-02", r.DataRelatorio)
	if err != nil {
		return CreateInput{}, err
	}

	in := CreateInput{
		Numero:        r.Numero,
		ObraID:        r.ObraID,
		DataRelatorio: data,
	}
	for _, s := range r.Servicos {
		in.Servicos = append(in.Servicos, ServicoInput{
			Descricao:  s.Descricao,
			Quantidade: s.Quantidade,
		})
	}
	return in, nil
}

type rdoResponse struct {
	ID            int64             `json:"id"`
	Numero        string            `json:"numero"`
	ObraID        int64             `json:"obra_id"`
	DataRelatorio string            `json:"data_relatorio"`
	Status        string            `json:"status"`
	CustoTotal    decimal.Decimal   `json:"custo_total"`
	Saga          saga.StatusReport `json:"saga"`
}

func toResponse(rec *RDO, report saga.StatusReport) rdoResponse {
	return rdoResponse{
		ID:            rec.ID,
		Numero:        rec.Numero,
		ObraID:        rec.ObraID,
		DataRelatorio: rec.DataRelatorio.Format("2006-01-02"),
		Status:        rec.Status,
		CustoTotal:    rec.CustoTotal,
		Saga:          report,
	}
}

type sagaStepResponse struct {
	Nome   string `json:"nome"`
	Status string `json:"status"`
	Erro   string `json:"erro,omitempty"`
}

type sagaExecutionResponse struct {
	ID     string             `json:"id"`
	Tipo   string             `json:"tipo"`
	Status string             `json:"status"`
	Erro   string             `json:"erro,omitempty"`
	Passos []sagaStepResponse `json:"passos"`
}

func toSagaResponse(e *saga.Execution, steps []saga.StepRecord) sagaExecutionResponse {
	resp := sagaExecutionResponse{
		ID:     e.ID,
		Tipo:   e.SagaType,
		Status: e.Status,
	}
	if e.Error != nil {
		resp.Erro = *e.Error
	}
	for _, s := range steps {
		step := sagaStepResponse{Nome: s.Name, Status: s.Status}
		if s.Error != nil {
			step.Erro = *s.Error
		}
		resp.Passos = append(resp.Passos, step)
	}
	return resp
}
