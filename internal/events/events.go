package events

// Closed set of domain event names. The Portuguese names are part of the
// persisted contract (outbox rows, saga payloads), do not rename.
const (
	PunchRegistered  = "ponto_registrado"
	PayrollProcessed = "folha_processada"
	ProposalApproved = "proposta_aprovada"
	InvoicePaid      = "nota_fiscal_paga"
	MaterialMoved    = "material_movimentado"
	MonthClosing     = "fechamento_mensal"
)

// Topic carries the cross-process mirror of every emitted event.
const Topic = "sige.eventos.v1"

func IsKnown(name string) bool {
	switch name {
	case PunchRegistered, PayrollProcessed, ProposalApproved,
		InvoicePaid, MaterialMoved, MonthClosing:
		return true
	}
	return false
}
