package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/accounting"
	"sige/internal/employee"
	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/invoice"
	"sige/internal/proposal"
	"sige/internal/receivable"
	"sige/internal/worksite"
)

// --- in-memory fakes mimicking the per-tenant unique constraints ---

type fakeEntries struct {
	created []*accounting.LancamentoContabil
}

func (f *fakeEntries) WithTx(tx *gorm.DB) accounting.Repository { return f }

func (f *fakeEntries) CreateBalanced(ctx context.Context, entry *accounting.LancamentoContabil) error {
	if err := accounting.ValidateBalanced(entry.Partidas); err != nil {
		return err
	}
	for _, existing := range f.created {
		if existing.AdminID == entry.AdminID && existing.Origem == entry.Origem && existing.OrigemID == entry.OrigemID {
			return accounting.ErrDuplicateOrigin
		}
	}
	entry.Numero = int64(len(f.created) + 1)
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeEntries) ExistsByOrigin(ctx context.Context, adminID int64, origem string, origemID int64) (bool, error) {
	for _, e := range f.created {
		if e.AdminID == adminID && e.Origem == origem && e.OrigemID == origemID {
			return true, nil
		}
	}
	return false, nil
}

type fakeReceivables struct {
	created []*receivable.ContaReceber
}

func (f *fakeReceivables) WithTx(tx *gorm.DB) receivable.Repository { return f }

func (f *fakeReceivables) Create(ctx context.Context, c *receivable.ContaReceber) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeReceivables) ExistsByOrigin(ctx context.Context, adminID int64, origem string, origemID int64) (bool, error) {
	for _, c := range f.created {
		if c.AdminID == adminID && c.Origem != nil && *c.Origem == origem && c.OrigemID != nil && *c.OrigemID == origemID {
			return true, nil
		}
	}
	return false, nil
}

type fakeWorksites struct {
	costs []*worksite.CustoObra
}

func (f *fakeWorksites) WithTx(tx *gorm.DB) worksite.Repository { return f }
func (f *fakeWorksites) FindObra(ctx context.Context, adminID, id int64) (*worksite.Obra, error) {
	return &worksite.Obra{ID: id, AdminID: adminID}, nil
}
func (f *fakeWorksites) CreateCost(ctx context.Context, c *worksite.CustoObra) error {
	f.costs = append(f.costs, c)
	return nil
}
func (f *fakeWorksites) SumCosts(ctx context.Context, adminID, obraID int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeEmployees struct {
	funcionarios map[int64]*employee.Funcionario
}

func (f *fakeEmployees) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployees) Create(ctx context.Context, e *employee.Funcionario) error {
	return nil
}
func (f *fakeEmployees) FindByID(ctx context.Context, adminID, id int64) (*employee.Funcionario, error) {
	emp, ok := f.funcionarios[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return emp, nil
}
func (f *fakeEmployees) ListActive(ctx context.Context, adminID int64) ([]employee.Funcionario, error) {
	return nil, nil
}
func (f *fakeEmployees) UpdateSalary(ctx context.Context, adminID, id int64, salario float64) error {
	return nil
}
func (f *fakeEmployees) CreateSalaryAudit(ctx context.Context, a *employee.AuditoriaSalario) error {
	return nil
}
func (f *fakeEmployees) DeleteSalaryAudit(ctx context.Context, adminID, auditID int64) error {
	return nil
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func sideValue(t *testing.T, entry *accounting.LancamentoContabil, conta, tipo string) decimal.Decimal {
	t.Helper()
	for _, p := range entry.Partidas {
		if p.ContaCodigo == conta && p.Tipo == tipo {
			return p.Valor
		}
	}
	t.Fatalf("no %s line on account %s", tipo, conta)
	return decimal.Zero
}

// Payroll processed: gross to expense, credits split between net payable
// and the two withholdings; no cost row when the employee has no obra.
func TestFolhaHandler_PostsBalancedSalaryEntry(t *testing.T) {
	entries := &fakeEntries{}
	worksites := &fakeWorksites{}
	employees := &fakeEmployees{funcionarios: map[int64]*employee.Funcionario{
		5: {ID: 5, Nome: "Maria", AdminID: 1},
	}}
	h := NewFolhaHandler(entries, employees, worksites, zap.NewNop())

	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.PayrollProcessed,
		TenantID: 1,
		Payload: events.PayrollProcessedPayload{
			FolhaID:       10,
			FuncionarioID: 5,
			Competencia:   "2025-07",
			SalarioBruto:  dec(3000),
			INSS:          dec(240),
			IRRF:          dec(60),
			Encargos:      dec(600),
		},
	})

	require.NoError(t, err)
	require.Len(t, entries.created, 1)

	entry := entries.created[0]
	assert.Equal(t, accounting.OrigemFolha, entry.Origem)
	assert.Equal(t, int64(10), entry.OrigemID)
	assert.True(t, sideValue(t, entry, accounting.ContaDespesaSalarios, accounting.LadoDebito).Equal(dec(3000)))
	assert.True(t, sideValue(t, entry, accounting.ContaSalariosAPagar, accounting.LadoCredito).Equal(dec(2700)))
	assert.True(t, sideValue(t, entry, accounting.ContaINSSARecolher, accounting.LadoCredito).Equal(dec(240)))
	assert.True(t, sideValue(t, entry, accounting.ContaIRRFARecolher, accounting.LadoCredito).Equal(dec(60)))
	assert.NoError(t, accounting.ValidateBalanced(entry.Partidas))

	assert.Empty(t, worksites.costs)
}

// An employee assigned to a worksite also costs gross plus employer
// charges against that worksite.
func TestFolhaHandler_WorksiteEmployeeCreatesCostRow(t *testing.T) {
	obraID := int64(3)
	entries := &fakeEntries{}
	worksites := &fakeWorksites{}
	employees := &fakeEmployees{funcionarios: map[int64]*employee.Funcionario{
		42: {ID: 42, Nome: "Joao", ObraID: &obraID, AdminID: 1},
	}}
	h := NewFolhaHandler(entries, employees, worksites, zap.NewNop())

	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.PayrollProcessed,
		TenantID: 1,
		Payload: events.PayrollProcessedPayload{
			FolhaID:       1,
			FuncionarioID: 42,
			Competencia:   "2025-01",
			SalarioBruto:  dec(5000),
			INSS:          dec(550),
			IRRF:          dec(75),
			Encargos:      dec(1500),
		},
	})

	require.NoError(t, err)
	require.Len(t, entries.created, 1)
	entry := entries.created[0]
	assert.True(t, sideValue(t, entry, accounting.ContaDespesaSalarios, accounting.LadoDebito).Equal(dec(5000)))
	assert.True(t, sideValue(t, entry, accounting.ContaSalariosAPagar, accounting.LadoCredito).Equal(dec(4375)))
	assert.True(t, sideValue(t, entry, accounting.ContaINSSARecolher, accounting.LadoCredito).Equal(dec(550)))
	assert.True(t, sideValue(t, entry, accounting.ContaIRRFARecolher, accounting.LadoCredito).Equal(dec(75)))

	require.Len(t, worksites.costs, 1)
	cost := worksites.costs[0]
	assert.Equal(t, obraID, cost.ObraID)
	assert.Equal(t, worksite.CustoMaoObra, cost.Tipo)
	assert.True(t, cost.Valor.Equal(dec(6500)))
	require.NotNil(t, cost.FuncionarioID)
	assert.Equal(t, int64(42), *cost.FuncionarioID)
}

// Zero-valued withholdings produce no credit lines.
func TestFolhaHandler_SkipsZeroWithholdingLines(t *testing.T) {
	entries := &fakeEntries{}
	employees := &fakeEmployees{funcionarios: map[int64]*employee.Funcionario{
		5: {ID: 5, Nome: "Maria", AdminID: 1},
	}}
	h := NewFolhaHandler(entries, employees, &fakeWorksites{}, zap.NewNop())

	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.PayrollProcessed,
		TenantID: 1,
		Payload: events.PayrollProcessedPayload{
			FolhaID:       11,
			FuncionarioID: 5,
			Competencia:   "2025-07",
			SalarioBruto:  dec(1200),
			INSS:          decimal.Zero,
			IRRF:          decimal.Zero,
			Encargos:      dec(336),
		},
	})

	require.NoError(t, err)
	require.Len(t, entries.created, 1)

	entry := entries.created[0]
	require.Len(t, entry.Partidas, 2)
	assert.True(t, sideValue(t, entry, accounting.ContaDespesaSalarios, accounting.LadoDebito).Equal(dec(1200)))
	assert.True(t, sideValue(t, entry, accounting.ContaSalariosAPagar, accounting.LadoCredito).Equal(dec(1200)))
	assert.NoError(t, accounting.ValidateBalanced(entry.Partidas))
}

// Approved proposal: receivable due 30 days after the approval date in
// the payload plus the revenue entry, regardless of when the event is
// processed.
func TestPropostaHandler_CreatesReceivableAndRevenueEntry(t *testing.T) {
	entries := &fakeEntries{}
	receivables := &fakeReceivables{}
	h := NewPropostaHandler(entries, receivables, zap.NewNop())

	approvedAt := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	evt := eventbus.Event{
		Name:     events.ProposalApproved,
		TenantID: 2,
		Payload: events.ProposalApprovedPayload{
			PropostaID:    77,
			Cliente:       "Construtora Azul",
			ValorTotal:    dec(50000),
			DataAprovacao: approvedAt,
		},
	}

	require.NoError(t, h.Handle(context.Background(), nil, evt))

	require.Len(t, receivables.created, 1)
	conta := receivables.created[0]
	assert.Equal(t, "Construtora Azul", conta.Cliente)
	assert.True(t, conta.Valor.Equal(dec(50000)))
	assert.Equal(t, receivable.StatusPendente, conta.Status)
	assert.Equal(t, time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), conta.DataVencimento)

	require.Len(t, entries.created, 1)
	entry := entries.created[0]
	assert.Equal(t, approvedAt, entry.Data)
	assert.True(t, sideValue(t, entry, accounting.ContaClientes, accounting.LadoDebito).Equal(dec(50000)))
	assert.True(t, sideValue(t, entry, accounting.ContaReceitaServicos, accounting.LadoCredito).Equal(dec(50000)))

	// replay: the origin uniqueness rejects a second posting and the
	// receivable is not duplicated
	err := h.Handle(context.Background(), nil, evt)
	assert.ErrorIs(t, err, accounting.ErrDuplicateOrigin)
	assert.Len(t, receivables.created, 1)
	assert.Len(t, entries.created, 1)
}

// Paid invoice: expense account by category against the bank.
func TestNotaHandler_PostsCategoryExpenseAgainstBank(t *testing.T) {
	entries := &fakeEntries{}
	h := NewNotaHandler(entries, zap.NewNop())

	paidAt := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.InvoicePaid,
		TenantID: 3,
		Payload: events.InvoicePaidPayload{
			NotaFiscalID:  31,
			Fornecedor:    "Aco Forte Ltda",
			Categoria:     "MATERIAIS",
			ValorTotal:    dec(1234.56),
			DataPagamento: paidAt,
		},
	})

	require.NoError(t, err)
	require.Len(t, entries.created, 1)

	entry := entries.created[0]
	assert.Equal(t, paidAt, entry.Data)
	assert.True(t, sideValue(t, entry, accounting.ContaCustoMateriais, accounting.LadoDebito).Equal(dec(1234.56)))
	assert.True(t, sideValue(t, entry, accounting.ContaBancos, accounting.LadoCredito).Equal(dec(1234.56)))
}

func TestMaterialHandler_SaidaCreatesCostAndStockEntry(t *testing.T) {
	entries := &fakeEntries{}
	worksites := &fakeWorksites{}
	h := NewMaterialHandler(entries, worksites, zap.NewNop())

	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.MaterialMoved,
		TenantID: 4,
		Payload: events.MaterialMovedPayload{
			MovimentoID: 9,
			ObraID:      2,
			Item:        "Cimento CP-II",
			Tipo:        "SAIDA",
			ValorTotal:  dec(800),
		},
	})

	require.NoError(t, err)

	require.Len(t, worksites.costs, 1)
	assert.Equal(t, int64(2), worksites.costs[0].ObraID)
	assert.Equal(t, worksite.CustoMaterial, worksites.costs[0].Tipo)
	assert.True(t, worksites.costs[0].Valor.Equal(dec(800)))

	require.Len(t, entries.created, 1)
	entry := entries.created[0]
	assert.True(t, sideValue(t, entry, accounting.ContaCustoMateriais, accounting.LadoDebito).Equal(dec(800)))
	assert.True(t, sideValue(t, entry, accounting.ContaEstoque, accounting.LadoCredito).Equal(dec(800)))
}

func TestMaterialHandler_EntradaBuysIntoStock(t *testing.T) {
	entries := &fakeEntries{}
	h := NewMaterialHandler(entries, &fakeWorksites{}, zap.NewNop())

	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.MaterialMoved,
		TenantID: 4,
		Payload: events.MaterialMovedPayload{
			MovimentoID: 10,
			ObraID:      2,
			Item:        "Vergalhao 10mm",
			Tipo:        "ENTRADA",
			ValorTotal:  dec(1500),
		},
	})

	require.NoError(t, err)
	require.Len(t, entries.created, 1)
	entry := entries.created[0]
	assert.True(t, sideValue(t, entry, accounting.ContaEstoque, accounting.LadoDebito).Equal(dec(1500)))
	assert.True(t, sideValue(t, entry, accounting.ContaBancos, accounting.LadoCredito).Equal(dec(1500)))
}

// --- month closing over fake invoice/proposal repos ---

type fakeInvoices struct {
	paid []invoice.NotaFiscal
}

func (f *fakeInvoices) WithTx(tx *gorm.DB) invoice.Repository          { return f }
func (f *fakeInvoices) Create(ctx context.Context, n *invoice.NotaFiscal) error { return nil }
func (f *fakeInvoices) FindByID(ctx context.Context, adminID, id int64) (*invoice.NotaFiscal, error) {
	return nil, invoice.ErrNotFound
}
func (f *fakeInvoices) MarkPaid(ctx context.Context, adminID, id int64, when time.Time) error {
	return nil
}
func (f *fakeInvoices) ListPaidInMonth(ctx context.Context, adminID int64, monthStart, monthEnd time.Time) ([]invoice.NotaFiscal, error) {
	return f.paid, nil
}

type fakeProposals struct {
	approved []proposal.PropostaComercial
}

func (f *fakeProposals) WithTx(tx *gorm.DB) proposal.Repository { return f }
func (f *fakeProposals) Create(ctx context.Context, p *proposal.PropostaComercial) error {
	return nil
}
func (f *fakeProposals) FindByID(ctx context.Context, adminID, id int64) (*proposal.PropostaComercial, error) {
	return nil, proposal.ErrNotFound
}
func (f *fakeProposals) MarkApproved(ctx context.Context, adminID, id int64, when time.Time) error {
	return nil
}
func (f *fakeProposals) ListApprovedInMonth(ctx context.Context, adminID int64, monthStart, monthEnd time.Time) ([]proposal.PropostaComercial, error) {
	return f.approved, nil
}

func TestFechamentoHandler_RepostsOnlyMissingEntries(t *testing.T) {
	paidAt := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	approvedAt := time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntries{}
	receivables := &fakeReceivables{}
	invoices := &fakeInvoices{paid: []invoice.NotaFiscal{
		{ID: 1, Fornecedor: "A", Categoria: "materiais", ValorTotal: dec(100), Status: invoice.StatusPaga, DataPagamento: &paidAt},
		{ID: 2, Fornecedor: "B", Categoria: "servicos", ValorTotal: dec(200), Status: invoice.StatusPaga, DataPagamento: &paidAt},
	}}
	proposals := &fakeProposals{approved: []proposal.PropostaComercial{
		{ID: 7, Cliente: "C", ValorTotal: dec(9000), Status: proposal.StatusAprovada, DataAprovacao: &approvedAt},
	}}

	// invoice 1 was already posted by the live handler
	require.NoError(t, postNota(context.Background(), entries, 5, events.InvoicePaidPayload{
		NotaFiscalID: 1, Fornecedor: "A", Categoria: "materiais", ValorTotal: dec(100), DataPagamento: paidAt,
	}))
	require.Len(t, entries.created, 1)

	h := NewFechamentoHandler(entries, receivables, invoices, proposals, zap.NewNop())
	err := h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.MonthClosing,
		TenantID: 5,
		Payload:  events.MonthClosingPayload{Competencia: "2025-07"},
	})

	require.NoError(t, err)
	// invoice 2 and proposal 7 were posted, invoice 1 skipped
	assert.Len(t, entries.created, 3)
	assert.Len(t, receivables.created, 1)

	// second closing run changes nothing
	require.NoError(t, h.Handle(context.Background(), nil, eventbus.Event{
		Name:     events.MonthClosing,
		TenantID: 5,
		Payload:  events.MonthClosingPayload{Competencia: "2025-07"},
	}))
	assert.Len(t, entries.created, 3)
	assert.Len(t, receivables.created, 1)
}
