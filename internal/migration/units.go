package migration

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// Units returns the ordered migration list. Never reorder or renumber:
// ordinals are recorded in schema_version on live databases.
func Units() []Unit {
	return []Unit{
		{Ordinal: 1, Name: "base_tables", Run: baseTables},
		{Ordinal: 2, Name: "accounting_tables", Run: accountingTables},
		{Ordinal: 3, Name: "conta_receber", Run: contaReceber},
		{Ordinal: 4, Name: "rename_motorista_to_funcionario", Run: renameMotorista},
		{Ordinal: 5, Name: "alimentacao_admin_id_backfill", Run: alimentacaoAdminID},
		{Ordinal: 6, Name: "registro_ponto_unique", Run: registroPontoUnique},
		{Ordinal: 7, Name: "merge_horario_padrao", Run: mergeHorarioPadrao},
		{Ordinal: 8, Name: "outbox_events", Run: outboxEvents},
		{Ordinal: 9, Name: "outro_custo_obra_id", Run: outroCustoObraID},
		{Ordinal: 10, Name: "funcionario_obra_id", Run: funcionarioObraID},
	}
}

func baseTables(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuario (
			id           BIGSERIAL PRIMARY KEY,
			username     VARCHAR(80) NOT NULL UNIQUE,
			email        VARCHAR(120) NOT NULL,
			senha_hash   VARCHAR(255) NOT NULL,
			nome         VARCHAR(120) NOT NULL,
			tipo_usuario VARCHAR(20) NOT NULL DEFAULT 'funcionario',
			admin_id     BIGINT REFERENCES usuario(id),
			ativo        BOOLEAN NOT NULL DEFAULT TRUE,
			criado_em    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS horario_trabalho (
			id             BIGSERIAL PRIMARY KEY,
			nome           VARCHAR(80) NOT NULL,
			entrada        VARCHAR(5) NOT NULL DEFAULT '08:00',
			saida_almoco   VARCHAR(5),
			retorno_almoco VARCHAR(5),
			saida          VARCHAR(5) NOT NULL DEFAULT '17:00',
			horas_diarias  NUMERIC(4,2) NOT NULL DEFAULT 8.0,
			funcionario_id BIGINT,
			valido_de      DATE NOT NULL DEFAULT '1970-01-01',
			valido_ate     DATE,
			ativo          BOOLEAN NOT NULL DEFAULT TRUE,
			admin_id       BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS funcionario (
			id                  BIGSERIAL PRIMARY KEY,
			codigo              VARCHAR(20) NOT NULL,
			nome                VARCHAR(120) NOT NULL,
			salario             NUMERIC(12,2) NOT NULL DEFAULT 0,
			data_admissao       DATE,
			horario_trabalho_id BIGINT REFERENCES horario_trabalho(id),
			ativo               BOOLEAN NOT NULL DEFAULT TRUE,
			admin_id            BIGINT NOT NULL,
			CONSTRAINT uq_funcionario_codigo UNIQUE (admin_id, codigo)
		)`,
		`CREATE TABLE IF NOT EXISTS obra (
			id       BIGSERIAL PRIMARY KEY,
			nome     VARCHAR(120) NOT NULL,
			status   VARCHAR(30) NOT NULL DEFAULT 'EM_ANDAMENTO',
			ativo    BOOLEAN NOT NULL DEFAULT TRUE,
			admin_id BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS registro_ponto (
			id                     BIGSERIAL PRIMARY KEY,
			funcionario_id         BIGINT NOT NULL REFERENCES funcionario(id),
			obra_id                BIGINT REFERENCES obra(id),
			data                   DATE NOT NULL,
			tipo_registro          VARCHAR(30) NOT NULL DEFAULT 'trabalho_normal',
			hora_entrada           VARCHAR(5),
			hora_saida             VARCHAR(5),
			hora_almoco_saida      VARCHAR(5),
			hora_almoco_retorno    VARCHAR(5),
			horas_trabalhadas      NUMERIC(6,2) NOT NULL DEFAULT 0,
			horas_extras           NUMERIC(6,2) NOT NULL DEFAULT 0,
			minutos_atraso_entrada INTEGER NOT NULL DEFAULT 0,
			minutos_atraso_saida   INTEGER NOT NULL DEFAULT 0,
			total_atraso_horas     NUMERIC(6,2) NOT NULL DEFAULT 0,
			minutos_extras_entrada INTEGER NOT NULL DEFAULT 0,
			minutos_extras_saida   INTEGER NOT NULL DEFAULT 0,
			percentual_extras      NUMERIC(5,2) NOT NULL DEFAULT 0,
			observacoes            TEXT,
			admin_id               BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS custo_obra (
			id             BIGSERIAL PRIMARY KEY,
			obra_id        BIGINT NOT NULL REFERENCES obra(id),
			data           DATE NOT NULL,
			tipo           VARCHAR(30) NOT NULL,
			descricao      VARCHAR(255),
			valor          NUMERIC(12,2) NOT NULL,
			funcionario_id BIGINT,
			admin_id       BIGINT NOT NULL
		)`,
		// admin_id intencionalmente ausente: unit 5 adiciona e faz backfill
		`CREATE TABLE IF NOT EXISTS registro_alimentacao (
			id             BIGSERIAL PRIMARY KEY,
			funcionario_id BIGINT NOT NULL REFERENCES funcionario(id),
			obra_id        BIGINT,
			data           DATE NOT NULL,
			tipo           VARCHAR(30) NOT NULL DEFAULT 'almoco',
			valor          NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outro_custo (
			id             BIGSERIAL PRIMARY KEY,
			funcionario_id BIGINT NOT NULL REFERENCES funcionario(id),
			data           DATE NOT NULL,
			tipo           VARCHAR(50) NOT NULL,
			categoria      VARCHAR(30),
			valor          NUMERIC(10,2) NOT NULL,
			admin_id       BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS veiculo_despesa (
			id           BIGSERIAL PRIMARY KEY,
			motorista_id BIGINT,
			data         DATE NOT NULL,
			tipo         VARCHAR(30) NOT NULL,
			valor        NUMERIC(10,2) NOT NULL,
			admin_id     BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS nota_fiscal (
			id             BIGSERIAL PRIMARY KEY,
			numero         VARCHAR(30) NOT NULL,
			fornecedor     VARCHAR(120) NOT NULL,
			valor_total    NUMERIC(12,2) NOT NULL,
			categoria      VARCHAR(30) NOT NULL DEFAULT 'outros',
			status         VARCHAR(20) NOT NULL DEFAULT 'PENDENTE',
			data_emissao   DATE,
			data_pagamento DATE,
			admin_id       BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS proposta_comercial (
			id             BIGSERIAL PRIMARY KEY,
			numero         VARCHAR(30) NOT NULL,
			cliente        VARCHAR(120) NOT NULL,
			valor_total    NUMERIC(12,2) NOT NULL,
			status         VARCHAR(20) NOT NULL DEFAULT 'RASCUNHO',
			data_aprovacao DATE,
			obra_id        BIGINT REFERENCES obra(id),
			admin_id       BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS folha_pagamento (
			id              BIGSERIAL PRIMARY KEY,
			funcionario_id  BIGINT NOT NULL REFERENCES funcionario(id),
			competencia     VARCHAR(7) NOT NULL,
			salario_bruto   NUMERIC(12,2) NOT NULL,
			inss            NUMERIC(12,2) NOT NULL DEFAULT 0,
			irrf            NUMERIC(12,2) NOT NULL DEFAULT 0,
			encargos        NUMERIC(12,2) NOT NULL DEFAULT 0,
			salario_liquido NUMERIC(12,2) NOT NULL,
			status          VARCHAR(20) NOT NULL DEFAULT 'PROCESSADA',
			admin_id        BIGINT NOT NULL,
			CONSTRAINT uq_folha_competencia UNIQUE (admin_id, funcionario_id, competencia)
		)`,
		`CREATE TABLE IF NOT EXISTS movimento_material (
			id             BIGSERIAL PRIMARY KEY,
			obra_id        BIGINT NOT NULL REFERENCES obra(id),
			item           VARCHAR(120) NOT NULL,
			quantidade     NUMERIC(12,3) NOT NULL,
			valor_unitario NUMERIC(12,2) NOT NULL,
			valor_total    NUMERIC(12,2) NOT NULL,
			tipo           VARCHAR(10) NOT NULL,
			data           DATE NOT NULL,
			admin_id       BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rdo (
			id             BIGSERIAL PRIMARY KEY,
			numero         VARCHAR(30) NOT NULL,
			obra_id        BIGINT NOT NULL REFERENCES obra(id),
			data_relatorio DATE NOT NULL,
			status         VARCHAR(20) NOT NULL DEFAULT 'RASCUNHO',
			custo_total    NUMERIC(12,2) NOT NULL DEFAULT 0,
			admin_id       BIGINT NOT NULL,
			CONSTRAINT uq_rdo_numero UNIQUE (admin_id, numero)
		)`,
		`CREATE TABLE IF NOT EXISTS rdo_servico (
			id         BIGSERIAL PRIMARY KEY,
			rdo_id     BIGINT NOT NULL REFERENCES rdo(id) ON DELETE CASCADE,
			descricao  VARCHAR(255) NOT NULL,
			quantidade NUMERIC(12,2) NOT NULL DEFAULT 1,
			admin_id   BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS auditoria_salario (
			id               BIGSERIAL PRIMARY KEY,
			funcionario_id   BIGINT NOT NULL REFERENCES funcionario(id),
			salario_anterior NUMERIC(12,2) NOT NULL,
			salario_novo     NUMERIC(12,2) NOT NULL,
			motivo           TEXT,
			admin_id         BIGINT NOT NULL,
			criado_em        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func accountingTables(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lancamento_contabil (
			id          BIGSERIAL PRIMARY KEY,
			numero      BIGINT NOT NULL,
			data        DATE NOT NULL,
			historico   TEXT NOT NULL,
			valor_total NUMERIC(14,2) NOT NULL,
			origem      VARCHAR(30) NOT NULL,
			origem_id   BIGINT NOT NULL,
			admin_id    BIGINT NOT NULL,
			criado_em   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT uq_lancamento_numero UNIQUE (admin_id, numero),
			CONSTRAINT uq_lancamento_origem UNIQUE (admin_id, origem, origem_id)
		)`,
		`CREATE TABLE IF NOT EXISTS partida_contabil (
			id            BIGSERIAL PRIMARY KEY,
			lancamento_id BIGINT NOT NULL REFERENCES lancamento_contabil(id) ON DELETE CASCADE,
			sequencia     INTEGER NOT NULL,
			conta_codigo  VARCHAR(20) NOT NULL,
			tipo          VARCHAR(10) NOT NULL,
			valor         NUMERIC(14,2) NOT NULL,
			historico     VARCHAR(255),
			admin_id      BIGINT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func contaReceber(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS conta_receber (
			id              BIGSERIAL PRIMARY KEY,
			cliente         VARCHAR(120) NOT NULL,
			descricao       VARCHAR(255),
			valor           NUMERIC(12,2) NOT NULL,
			data_vencimento DATE NOT NULL,
			status          VARCHAR(20) NOT NULL DEFAULT 'PENDENTE',
			origem          VARCHAR(30),
			origem_id       BIGINT,
			admin_id        BIGINT NOT NULL,
			criado_em       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func renameMotorista(ctx context.Context, tx *sql.Tx) error {
	has, err := columnExists(ctx, tx, "veiculo_despesa", "motorista_id")
	if err != nil {
		return err
	}
	if !has {
		return nil
	}
	_, err = tx.ExecContext(ctx,
		`ALTER TABLE veiculo_despesa RENAME COLUMN motorista_id TO funcionario_id`)
	return err
}

func alimentacaoAdminID(ctx context.Context, tx *sql.Tx) error {
	has, err := columnExists(ctx, tx, "registro_alimentacao", "admin_id")
	if err != nil {
		return err
	}
	if !has {
		if _, err := tx.ExecContext(ctx,
			`ALTER TABLE registro_alimentacao ADD COLUMN admin_id BIGINT`); err != nil {
			return err
		}
	}

	// Backfill pelo funcionario dono do registro. Nunca inventa tenant.
	if _, err := tx.ExecContext(ctx, `
		UPDATE registro_alimentacao ra
		SET admin_id = f.admin_id
		FROM funcionario f
		WHERE ra.funcionario_id = f.id AND ra.admin_id IS NULL`); err != nil {
		return err
	}

	var orphans int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registro_alimentacao WHERE admin_id IS NULL`,
	).Scan(&orphans); err != nil {
		return err
	}
	if orphans > 0 {
		// orphans stay NULL; the NOT NULL constraint waits for a later
		// run with zero orphans
		zap.L().Warn("registro_alimentacao rows without a resolvable admin_id",
			zap.Int64("rows", orphans))
		return nil
	}

	_, err = tx.ExecContext(ctx,
		`ALTER TABLE registro_alimentacao ALTER COLUMN admin_id SET NOT NULL`)
	return err
}

func registroPontoUnique(ctx context.Context, tx *sql.Tx) error {
	has, err := constraintExists(ctx, tx, "registro_ponto", "uq_ponto_funcionario_data")
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = tx.ExecContext(ctx, `
		ALTER TABLE registro_ponto
		ADD CONSTRAINT uq_ponto_funcionario_data UNIQUE (admin_id, funcionario_id, data)`)
	return err
}

// mergeHorarioPadrao folds the legacy horario_padrao table into
// horario_trabalho (same shape plus validity window) and drops it.
func mergeHorarioPadrao(ctx context.Context, tx *sql.Tx) error {
	has, err := tableExists(ctx, tx, "horario_padrao")
	if err != nil {
		return err
	}
	if !has {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO horario_trabalho
			(nome, entrada, saida_almoco, retorno_almoco, saida, horas_diarias, valido_de, ativo, admin_id)
		SELECT nome, entrada, saida_almoco, retorno_almoco, saida, horas_diarias,
		       COALESCE(valido_de, '1970-01-01'), TRUE, admin_id
		FROM horario_padrao`); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DROP TABLE horario_padrao`)
	return err
}

func outboxEvents(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS outbox_events (
			id         UUID PRIMARY KEY,
			event_type VARCHAR(60) NOT NULL,
			topic      VARCHAR(120) NOT NULL,
			payload    JSONB NOT NULL,
			status     VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			error      TEXT,
			tenant_id  BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			sent_at    TIMESTAMPTZ
		)`)
	return err
}

func outroCustoObraID(ctx context.Context, tx *sql.Tx) error {
	has, err := columnExists(ctx, tx, "outro_custo", "obra_id")
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE outro_custo ADD COLUMN obra_id BIGINT`)
	return err
}

func funcionarioObraID(ctx context.Context, tx *sql.Tx) error {
	has, err := columnExists(ctx, tx, "funcionario", "obra_id")
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE funcionario ADD COLUMN obra_id BIGINT REFERENCES obra(id)`)
	return err
}
