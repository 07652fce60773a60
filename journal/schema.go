package journal

// SQLiteSchema is applied by NewSQLite on every open.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	r_multiple REAL,
	executed_at DATETIME,
	session TEXT NOT NULL DEFAULT '',
	setup_type TEXT NOT NULL DEFAULT '',
	htf_bias TEXT NOT NULL DEFAULT '',
	rules_followed BOOLEAN,
	grade TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	confidence INTEGER,
	risk_pct REAL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_executed_at ON trades(executed_at);
`

// PostgresSchema is applied by NewPostgres on every open.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	r_multiple DOUBLE PRECISION,
	executed_at TIMESTAMPTZ,
	session TEXT NOT NULL DEFAULT '',
	setup_type TEXT NOT NULL DEFAULT '',
	htf_bias TEXT NOT NULL DEFAULT '',
	rules_followed BOOLEAN,
	grade TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	confidence INTEGER,
	risk_pct DOUBLE PRECISION,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_executed_at ON trades(executed_at);
`

const tradeColumns = `trade_id, instrument, outcome, r_multiple, executed_at, session, setup_type,
	htf_bias, rules_followed, grade, direction, confidence, risk_pct, notes`

const (
	orderAsc  = `ORDER BY executed_at ASC NULLS FIRST, trade_id ASC`
	orderDesc = `ORDER BY executed_at DESC NULLS LAST, trade_id DESC`
)
