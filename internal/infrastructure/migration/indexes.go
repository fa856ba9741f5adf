package migration

import (
	"database/sql"

	"go.uber.org/zap"
)

// searchIndexStatements create the free-text search indexes over drafts.
// They need the pg_trgm extension, which managed Postgres offerings do not
// always allow, so failures here must not block a deployment.
var searchIndexStatements = []struct {
	name string
	stmt string
}{
	{
		name: "pg_trgm extension",
		stmt: `CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	},
	{
		name: "idx_return_drafts_email_trgm",
		stmt: `CREATE INDEX IF NOT EXISTS idx_return_drafts_email_trgm
			ON return_drafts USING GIN (email gin_trgm_ops)`,
	},
	{
		name: "idx_return_drafts_order_number_trgm",
		stmt: `CREATE INDEX IF NOT EXISTS idx_return_drafts_order_number_trgm
			ON return_drafts USING GIN (order_number gin_trgm_ops)`,
	},
	{
		name: "idx_orders_customer_name_trgm",
		stmt: `CREATE INDEX IF NOT EXISTS idx_orders_customer_name_trgm
			ON orders USING GIN (customer_name gin_trgm_ops)`,
	},
}

// EnsureSearchIndexes creates the trigram search indexes, logging each
// failure and moving on. Query paths fall back to sequential scans when an
// index is missing.
func EnsureSearchIndexes(db *sql.DB, logger *zap.Logger) {
	for _, idx := range searchIndexStatements {
		if _, err := db.Exec(idx.stmt); err != nil {
			logger.Warn("failed to create search index, continuing",
				zap.String("index", idx.name),
				zap.Error(err))
			continue
		}
		logger.Debug("search index ensured", zap.String("index", idx.name))
	}
}
