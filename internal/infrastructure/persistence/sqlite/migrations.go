package sqlite

import "database/sql"

func RunMigrations(db *sql.DB) error {
	stmts := []string{

		`CREATE TABLE IF NOT EXISTS request_history (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			profile TEXT NOT NULL,
			scenario TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			class TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			request_body TEXT NOT NULL,
			response_snippet TEXT NOT NULL
		);`,

		`CREATE INDEX IF NOT EXISTS idx_request_history_created_at
			ON request_history (created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
