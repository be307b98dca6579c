package history

import "database/sql"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db}
}

func (r *SQLiteRepository) Save(e Entry) error {
	_, err := r.db.Exec(`
		INSERT INTO request_history
			(id, created_at, profile, scenario, endpoint, status_code, class, duration_ms, request_body, response_snippet)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.CreatedAt,
		e.Profile,
		e.Scenario,
		e.Endpoint,
		e.StatusCode,
		e.Class,
		e.DurationMs,
		e.RequestBody,
		e.ResponseSnippet,
	)
	return err
}

func (r *SQLiteRepository) FindRecent(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
		SELECT id, created_at, profile, scenario, endpoint, status_code, class, duration_ms, request_body, response_snippet
		FROM request_history
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var e Entry

		if err := rows.Scan(
			&e.ID,
			&e.CreatedAt,
			&e.Profile,
			&e.Scenario,
			&e.Endpoint,
			&e.StatusCode,
			&e.Class,
			&e.DurationMs,
			&e.RequestBody,
			&e.ResponseSnippet,
		); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *SQLiteRepository) Purge() error {
	_, err := r.db.Exec(`DELETE FROM request_history`)
	return err
}
