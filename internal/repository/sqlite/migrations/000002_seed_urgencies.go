package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(2, Up_000002_seed_urgencies, Down_000002_seed_urgencies)
}

// SeedUrgencies lists the fixed urgency vocabulary in rank order.
var SeedUrgencies = []string{"critical", "high", "medium", "low"}

// Up_000002_seed_urgencies inserts the urgency vocabulary when the table is
// empty. A populated table is left untouched.
func Up_000002_seed_urgencies(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM urgencies").Scan(&count); err != nil {
		return fmt.Errorf("failed to count urgencies: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmt, err := tx.Prepare("INSERT INTO urgencies (name, rank) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare urgency insert: %w", err)
	}
	defer stmt.Close()

	for i, name := range SeedUrgencies {
		if _, err := stmt.Exec(name, i+1); err != nil {
			return fmt.Errorf("failed to seed urgency %s: %w", name, err)
		}
	}
	return nil
}

// Down_000002_seed_urgencies removes seeded urgencies no task references.
func Down_000002_seed_urgencies(tx *sql.Tx) error {
	_, err := tx.Exec(`DELETE FROM urgencies
		WHERE id NOT IN (SELECT urgency_id FROM tasks WHERE urgency_id IS NOT NULL)`)
	if err != nil {
		return fmt.Errorf("failed to remove urgencies: %w", err)
	}
	return nil
}
