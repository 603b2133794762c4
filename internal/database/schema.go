package database

import (
	"context"
	"fmt"
)

// schemaStatements are the definitions the application cannot run
// without. The tables themselves stay schemaless; only the constraints
// the code relies on are pinned here. Every statement is idempotent so
// the bootstrap can run on each start.
var schemaStatements = []string{
	// Email uniqueness is enforced at write time by this index; the
	// repositories map its violation to ErrDuplicate.
	`DEFINE INDEX IF NOT EXISTS idx_user_email ON TABLE user COLUMNS email UNIQUE`,
	// One session document per token.
	`DEFINE INDEX IF NOT EXISTS idx_session_token ON TABLE session COLUMNS token UNIQUE`,
}

// EnsureSchema applies the index definitions. Called once after Connect,
// before the server accepts traffic.
func EnsureSchema(ctx context.Context, db Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	return nil
}
