package database

// Atomic multi-statement mutations.
//
// SurrealDB has no connection-level transactions over this client;
// instead, statements are accumulated and submitted in one round trip
// wrapped in BEGIN TRANSACTION / COMMIT TRANSACTION. All statements
// succeed or fail together. Variables are namespaced per statement
// ($email -> $s1_email) so statements from different call sites cannot
// collide.

import (
	"context"
	"fmt"
	"strings"
)

// AtomicBatch accumulates statements that must succeed together.
//
//	batch := database.NewAtomicBatch()
//	batch.Add("DELETE type::record($id)", map[string]interface{}{"id": profileID})
//	batch.Add("DELETE type::record($id)", map[string]interface{}{"id": userID})
//	err := batch.Execute(ctx, db)
type AtomicBatch struct {
	statements []string
	vars       map[string]interface{}
}

// NewAtomicBatch creates an empty batch.
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{vars: make(map[string]interface{})}
}

// Add appends a statement to the batch, namespacing its variables.
func (b *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	n := len(b.statements) + 1
	for name, value := range vars {
		scoped := fmt.Sprintf("s%d_%s", n, name)
		query = strings.ReplaceAll(query, "$"+name, "$"+scoped)
		b.vars[scoped] = value
	}
	b.statements = append(b.statements, query)
	return b
}

// Execute submits the batch as one transaction. An empty batch is a no-op.
func (b *AtomicBatch) Execute(ctx context.Context, db Database) error {
	if len(b.statements) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range b.statements {
		sb.WriteString(stmt)
		sb.WriteString(";\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	if err := db.Execute(ctx, sb.String(), b.vars); err != nil {
		return fmt.Errorf("atomic batch: %w", err)
	}
	return nil
}
