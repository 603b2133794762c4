package database

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeDatabase struct {
	executed    []string
	executeFunc func(ctx context.Context, query string, vars map[string]interface{}) error
}

func (f *fakeDatabase) Connect(ctx context.Context) error { return nil }
func (f *fakeDatabase) Close() error                      { return nil }
func (f *fakeDatabase) Ping(ctx context.Context) error    { return nil }

func (f *fakeDatabase) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	return nil, nil
}

func (f *fakeDatabase) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func (f *fakeDatabase) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	f.executed = append(f.executed, query)
	if f.executeFunc != nil {
		return f.executeFunc(ctx, query, vars)
	}
	return nil
}

func TestEnsureSchema_DefinesUniqueEmailIndex(t *testing.T) {
	t.Parallel()

	db := &fakeDatabase{}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, stmt := range db.executed {
		if strings.Contains(stmt, "ON TABLE user") &&
			strings.Contains(stmt, "email") &&
			strings.Contains(stmt, "UNIQUE") {
			found = true
		}
	}
	if !found {
		t.Error("expected a unique index definition on user.email")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	t.Parallel()

	db := &fakeDatabase{}
	for _, stmt := range schemaStatements {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement must be re-runnable: %s", stmt)
		}
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("second run must succeed: %v", err)
	}
}

func TestEnsureSchema_PropagatesFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection lost")
	db := &fakeDatabase{
		executeFunc: func(ctx context.Context, query string, vars map[string]interface{}) error {
			return boom
		},
	}

	if err := EnsureSchema(context.Background(), db); !errors.Is(err, boom) {
		t.Errorf("expected wrapped execute error, got %v", err)
	}
}
