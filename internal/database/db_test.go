package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type emptyRow struct{}

func (emptyRow) Scan(dest ...any) error { return pgx.ErrNoRows }

func TestFakeDBPanicsWhenUnset(t *testing.T) {
	db := &FakeDB{}
	ctx := context.Background()

	require.PanicsWithValue(t, "unexpected Exec: INSERT INTO users", func() { db.Exec(ctx, "INSERT INTO users") })
	require.PanicsWithValue(t, "unexpected Query: SELECT 1", func() { db.Query(ctx, "SELECT 1") })
	require.PanicsWithValue(t, "unexpected QueryRow", func() { db.QueryRow(ctx, "") })
	require.PanicsWithValue(t, "unexpected Ping", func() { db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBDelegates(t *testing.T) {
	ctx := context.Background()
	var calls []string
	db := &FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			calls = append(calls, "exec")
			require.Equal(t, []any{"alice"}, args)
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			calls = append(calls, "query")
			return nil, errors.New("boom")
		},
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			calls = append(calls, "row")
			return emptyRow{}
		},
		PingFn:  func(context.Context) error { calls = append(calls, "ping"); return nil },
		CloseFn: func() { calls = append(calls, "close") },
	}

	tag, err := db.Exec(ctx, "INSERT", "alice")
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())

	_, err = db.Query(ctx, "SELECT")
	require.EqualError(t, err, "boom")

	require.ErrorIs(t, db.QueryRow(ctx, "SELECT").Scan(), pgx.ErrNoRows)
	require.NoError(t, db.Ping(ctx))
	db.Close()

	require.Equal(t, []string{"exec", "query", "row", "ping", "close"}, calls)
}
