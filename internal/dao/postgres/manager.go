package postgres

import (
	"context"
	"fmt"
	"sync"

	dbutil "github.com/flarebyte/chatterbox/internal/dao/dbutil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of the pgx pool API the schema manager needs.
// *pgxpool.Pool satisfies it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SchemaManager brings a cold or partially-migrated database to the required
// shape. The mutex serializes EnsureSchema and AddMissingColumns so that
// racing startup callers cannot interleave the check-and-create sequences;
// the initialized flag limits table creation to once per manager.
type SchemaManager struct {
	db Querier

	mu          sync.Mutex
	initialized bool
}

func NewSchemaManager(db Querier) *SchemaManager {
	return &SchemaManager{db: db}
}

// Initialized reports whether EnsureSchema has completed successfully.
func (m *SchemaManager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// EnsureSchema creates the four managed tables if they do not exist, in
// foreign-key dependency order. After the first successful run it is a no-op
// for the lifetime of the manager. Any statement failure is returned to the
// caller and leaves the flag unset, so a retry re-issues every statement;
// each statement is itself idempotent, so a partial failure is recoverable.
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	for _, t := range schemaTables {
		if _, err := m.db.Exec(ctx, t.CreateDDL()); err != nil {
			return dbutil.ErrWrap("schema.ensure", err, "table="+t.Name)
		}
	}
	m.initialized = true
	return nil
}

// MigrationReport is the typed outcome of AddMissingColumns. Failures are
// collected rather than aborting the run, so one broken alteration does not
// block the rest; callers decide whether a non-empty Errors slice is fatal.
type MigrationReport struct {
	AddedColumns  []string
	CreatedTables []string
	Triggers      []string
	Errors        []error
}

// OK reports whether the migration completed without any failure.
func (r MigrationReport) OK() bool {
	return len(r.Errors) == 0
}

// Changed reports whether the migration altered the schema at all.
func (r MigrationReport) Changed() bool {
	return len(r.AddedColumns) > 0 || len(r.CreatedTables) > 0
}

// AddMissingColumns inspects the live catalog and adds any column from the
// managed table specs that a previous release's database lacks, creates
// message_reactions with its full definition when it is absent entirely, and
// always reinstalls the updated_at trigger on friendships. It runs on every
// call, independently of EnsureSchema, and only ever issues additive
// statements.
func (m *SchemaManager) AddMissingColumns(ctx context.Context) MigrationReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rep MigrationReport
	for _, t := range []TableSpec{usersTable, friendshipsTable, messagesTable} {
		live, err := m.liveColumns(ctx, t.Name)
		if err != nil {
			rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.columns", err, "table="+t.Name))
			continue
		}
		for _, name := range t.Migrated {
			if live[name] {
				continue
			}
			stmt, ok := t.AddColumnDDL(name)
			if !ok {
				rep.Errors = append(rep.Errors, fmt.Errorf("schema.columns: %s.%s has no spec", t.Name, name))
				continue
			}
			if _, err := m.db.Exec(ctx, stmt); err != nil {
				rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.addcolumn", err, "column="+t.Name+"."+name))
				continue
			}
			rep.AddedColumns = append(rep.AddedColumns, t.Name+"."+name)
		}
	}

	// message_reactions arrived later than the base tables; old databases
	// may not have it at all.
	exists, err := m.tableExists(ctx, messageReactionsTable.Name)
	switch {
	case err != nil:
		rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.exists", err, "table="+messageReactionsTable.Name))
	case !exists:
		if _, err := m.db.Exec(ctx, messageReactionsTable.CreateDDL()); err != nil {
			rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.create", err, "table="+messageReactionsTable.Name))
		} else {
			rep.CreatedTables = append(rep.CreatedTables, messageReactionsTable.Name)
		}
	}

	// Replace semantics make the trigger install idempotent; reinstalling on
	// every run keeps it correct after a manual drop.
	if _, err := m.db.Exec(ctx, setUpdatedAtFnDDL); err != nil {
		rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.trigger.fn", err))
		return rep
	}
	if _, err := m.db.Exec(ctx, dropFriendshipsTriggerDDL); err != nil {
		rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.trigger.drop", err))
		return rep
	}
	if _, err := m.db.Exec(ctx, createFriendshipsTriggerDDL); err != nil {
		rep.Errors = append(rep.Errors, dbutil.ErrWrap("schema.trigger.create", err))
		return rep
	}
	rep.Triggers = append(rep.Triggers, "friendships_set_updated_at")
	return rep
}

type ColumnInfo struct {
	Name     string
	DataType string
}

type TableSchema struct {
	Table   string
	Columns []ColumnInfo
	Err     error
}

// InspectSchema reads column name and data type for every managed table,
// ordered by ordinal position. Each table is queried independently, so one
// failure does not hide the remaining tables; per-table errors travel in the
// result for the caller to render.
func (m *SchemaManager) InspectSchema(ctx context.Context) []TableSchema {
	out := make([]TableSchema, 0, len(schemaTables))
	for _, t := range schemaTables {
		ts := TableSchema{Table: t.Name}
		ts.Columns, ts.Err = m.fetchColumns(ctx, t.Name)
		out = append(out, ts)
	}
	return out
}

func (m *SchemaManager) fetchColumns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := m.db.Query(ctx, `SELECT column_name, data_type
        FROM information_schema.columns
        WHERE table_schema='public' AND table_name=$1
        ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, dbutil.ErrWrap("schema.inspect", err, "table="+table)
	}
	defer rows.Close()
	cols := []ColumnInfo{}
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, dbutil.ErrWrap("schema.inspect.scan", err, "table="+table)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbutil.ErrWrap("schema.inspect", err, "table="+table)
	}
	return cols, nil
}

func (m *SchemaManager) liveColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := m.db.Query(ctx, `SELECT column_name
        FROM information_schema.columns
        WHERE table_schema='public' AND table_name=$1`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	live := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		live[name] = true
	}
	return live, rows.Err()
}

func (m *SchemaManager) tableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_schema='public' AND table_name=$1
    )`, table).Scan(&exists)
	return exists, err
}
