package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB records every statement and serves canned catalog answers, standing
// in for the pool so schema management is testable without a live database.
type fakeDB struct {
	stmts    []string
	execErr  map[string]error // substring of statement -> error
	queryErr map[string]error // table name -> error
	columns  map[string][]string
	types    map[string][][2]string // table -> (column, data_type) for inspection
	tables   map[string]bool
	rowErr   error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		execErr:  map[string]error{},
		queryErr: map[string]error{},
		columns:  map[string][]string{},
		types:    map[string][][2]string{},
		tables:   map[string]bool{},
	}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.stmts = append(f.stmts, sql)
	for sub, err := range f.execErr {
		if strings.Contains(sql, sub) {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	table := args[0].(string)
	if err := f.queryErr[table]; err != nil {
		return nil, err
	}
	var rows [][]any
	if strings.Contains(sql, "data_type") {
		for _, ct := range f.types[table] {
			rows = append(rows, []any{ct[0], ct[1]})
		}
	} else {
		for _, c := range f.columns[table] {
			rows = append(rows, []any{c})
		}
	}
	return &fakeRows{rows: rows}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	table := args[0].(string)
	return fakeRow{exists: f.tables[table], err: f.rowErr}
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *bool:
			*p = row[i].(bool)
		}
	}
	return nil
}

type fakeRow struct {
	exists bool
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.exists
	return nil
}

// fullSchema configures the fake as a database already at the required shape.
func fullSchema(f *fakeDB) {
	for _, t := range schemaTables {
		f.tables[t.Name] = true
		var names []string
		for _, c := range t.Columns {
			names = append(names, c.Name)
		}
		f.columns[t.Name] = names
	}
}

func errString(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	return err.Error()
}

func TestEnsureSchemaCreatesTablesInDependencyOrder(t *testing.T) {
	f := newFakeDB()
	m := NewSchemaManager(f)
	if err := m.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"users", "friendships", "messages", "message_reactions"}
	if len(f.stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d: %v", len(want), len(f.stmts), f.stmts)
	}
	for i, table := range want {
		prefix := "CREATE TABLE IF NOT EXISTS " + table + " ("
		if !strings.HasPrefix(f.stmts[i], prefix) {
			t.Fatalf("statement %d: expected prefix %q, got %q", i, prefix, f.stmts[i])
		}
	}
	if !m.Initialized() {
		t.Fatal("manager should be initialized after success")
	}
}

func TestEnsureSchemaRunsAtMostOnce(t *testing.T) {
	f := newFakeDB()
	m := NewSchemaManager(f)
	for i := 0; i < 3; i++ {
		if err := m.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if len(f.stmts) != 4 {
		t.Fatalf("creation statements should run once, got %d statements", len(f.stmts))
	}
}

func TestEnsureSchemaFailurePropagatesAndAllowsRetry(t *testing.T) {
	f := newFakeDB()
	f.execErr["friendships"] = context.DeadlineExceeded
	m := NewSchemaManager(f)
	err := m.EnsureSchema(context.Background())
	if got := errString(t, err); !strings.Contains(got, "schema.ensure") || !strings.Contains(got, "table=friendships") {
		t.Fatalf("unexpected error text: %q", got)
	}
	if m.Initialized() {
		t.Fatal("flag must stay unset after a failure")
	}
	// Retry after the fault clears re-issues every statement.
	delete(f.execErr, "friendships")
	f.stmts = nil
	if err := m.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(f.stmts) != 4 || !m.Initialized() {
		t.Fatalf("retry should run all 4 statements, got %d (initialized=%t)", len(f.stmts), m.Initialized())
	}
}

func TestAddMissingColumnsAddsExactlyTheAbsentOnes(t *testing.T) {
	f := newFakeDB()
	fullSchema(f)
	// friendships predates updated_at; messages predates replies.
	f.columns["friendships"] = []string{"id", "user1_id", "user2_id", "status", "created_at"}
	f.columns["messages"] = []string{"id", "content", "sender_id", "receiver_id", "created_at", "read", "media_url", "media_type", "media_public_id", "media_format"}

	m := NewSchemaManager(f)
	rep := m.AddMissingColumns(context.Background())
	if !rep.OK() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	wantAdded := []string{"friendships.updated_at", "messages.reply_to_id"}
	if len(rep.AddedColumns) != len(wantAdded) {
		t.Fatalf("added %v, want %v", rep.AddedColumns, wantAdded)
	}
	for i, w := range wantAdded {
		if rep.AddedColumns[i] != w {
			t.Fatalf("added %v, want %v", rep.AddedColumns, wantAdded)
		}
	}
	var alters []string
	for _, s := range f.stmts {
		if strings.HasPrefix(s, "ALTER TABLE") {
			alters = append(alters, s)
		}
	}
	if len(alters) != 2 {
		t.Fatalf("expected 2 ALTER statements, got %v", alters)
	}
	if alters[0] != "ALTER TABLE friendships ADD COLUMN updated_at TIMESTAMPTZ NOT NULL DEFAULT now()" {
		t.Fatalf("unexpected alter: %q", alters[0])
	}
	if alters[1] != "ALTER TABLE messages ADD COLUMN reply_to_id INTEGER REFERENCES messages(id) ON DELETE CASCADE" {
		t.Fatalf("unexpected alter: %q", alters[1])
	}
	if len(rep.CreatedTables) != 0 {
		t.Fatalf("no table creation expected, got %v", rep.CreatedTables)
	}
}

func TestAddMissingColumnsCreatesReactionsTableWhenAbsent(t *testing.T) {
	f := newFakeDB()
	fullSchema(f)
	f.tables["message_reactions"] = false

	m := NewSchemaManager(f)
	rep := m.AddMissingColumns(context.Background())
	if !rep.OK() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	if len(rep.CreatedTables) != 1 || rep.CreatedTables[0] != "message_reactions" {
		t.Fatalf("expected message_reactions creation, got %v", rep.CreatedTables)
	}
	found := false
	for _, s := range f.stmts {
		if strings.HasPrefix(s, "CREATE TABLE IF NOT EXISTS message_reactions (") {
			found = true
		}
	}
	if !found {
		t.Fatalf("creation statement missing from %v", f.stmts)
	}
}

func TestAddMissingColumnsOnCompleteSchemaIsNonDestructive(t *testing.T) {
	f := newFakeDB()
	fullSchema(f)

	m := NewSchemaManager(f)
	rep := m.AddMissingColumns(context.Background())
	if !rep.OK() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	if rep.Changed() {
		t.Fatalf("complete schema should stay unchanged: %+v", rep)
	}
	// Only the trigger reinstall runs, and nothing destructive ever does.
	if len(f.stmts) != 3 {
		t.Fatalf("expected only the 3 trigger statements, got %v", f.stmts)
	}
	for _, s := range f.stmts {
		if strings.Contains(s, "DROP TABLE") || strings.Contains(s, "DROP COLUMN") {
			t.Fatalf("destructive statement issued: %q", s)
		}
	}
	if len(rep.Triggers) != 1 || rep.Triggers[0] != "friendships_set_updated_at" {
		t.Fatalf("trigger reinstall not reported: %+v", rep)
	}
}

func TestAddMissingColumnsTriggerStatementsAlwaysRun(t *testing.T) {
	f := newFakeDB()
	fullSchema(f)
	m := NewSchemaManager(f)
	m.AddMissingColumns(context.Background())
	m.AddMissingColumns(context.Background())

	var fn, drop, create int
	for _, s := range f.stmts {
		switch {
		case strings.HasPrefix(s, "CREATE OR REPLACE FUNCTION set_updated_at"):
			fn++
		case strings.HasPrefix(s, "DROP TRIGGER IF EXISTS friendships_set_updated_at"):
			drop++
		case strings.HasPrefix(s, "CREATE TRIGGER friendships_set_updated_at"):
			create++
		}
	}
	if fn != 2 || drop != 2 || create != 2 {
		t.Fatalf("trigger install should run every time: fn=%d drop=%d create=%d", fn, drop, create)
	}
}

func TestAddMissingColumnsCollectsErrorsAndKeepsGoing(t *testing.T) {
	f := newFakeDB()
	fullSchema(f)
	f.columns["messages"] = []string{"id", "content", "sender_id", "receiver_id", "created_at", "read", "media_url", "media_type", "media_public_id", "media_format"}
	f.queryErr["users"] = context.DeadlineExceeded

	m := NewSchemaManager(f)
	rep := m.AddMissingColumns(context.Background())
	if rep.OK() {
		t.Fatal("expected an error for users introspection")
	}
	if len(rep.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", rep.Errors)
	}
	// messages migration still proceeded despite the users failure.
	if len(rep.AddedColumns) != 1 || rep.AddedColumns[0] != "messages.reply_to_id" {
		t.Fatalf("migration did not continue past the failure: %+v", rep)
	}
	if len(rep.Triggers) != 1 {
		t.Fatalf("trigger reinstall skipped: %+v", rep)
	}
}

func TestInspectSchemaGuardsEachTableIndependently(t *testing.T) {
	f := newFakeDB()
	f.types["users"] = [][2]string{{"id", "integer"}, {"username", "character varying"}}
	f.types["friendships"] = [][2]string{{"id", "integer"}}
	f.types["message_reactions"] = [][2]string{{"id", "integer"}}
	f.queryErr["messages"] = context.DeadlineExceeded

	m := NewSchemaManager(f)
	out := m.InspectSchema(context.Background())
	if len(out) != 4 {
		t.Fatalf("expected 4 table reports, got %d", len(out))
	}
	byName := map[string]TableSchema{}
	for _, ts := range out {
		byName[ts.Table] = ts
	}
	if byName["messages"].Err == nil {
		t.Fatal("messages inspection should carry its error")
	}
	if byName["users"].Err != nil || len(byName["users"].Columns) != 2 {
		t.Fatalf("users inspection broken: %+v", byName["users"])
	}
	if byName["users"].Columns[1] != (ColumnInfo{Name: "username", DataType: "character varying"}) {
		t.Fatalf("column order/content wrong: %+v", byName["users"].Columns)
	}
	if byName["message_reactions"].Err != nil {
		t.Fatal("failure in one table must not block the others")
	}
}
