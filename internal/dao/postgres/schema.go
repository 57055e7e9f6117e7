package postgres

import "strings"

// ColumnSpec describes one column of a managed table. The same spec renders
// both the column's slot in CREATE TABLE and the ALTER TABLE ADD COLUMN used
// when migrating an older database, so the two can never drift apart.
type ColumnSpec struct {
	Name       string
	DataType   string
	Constraint string
}

func (c ColumnSpec) ddl() string {
	parts := []string{c.Name, c.DataType}
	if c.Constraint != "" {
		parts = append(parts, c.Constraint)
	}
	return strings.Join(parts, " ")
}

// TableSpec is the declarative definition of a managed table. Migrated lists
// the columns (by name) that were added after the table first shipped; those
// are the ones the migration routine checks for on live databases.
type TableSpec struct {
	Name        string
	Columns     []ColumnSpec
	Constraints []string
	Migrated    []string
}

// CreateDDL renders the idempotent CREATE TABLE statement for the table.
func (t TableSpec) CreateDDL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")
	for i, c := range t.Columns {
		b.WriteString("    ")
		b.WriteString(c.ddl())
		if i < len(t.Columns)-1 || len(t.Constraints) > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	for i, cn := range t.Constraints {
		b.WriteString("    ")
		b.WriteString(cn)
		if i < len(t.Constraints)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// Column returns the spec for a named column.
func (t TableSpec) Column(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// AddColumnDDL renders the ALTER TABLE statement adding a named column.
func (t TableSpec) AddColumnDDL(name string) (string, bool) {
	c, ok := t.Column(name)
	if !ok {
		return "", false
	}
	return "ALTER TABLE " + t.Name + " ADD COLUMN " + c.ddl(), true
}

var usersTable = TableSpec{
	Name: "users",
	Columns: []ColumnSpec{
		{Name: "id", DataType: "SERIAL", Constraint: "PRIMARY KEY"},
		{Name: "username", DataType: "VARCHAR(50)", Constraint: "UNIQUE NOT NULL"},
		{Name: "email", DataType: "VARCHAR(100)", Constraint: "UNIQUE NOT NULL"},
		{Name: "mobile", DataType: "VARCHAR(20)"},
		{Name: "password", DataType: "VARCHAR(255)", Constraint: "NOT NULL"},
		{Name: "created_at", DataType: "TIMESTAMPTZ", Constraint: "NOT NULL DEFAULT now()"},
	},
	Migrated: []string{"mobile"},
}

var friendshipsTable = TableSpec{
	Name: "friendships",
	Columns: []ColumnSpec{
		{Name: "id", DataType: "SERIAL", Constraint: "PRIMARY KEY"},
		{Name: "user1_id", DataType: "INTEGER", Constraint: "NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
		{Name: "user2_id", DataType: "INTEGER", Constraint: "NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
		{Name: "status", DataType: "VARCHAR(20)", Constraint: "NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected'))"},
		{Name: "created_at", DataType: "TIMESTAMPTZ", Constraint: "NOT NULL DEFAULT now()"},
		{Name: "updated_at", DataType: "TIMESTAMPTZ", Constraint: "NOT NULL DEFAULT now()"},
	},
	Constraints: []string{"UNIQUE (user1_id, user2_id)"},
	Migrated:    []string{"updated_at"},
}

var messagesTable = TableSpec{
	Name: "messages",
	Columns: []ColumnSpec{
		{Name: "id", DataType: "SERIAL", Constraint: "PRIMARY KEY"},
		{Name: "content", DataType: "TEXT", Constraint: "NOT NULL"},
		{Name: "sender_id", DataType: "INTEGER", Constraint: "NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
		{Name: "receiver_id", DataType: "INTEGER", Constraint: "NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
		{Name: "created_at", DataType: "TIMESTAMPTZ", Constraint: "NOT NULL DEFAULT now()"},
		{Name: "read", DataType: "BOOLEAN", Constraint: "NOT NULL DEFAULT FALSE"},
		{Name: "media_url", DataType: "TEXT"},
		{Name: "media_type", DataType: "VARCHAR(50)"},
		{Name: "media_public_id", DataType: "TEXT"},
		{Name: "media_format", DataType: "VARCHAR(20)"},
		{Name: "reply_to_id", DataType: "INTEGER", Constraint: "REFERENCES messages(id) ON DELETE CASCADE"},
	},
	Migrated: []string{"read", "media_url", "media_type", "media_public_id", "media_format", "reply_to_id"},
}

var messageReactionsTable = TableSpec{
	Name: "message_reactions",
	Columns: []ColumnSpec{
		{Name: "id", DataType: "SERIAL", Constraint: "PRIMARY KEY"},
		{Name: "message_id", DataType: "INTEGER", Constraint: "NOT NULL REFERENCES messages(id) ON DELETE CASCADE"},
		{Name: "user_id", DataType: "INTEGER", Constraint: "NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
		{Name: "emoji", DataType: "VARCHAR(20)", Constraint: "NOT NULL"},
		{Name: "emoji_name", DataType: "VARCHAR(50)"},
		{Name: "created_at", DataType: "TIMESTAMPTZ", Constraint: "NOT NULL DEFAULT now()"},
	},
	Constraints: []string{"UNIQUE (message_id, user_id, emoji)"},
}

// schemaTables lists every managed table in foreign-key dependency order:
// friendships, messages and message_reactions all reference users, and
// message_reactions references messages.
var schemaTables = []TableSpec{usersTable, friendshipsTable, messagesTable, messageReactionsTable}

// Trigger function keeping friendships.updated_at current on row updates.
const setUpdatedAtFnDDL = `CREATE OR REPLACE FUNCTION set_updated_at()
RETURNS TRIGGER AS $$
BEGIN
    NEW.updated_at = now();
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;`

const (
	dropFriendshipsTriggerDDL = `DROP TRIGGER IF EXISTS friendships_set_updated_at ON friendships`

	createFriendshipsTriggerDDL = `CREATE TRIGGER friendships_set_updated_at
BEFORE UPDATE ON friendships
FOR EACH ROW
EXECUTE FUNCTION set_updated_at()`
)
