package postgres

import (
	"strings"
	"testing"
)

func TestSchemaTablesDependencyOrder(t *testing.T) {
	want := []string{"users", "friendships", "messages", "message_reactions"}
	if len(schemaTables) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(schemaTables))
	}
	for i, name := range want {
		if schemaTables[i].Name != name {
			t.Fatalf("table %d: got %q, want %q", i, schemaTables[i].Name, name)
		}
	}
}

func TestUsersCreateDDL(t *testing.T) {
	ddl := usersTable.CreateDDL()
	for _, frag := range []string{
		"CREATE TABLE IF NOT EXISTS users (",
		"id SERIAL PRIMARY KEY",
		"username VARCHAR(50) UNIQUE NOT NULL",
		"email VARCHAR(100) UNIQUE NOT NULL",
		"mobile VARCHAR(20)",
		"password VARCHAR(255) NOT NULL",
		"created_at TIMESTAMPTZ NOT NULL DEFAULT now()",
	} {
		if !strings.Contains(ddl, frag) {
			t.Fatalf("users DDL missing %q:\n%s", frag, ddl)
		}
	}
}

func TestFriendshipsCreateDDL(t *testing.T) {
	ddl := friendshipsTable.CreateDDL()
	for _, frag := range []string{
		"user1_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE",
		"user2_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE",
		"status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected'))",
		"UNIQUE (user1_id, user2_id)",
	} {
		if !strings.Contains(ddl, frag) {
			t.Fatalf("friendships DDL missing %q:\n%s", frag, ddl)
		}
	}
}

func TestMessagesCreateDDL(t *testing.T) {
	ddl := messagesTable.CreateDDL()
	for _, frag := range []string{
		"read BOOLEAN NOT NULL DEFAULT FALSE",
		"reply_to_id INTEGER REFERENCES messages(id) ON DELETE CASCADE",
		"media_public_id TEXT",
	} {
		if !strings.Contains(ddl, frag) {
			t.Fatalf("messages DDL missing %q:\n%s", frag, ddl)
		}
	}
}

func TestReactionsCreateDDLUniqueTriple(t *testing.T) {
	ddl := messageReactionsTable.CreateDDL()
	if !strings.Contains(ddl, "UNIQUE (message_id, user_id, emoji)") {
		t.Fatalf("reactions DDL missing unique triple:\n%s", ddl)
	}
	if !strings.Contains(ddl, "emoji VARCHAR(20) NOT NULL") {
		t.Fatalf("reactions DDL missing emoji column:\n%s", ddl)
	}
}

func TestMigratedColumnsHaveSpecs(t *testing.T) {
	// The migration list and the create definition come from the same
	// descriptors; a migrated name without a column spec would be a bug.
	for _, tbl := range schemaTables {
		for _, name := range tbl.Migrated {
			if _, ok := tbl.Column(name); !ok {
				t.Fatalf("%s.%s listed as migrated but has no column spec", tbl.Name, name)
			}
			if _, ok := tbl.AddColumnDDL(name); !ok {
				t.Fatalf("%s.%s has no ADD COLUMN rendering", tbl.Name, name)
			}
		}
	}
}

func TestAddColumnDDLDerivedFromSpec(t *testing.T) {
	got, ok := messagesTable.AddColumnDDL("reply_to_id")
	if !ok {
		t.Fatal("reply_to_id spec missing")
	}
	want := "ALTER TABLE messages ADD COLUMN reply_to_id INTEGER REFERENCES messages(id) ON DELETE CASCADE"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if _, ok := messagesTable.AddColumnDDL("no_such_column"); ok {
		t.Fatal("unknown column should not render")
	}
}

func TestCreateDDLStatementsAreAdditiveOnly(t *testing.T) {
	for _, tbl := range schemaTables {
		ddl := tbl.CreateDDL()
		if !strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS ") {
			t.Fatalf("%s DDL is not guarded: %s", tbl.Name, ddl)
		}
		if strings.Contains(ddl, "DROP") {
			t.Fatalf("%s DDL contains a destructive clause: %s", tbl.Name, ddl)
		}
	}
}
