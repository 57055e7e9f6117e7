package dbutil

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestParamSummary(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"u", nil, "u=null"},
		{"u", "", "u=empty"},
		{"u", "alice", "u=len=5"},
		{"n", 42, "n=42"},
		{"b", true, "b=true"},
		{"s", sql.NullString{}, "s=null"},
		{"s", sql.NullString{Valid: true, String: "x"}, "s=len=1"},
		{"t", time.Time{}, "t=zero-time"},
	}
	for _, c := range cases {
		if got := ParamSummary(c.name, c.in); got != c.want {
			t.Fatalf("ParamSummary(%q, %#v) = %q, want %q", c.name, c.in, got, c.want)
		}
	}
}

func TestErrWrap(t *testing.T) {
	if ErrWrap("op", nil) != nil {
		t.Fatal("nil error should stay nil")
	}
	base := errors.New("boom")
	err := ErrWrap("user.insert", base, ParamSummary("username", "alice"))
	if !errors.Is(err, base) {
		t.Fatal("wrapped error should unwrap to base")
	}
	want := "user.insert: boom; username=len=5"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
