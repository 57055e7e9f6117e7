package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var flagShowOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the live columns of the managed tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		outFmt := strings.ToLower(strings.TrimSpace(flagShowOutput))
		if outFmt == "" {
			outFmt = "tables"
		}
		if outFmt != "tables" && outFmt != "md" && outFmt != "json" {
			return errors.New("--output must be 'tables', 'md' or 'json'")
		}

		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool, err := pgdao.OpenApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		schemas := pgdao.NewSchemaManager(pool).InspectSchema(ctx)
		switch outFmt {
		case "md":
			return showAsMarkdown(schemas)
		case "json":
			return showAsJSON(schemas)
		default:
			return showAsTables(schemas)
		}
	},
}

func init() {
	showCmd.Flags().StringVar(&flagShowOutput, "output", "tables", "Output format: tables, md or json")
}

func showAsTables(schemas []pgdao.TableSchema) error {
	for i, ts := range schemas {
		fmt.Fprintf(os.Stdout, "TABLE: %s\n", ts.Table)
		if ts.Err != nil {
			fmt.Fprintf(os.Stderr, "db:show - %s: %v\n", ts.Table, ts.Err)
			continue
		}
		if len(ts.Columns) == 0 {
			fmt.Fprintln(os.Stdout, "(missing)")
			continue
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"COLUMN", "TYPE"})
		for _, c := range ts.Columns {
			table.Append([]string{c.Name, c.DataType})
		}
		table.Render()
		if i < len(schemas)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
	return nil
}

func showAsMarkdown(schemas []pgdao.TableSchema) error {
	for _, ts := range schemas {
		fmt.Fprintf(os.Stdout, "## %s\n", ts.Table)
		if ts.Err != nil {
			fmt.Fprintf(os.Stderr, "db:show - %s: %v\n", ts.Table, ts.Err)
			continue
		}
		fmt.Fprintln(os.Stdout, "| Column | Type |")
		fmt.Fprintln(os.Stdout, "|---|---|")
		for _, c := range ts.Columns {
			fmt.Fprintf(os.Stdout, "| %s | %s |\n", c.Name, c.DataType)
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func showAsJSON(schemas []pgdao.TableSchema) error {
	type col struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	type tbl struct {
		Table   string `json:"table"`
		Columns []col  `json:"columns,omitempty"`
		Error   string `json:"error,omitempty"`
	}
	out := []tbl{}
	for _, ts := range schemas {
		t := tbl{Table: ts.Table}
		if ts.Err != nil {
			t.Error = ts.Err.Error()
		}
		for _, c := range ts.Columns {
			t.Columns = append(t.Columns, col{Name: c.Name, Type: c.DataType})
		}
		out = append(out, t)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
