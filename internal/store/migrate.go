package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/abhisek/mathflow/ent/schema"
)

// entSchema is the part of an ent schema the migrator reads.
type entSchema interface {
	Mixin() []ent.Mixin
	Fields() []ent.Field
	Indexes() []ent.Index
}

// table binds a table name to the ent schema describing its columns.
type table struct {
	name   string
	schema entSchema
}

var tables = []table{
	{name: llmEventsTable, schema: schema.LLMRequestEvent{}},
}

// migrate creates every table and index that does not exist yet. Columns
// come from the ent schema descriptors, so the schema package stays the
// single definition of the event layout.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, t := range tables {
		stmts, err := t.ddl()
		if err != nil {
			return fmt.Errorf("table %s: %w", t.name, err)
		}
		for _, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("table %s: %w", t.name, err)
			}
		}
	}
	return nil
}

func (t table) fields() []*field.Descriptor {
	var out []*field.Descriptor
	for _, m := range t.schema.Mixin() {
		for _, f := range m.Fields() {
			out = append(out, f.Descriptor())
		}
	}
	for _, f := range t.schema.Fields() {
		out = append(out, f.Descriptor())
	}
	return out
}

func (t table) indexes() []*index.Descriptor {
	var out []*index.Descriptor
	for _, m := range t.schema.Mixin() {
		for _, idx := range m.Indexes() {
			out = append(out, idx.Descriptor())
		}
	}
	for _, idx := range t.schema.Indexes() {
		out = append(out, idx.Descriptor())
	}
	return out
}

// ddl returns the CREATE TABLE statement followed by one CREATE INDEX per
// schema index.
func (t table) ddl() ([]string, error) {
	cols := []string{quote("id") + " integer PRIMARY KEY AUTOINCREMENT"}
	for _, d := range t.fields() {
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		col := quote(d.Name) + " " + columnType(d.Info.Type)
		if !d.Optional && !d.Nillable {
			col += " NOT NULL"
		}
		if d.Unique {
			col += " UNIQUE"
		}
		cols = append(cols, col)
	}
	stmts := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(t.name), strings.Join(cols, ", "))}

	for _, idx := range t.indexes() {
		name := t.name + "_" + strings.Join(idx.Fields, "_")
		quoted := make([]string, len(idx.Fields))
		for i, f := range idx.Fields {
			quoted[i] = quote(f)
		}
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique, quote(name), quote(t.name), strings.Join(quoted, ", ")))
	}
	return stmts, nil
}

func quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

// columnType maps an ent field type to a SQLite column type. Times are
// stored as unix milliseconds.
func columnType(t field.Type) string {
	switch {
	case t == field.TypeBool:
		return "boolean"
	case t == field.TypeTime:
		return "integer"
	case t == field.TypeFloat32 || t == field.TypeFloat64:
		return "real"
	case t.Numeric():
		return "integer"
	default:
		return "text"
	}
}
