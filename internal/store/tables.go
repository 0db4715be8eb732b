package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	llmEventsTable = "llm_request_events"
	runsTable      = "diagnostic_runs"
)

// Every event-like table carries the same id/sequence/timestamp head so rows
// of different kinds can be ordered against each other.
func eventColumns(rest ...*schema.Column) []*schema.Column {
	head := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(head, rest...)
}

var (
	llmEventsColumns = eventColumns(
		&schema.Column{Name: "run_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmEventsSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[2]}},
			{Name: "llmrequestevent_run_id", Columns: []*schema.Column{llmEventsColumns[3]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[6]}},
		},
	}

	runsColumns = eventColumns(
		&schema.Column{Name: "run_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "industry", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "occupation", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "experience_years", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "skills", Type: field.TypeJSON},
		&schema.Column{Name: "answers", Type: field.TypeJSON},
		&schema.Column{Name: "level", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "course", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "asset_path", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "narrative", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_kind", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
	)
	runsSchema = &schema.Table{
		Name:       runsTable,
		Columns:    runsColumns,
		PrimaryKey: []*schema.Column{runsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "diagnosticrun_timestamp", Columns: []*schema.Column{runsColumns[2]}},
			{Name: "diagnosticrun_session_id", Columns: []*schema.Column{runsColumns[4]}},
		},
	}

	tables = []*schema.Table{llmEventsSchema, runsSchema}
)
