package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableScores      = "scores"
	tableResponses   = "responses"
	tableQuestions   = "questions"
	tableJournal     = "journal_entries"
	tableLLMRequests = "llm_request_events"
	tableMeta        = "meta"
	tableSequence    = "global_sequence"
)

var (
	scoresColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "username", Type: field.TypeString},
		{Name: "age", Type: field.TypeInt, Nullable: true},
		{Name: "age_group", Type: field.TypeString, Default: "unknown"},
		{Name: "total_score", Type: field.TypeInt},
		{Name: "max_score", Type: field.TypeInt},
		{Name: "reflection_text", Type: field.TypeString, Default: ""},
		{Name: "sentiment_score", Type: field.TypeFloat64, Nullable: true},
		{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
	}
	scoresTable = &schema.Table{
		Name:       tableScores,
		Columns:    scoresColumns,
		PrimaryKey: []*schema.Column{scoresColumns[0]},
		Indexes: []*schema.Index{
			{Name: "score_username_created_at", Columns: []*schema.Column{scoresColumns[2], scoresColumns[10]}},
		},
	}

	responsesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "score_id", Type: field.TypeInt64},
		{Name: "username", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeInt},
		{Name: "question_index", Type: field.TypeInt},
		{Name: "response_value", Type: field.TypeInt},
		{Name: "age_group", Type: field.TypeString, Default: "unknown"},
		{Name: "elapsed_ms", Type: field.TypeInt64, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
	}
	responsesTable = &schema.Table{
		Name:       tableResponses,
		Columns:    responsesColumns,
		PrimaryKey: []*schema.Column{responsesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "responses_scores_responses",
				Columns:    []*schema.Column{responsesColumns[1]},
				RefColumns: []*schema.Column{scoresColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "response_score_id", Columns: []*schema.Column{responsesColumns[1]}},
		},
	}

	questionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "text", Type: field.TypeString},
		{Name: "tooltip", Type: field.TypeString, Default: ""},
		{Name: "age_min", Type: field.TypeInt, Default: 0},
		{Name: "age_max", Type: field.TypeInt, Default: 120},
	}
	questionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
	}

	journalColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "username", Type: field.TypeString},
		{Name: "entry_date", Type: field.TypeTime},
		{Name: "content", Type: field.TypeString},
		{Name: "sentiment_score", Type: field.TypeFloat64, Default: 0},
		{Name: "emotional_patterns", Type: field.TypeString, Default: ""},
		{Name: "sleep_hours", Type: field.TypeFloat64, Nullable: true},
		{Name: "sleep_quality", Type: field.TypeInt, Nullable: true},
		{Name: "energy_level", Type: field.TypeInt, Nullable: true},
		{Name: "work_hours", Type: field.TypeFloat64, Nullable: true},
	}
	journalTable = &schema.Table{
		Name:       tableJournal,
		Columns:    journalColumns,
		PrimaryKey: []*schema.Column{journalColumns[0]},
		Indexes: []*schema.Index{
			{Name: "journal_username_entry_date", Columns: []*schema.Column{journalColumns[1], journalColumns[2]}},
		},
	}

	llmRequestColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	llmRequestTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestColumns,
		PrimaryKey: []*schema.Column{llmRequestColumns[0]},
	}

	metaColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString},
	}
	metaTable = &schema.Table{
		Name:       tableMeta,
		Columns:    metaColumns,
		PrimaryKey: []*schema.Column{metaColumns[0]},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{
		scoresTable,
		responsesTable,
		questionsTable,
		journalTable,
		llmRequestTable,
		metaTable,
		sequenceTable,
	}
)

func init() {
	responsesTable.ForeignKeys[0].RefTable = scoresTable
}

// migrate creates or updates all tables and seeds the sequence row.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	query, args := entsql.Dialect(drv.Dialect()).
		Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}
