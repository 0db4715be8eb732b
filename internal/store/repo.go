package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	RunID   string    // exact run id match (LLM events only)
	Purpose string    // exact purpose match (LLM events only)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model id.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose and LLMUsageByModel aggregate token usage. Only
	// RunID, Purpose, From and To are honoured.
	LLMUsageByPurpose(ctx context.Context, opts QueryOpts) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context, opts QueryOpts) ([]ModelUsage, error)
}

// AnswerEntry is one persisted question/answer pair, in questionnaire order.
type AnswerEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RunData is the outcome of one pipeline run. Failed runs carry the error
// kind and message and no level, course or narrative.
type RunData struct {
	RunID           string
	SessionID       string
	Industry        string
	Occupation      string
	ExperienceYears int
	Skills          []string
	Answers         []AnswerEntry
	Level           string
	Course          string
	AssetPath       string
	Narrative       string
	Success         bool
	ErrorKind       string
	ErrorMessage    string
	DurationMs      int64
}

// RunRecord is a stored pipeline run.
type RunRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RunData
}

// RunRepo persists diagnostic runs.
type RunRepo interface {
	AppendRun(ctx context.Context, data RunData) error

	// ListRuns returns runs newest first. Only Limit, After, Before, From
	// and To are honoured.
	ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error)

	// GetRun looks a run up by numeric id, or nil if it does not exist.
	GetRun(ctx context.Context, id int) (*RunRecord, error)
}
