// Package tools defines the interfaces and data structures
// for the docsum service.
package tools

const (
	// ToolSummarizeText is the name of the summarize_text MCP tool
	ToolSummarizeText = "summarize_text"

	// ToolSearchSummaries is the name of the search_summaries MCP tool
	ToolSearchSummaries = "search_summaries"

	// ToolDeleteSummary is the name of the delete_summary MCP tool
	ToolDeleteSummary = "delete_summary"

	// ToolClearSummaries is the name of the clear_summaries MCP tool
	ToolClearSummaries = "clear_summaries"

	// DefaultSearchLimit is the default number of results to return
	// when no limit is specified in a search_summaries request
	DefaultSearchLimit = 5
)

// RankedSentence is one sentence of the verbose ranking included in a
// summarize_text response.
type RankedSentence struct {
	// StartOffset and EndOffset delimit the sentence in the source text
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	// Text is the sentence text
	Text string `json:"text"`

	// Score is the contentfulness score assigned by the scorer
	Score float64 `json:"score"`

	// TokenLength is the number of word tokens in the sentence
	TokenLength int `json:"token_length"`
}

// SummarizeTextRequest defines the input schema for summarize_text tool
type SummarizeTextRequest struct {
	// Text is the document text to summarize
	Text string `json:"text"`

	// Percent is the fraction of sentences to keep, in (0, 1].
	// If neither Percent nor TopN is given the service default applies.
	Percent float64 `json:"percent,omitempty"`

	// TopN is the absolute number of sentences to keep.
	// When present it overrides Percent.
	TopN int `json:"top_n,omitempty"`

	// Verbose requests the full ranked sentence list in the response
	Verbose bool `json:"verbose,omitempty"`
}

// SummarizeTextResponse defines the output schema for summarize_text tool
type SummarizeTextResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// ID is the unique identifier assigned to the stored summary
	ID string `json:"id,omitempty"`

	// Summary is the selected sentences in document order
	Summary string `json:"summary"`

	// Info describes how many sentences were kept
	Info string `json:"info"`

	// Ranked is the full sentence ranking, present only when
	// Verbose was requested
	Ranked []RankedSentence `json:"ranked,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// SearchSummariesRequest defines the input schema for search_summaries tool
type SearchSummariesRequest struct {
	// Query is the text to search stored summaries for
	Query string `json:"query"`

	// Limit is the maximum number of results to return
	// If not specified, DefaultSearchLimit will be used
	Limit int `json:"limit,omitempty"`
}

// SearchSummariesResponse defines the output schema for search_summaries tool
type SearchSummariesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Results contains the matching summaries, best first
	Results []string `json:"results"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// DeleteSummaryRequest defines the input schema for delete_summary tool
type DeleteSummaryRequest struct {
	// ID is the unique identifier of the summary to delete
	ID string `json:"id"`
}

// DeleteSummaryResponse defines the output schema for delete_summary tool
type DeleteSummaryResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// ClearSummariesRequest defines the input schema for clear_summaries tool
type ClearSummariesRequest struct {
	// Confirmation is a required field to confirm the operation
	// Must be set to "confirm" to prevent accidental clearing
	Confirmation string `json:"confirmation"`
}

// ClearSummariesResponse defines the output schema for clear_summaries tool
type ClearSummariesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// DeletedCount is the number of summaries removed
	DeletedCount int `json:"deleted_count,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}
