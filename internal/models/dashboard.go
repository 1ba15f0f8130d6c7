package models

// QueryFailure classifies why a dashboard query did not produce rows
type QueryFailure string

const (
	QueryFailureNone       QueryFailure = ""
	QueryFailureInput      QueryFailure = "input"
	QueryFailureGeneration QueryFailure = "generation"
	QueryFailureRejected   QueryFailure = "rejected"
	QueryFailureExecution  QueryFailure = "execution"
)

// QueryRequest is the body of POST /api/dashboard/query
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResult is the structured outcome of a natural-language query
type QueryResult struct {
	Success bool             `json:"success"`
	Query   string           `json:"query,omitempty"`
	Result  []map[string]any `json:"result,omitempty"`
	Message string           `json:"message,omitempty"`
	Failure QueryFailure     `json:"-"`
}
