package logging

const (
	// FieldComponent names the pipeline stage emitting the line.
	FieldComponent = "component"
	// FieldRunID correlates every line of one synthesis run.
	FieldRunID = "run_id"
	// FieldPath is the source or destination file a line refers to.
	FieldPath = "path"
	// FieldEventType classifies warnings and errors for grepping.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldCount carries the primary count of a progress line.
	FieldCount = "count"
)
