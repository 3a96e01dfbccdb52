package logging

// Field names shared by every package so log output stays filterable.
const (
	FieldOperation   = "operation"
	FieldKind        = "kind"
	FieldRecordID    = "record_id"
	FieldCategory    = "category"
	FieldStrategy    = "strategy"
	FieldStatus      = "status"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldMalformed   = "malformed"
	FieldRequestID   = "request_id"
	FieldPath        = "path"
	FieldMethod      = "method"
	FieldState       = "state"
	FieldGeneration  = "generation"
	FieldOutputFile  = "output_file"
	FieldDescription = "description"
)
