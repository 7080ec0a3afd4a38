package logging

// Field names for structured logging.
const (
	FieldError    = "error"
	FieldDocument = "document"

	// Edit fields.
	FieldOp     = "op"
	FieldPos    = "pos"
	FieldLength = "length"
	FieldPieces = "pieces"
	FieldRuns   = "runs"
)
