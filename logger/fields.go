package logger

// Standard field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"

	// Circuits
	FieldGates     = "gates"
	FieldKept      = "kept"
	FieldDropped   = "dropped"
	FieldTokens    = "tokens"
	FieldQubits    = "qubits"
	FieldDepth     = "depth"
	FieldMoment    = "moment"
	FieldGenerator = "generator"
	FieldThreshold = "threshold"

	// Files
	FieldFile   = "file"
	FieldFormat = "format"

	FieldError = "error"
)
