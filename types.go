package jsonlint

// Severity expresses the severity level for lint findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement while decoding input.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// BindOpt bundles options for source-driven binding.
type BindOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	// FailFast stops decoding at the first finding instead of collecting.
	FailFast bool
}
