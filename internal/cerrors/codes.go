package cerrors

// Kind identifies the class of failure, matching the error kinds named in
// the engine's error handling design.
type Kind string

const (
	// KindConfig covers a bad repo root or an unreadable config file.
	KindConfig Kind = "ConfigError"
	// KindNotFound covers a symbol or checkpoint that cannot be resolved.
	KindNotFound Kind = "NotFound"
	// KindParseFailure covers a single file that failed to parse. Never fatal
	// to a multi-file operation.
	KindParseFailure Kind = "ParseFailure"
	// KindResourceGuard covers a file skipped for being binary, too large, or
	// minified.
	KindResourceGuard Kind = "ResourceGuard"
	// KindIndexCorruption covers a vector index that was quarantined and
	// rebuilt.
	KindIndexCorruption Kind = "IndexCorruption"
	// KindInvalidAction covers an unknown action or a missing required
	// parameter.
	KindInvalidAction Kind = "InvalidAction"
	// KindTruncated is not strictly an error: a successful result flagged as
	// clipped at max_chars.
	KindTruncated Kind = "Truncated"
)

// Category buckets kinds for coarse-grained handling (logging level,
// whether to surface details to the caller).
type Category string

const (
	CategoryConfig    Category = "config"
	CategoryLookup    Category = "lookup"
	CategoryParse     Category = "parse"
	CategoryGuard     Category = "guard"
	CategoryIndex     Category = "index"
	CategoryProtocol  Category = "protocol"
	CategoryTruncated Category = "truncated"
)

// Severity indicates how the caller should react.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityFatal   Severity = "fatal"
)

func categoryFromKind(k Kind) Category {
	switch k {
	case KindConfig:
		return CategoryConfig
	case KindNotFound:
		return CategoryLookup
	case KindParseFailure:
		return CategoryParse
	case KindResourceGuard:
		return CategoryGuard
	case KindIndexCorruption:
		return CategoryIndex
	case KindInvalidAction:
		return CategoryProtocol
	case KindTruncated:
		return CategoryTruncated
	default:
		return CategoryProtocol
	}
}

func severityFromKind(k Kind) Severity {
	switch k {
	case KindConfig:
		return SeverityFatal
	case KindNotFound, KindInvalidAction:
		return SeverityWarning
	case KindParseFailure, KindResourceGuard:
		return SeverityInfo
	case KindIndexCorruption:
		return SeverityWarning
	case KindTruncated:
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

func retryableFromKind(k Kind) bool {
	return k == KindIndexCorruption
}
