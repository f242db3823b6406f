package driver

// Kind enumerates the Symbol kinds the engine recognizes, matching the
// data model's Symbol.kind enum exactly.
type Kind string

const (
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindStruct    Kind = "struct"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindTrait     Kind = "trait"
	KindEnum      Kind = "enum"
	KindConst     Kind = "const"
	KindStatic    Kind = "static"
	KindTypeAlias Kind = "type_alias"
	KindMessage   Kind = "message"
)

// Visibility is public or private, inferred from naming convention or an
// explicit modifier depending on the language.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Symbol is a single named definition extracted from a parsed file.
type Symbol struct {
	Name          string
	Kind          Kind
	Path          string
	ByteRange     [2]uint32
	LineRange     [2]int // 1-indexed, inclusive
	Visibility    Visibility
	SignatureText string
	ParentSymbol  string // "" if top-level
}

// UsageCategory classifies how an identifier occurrence relates to its
// target symbol.
type UsageCategory string

const (
	CategoryCall        UsageCategory = "call"
	CategoryTypeRef     UsageCategory = "type_ref"
	CategoryFieldInit   UsageCategory = "field_init"
	CategoryFieldAccess UsageCategory = "field_access"
	CategoryImpl        UsageCategory = "impl"
)

// Usage is one identifier occurrence matching a target name.
type Usage struct {
	Path       string
	Line       int
	ByteOffset uint32
	Category   UsageCategory
}

// Call is an outgoing call expression found inside a symbol's body.
type Call struct {
	CalleeName string
	Line       int
}

// Implementor is a type or class implementing a named trait/interface.
type Implementor struct {
	TypeName string
	Path     string
	Line     int
}

// trivialIntrinsics are filtered from outgoing-call results as noise,
// mirroring the teacher's trivial-intrinsics filter for string builders and
// similarly ubiquitous standard calls.
var trivialIntrinsics = map[string]bool{
	"len": true, "cap": true, "append": true, "make": true, "new": true,
	"print": true, "println": true, "panic": true, "recover": true,
	"String": true, "push_str": true, "format": true, "push": true,
}
