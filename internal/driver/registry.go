package driver

import (
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/protobuf"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// LanguageConfig buckets a language's grammar node types by the Symbol kind
// they define, generalizing the teacher's per-language config with two
// buckets the teacher never needed: TraitTypes/ImplTypes for Rust trait
// implementations and MessageTypes for Protobuf message/service
// definitions.
type LanguageConfig struct {
	Name           string
	Extensions     []string
	FunctionTypes  []string
	MethodTypes    []string
	ClassTypes     []string
	InterfaceTypes []string
	TraitTypes     []string
	ImplTypes      []string
	TypeDefTypes   []string
	ConstantTypes  []string
	VariableTypes  []string
	MessageTypes   []string
	EnumTypes      []string
	NameField      string // generic identifier-like child type used as a fallback

	CallTypes    []string // call-expression node types
	CommentTypes []string
	StringTypes  []string
}

// Registry maps file extensions and language tags to tree-sitter grammars
// and their LanguageConfig.
type Registry struct {
	mu          sync.RWMutex
	configs     map[string]*LanguageConfig
	extToLang   map[string]string
	tsLanguages map[string]*sitter.Language
}

// NewRegistry builds a Registry with every language CortexAST supports.
func NewRegistry() *Registry {
	r := &Registry{
		configs:     make(map[string]*LanguageConfig),
		extToLang:   make(map[string]string),
		tsLanguages: make(map[string]*sitter.Language),
	}
	r.registerGo()
	r.registerTypeScript()
	r.registerJavaScript()
	r.registerPython()
	r.registerRust()
	r.registerProtobuf()
	return r
}

func (r *Registry) register(cfg *LanguageConfig, lang *sitter.Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.Name] = cfg
	r.tsLanguages[cfg.Name] = lang
	for _, ext := range cfg.Extensions {
		r.extToLang[ext] = cfg.Name
	}
}

// ByExtension returns the LanguageConfig registered for ext (e.g. ".go").
func (r *Registry) ByExtension(ext string) (*LanguageConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name, ok := r.extToLang[ext]
	if !ok {
		return nil, false
	}
	cfg, ok := r.configs[name]
	return cfg, ok
}

// ByName returns the LanguageConfig for a language tag.
func (r *Registry) ByName(name string) (*LanguageConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// TreeSitterLanguage returns the compiled grammar for a language tag.
func (r *Registry) TreeSitterLanguage(name string) (*sitter.Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.tsLanguages[name]
	return lang, ok
}

// LanguageForPath resolves the language tag for a repo-relative path by its
// extension, or "" when no driver claims it.
func LanguageForPath(path string) string {
	ext := ""
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = path[i:]
	}
	if cfg, ok := DefaultRegistry().ByExtension(ext); ok {
		return cfg.Name
	}
	return ""
}

func (r *Registry) registerGo() {
	r.register(&LanguageConfig{
		Name:          "go",
		Extensions:    []string{".go"},
		FunctionTypes: []string{"function_declaration"},
		MethodTypes:   []string{"method_declaration"},
		ClassTypes:    []string{"type_declaration"},
		ConstantTypes: []string{"const_declaration"},
		VariableTypes: []string{"var_declaration"},
		NameField:     "identifier",
		CallTypes:     []string{"call_expression"},
		CommentTypes:  []string{"comment"},
		StringTypes:   []string{"interpreted_string_literal", "raw_string_literal"},
	}, golang.GetLanguage())
}

func (r *Registry) registerTypeScript() {
	shared := LanguageConfig{
		FunctionTypes:  []string{"function_declaration"},
		MethodTypes:    []string{"method_definition"},
		ClassTypes:     []string{"class_declaration"},
		InterfaceTypes: []string{"interface_declaration"},
		TypeDefTypes:   []string{"type_alias_declaration"},
		ConstantTypes:  []string{"lexical_declaration"},
		VariableTypes:  []string{"variable_declaration"},
		NameField:      "identifier",
		CallTypes:      []string{"call_expression"},
		CommentTypes:   []string{"comment"},
		StringTypes:    []string{"string", "template_string"},
	}
	ts := shared
	ts.Name = "typescript"
	ts.Extensions = []string{".ts"}
	r.register(&ts, typescript.GetLanguage())

	tsxCfg := shared
	tsxCfg.Name = "tsx"
	tsxCfg.Extensions = []string{".tsx"}
	r.register(&tsxCfg, tsx.GetLanguage())
}

func (r *Registry) registerJavaScript() {
	shared := LanguageConfig{
		FunctionTypes: []string{"function_declaration", "function"},
		MethodTypes:   []string{"method_definition"},
		ClassTypes:    []string{"class_declaration"},
		ConstantTypes: []string{"lexical_declaration"},
		VariableTypes: []string{"variable_declaration"},
		NameField:     "identifier",
		CallTypes:     []string{"call_expression"},
		CommentTypes:  []string{"comment"},
		StringTypes:   []string{"string", "template_string"},
	}
	js := shared
	js.Name = "javascript"
	js.Extensions = []string{".js", ".mjs"}
	r.register(&js, javascript.GetLanguage())

	jsx := shared
	jsx.Name = "jsx"
	jsx.Extensions = []string{".jsx"}
	r.register(&jsx, javascript.GetLanguage())
}

func (r *Registry) registerPython() {
	r.register(&LanguageConfig{
		Name:          "python",
		Extensions:    []string{".py"},
		FunctionTypes: []string{"function_definition"},
		ClassTypes:    []string{"class_definition"},
		VariableTypes: []string{"assignment"},
		NameField:     "identifier",
		CallTypes:     []string{"call"},
		CommentTypes:  []string{"comment"},
		StringTypes:   []string{"string"},
	}, python.GetLanguage())
}

func (r *Registry) registerRust() {
	r.register(&LanguageConfig{
		Name:          "rust",
		Extensions:    []string{".rs"},
		FunctionTypes: []string{"function_item"},
		ClassTypes:    []string{"struct_item"},
		TraitTypes:    []string{"trait_item"},
		ImplTypes:     []string{"impl_item"},
		TypeDefTypes:  []string{"type_item"},
		ConstantTypes: []string{"const_item", "static_item"},
		EnumTypes:     []string{"enum_item"},
		NameField:     "identifier",
		CallTypes:     []string{"call_expression"},
		CommentTypes:  []string{"line_comment", "block_comment"},
		StringTypes:   []string{"string_literal", "raw_string_literal"},
	}, rust.GetLanguage())
}

func (r *Registry) registerProtobuf() {
	r.register(&LanguageConfig{
		Name:         "protobuf",
		Extensions:   []string{".proto"},
		MessageTypes: []string{"message", "service"},
		EnumTypes:    []string{"enum"},
		NameField:    "message_name",
		CommentTypes: []string{"comment"},
	}, protobuf.GetLanguage())
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide Registry. Safe for concurrent
// read access from every worker goroutine; registration happens once at
// package init.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
