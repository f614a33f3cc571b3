package config

// Version is reported by vela -version.
const Version = "0.1.0"

// SourceFileExt is the extension of AST documents loaded by the CLI.
const SourceFileExt = ".vela"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".vela", ".yaml", ".yml", ".json"}

// ConfigFileName is looked up in the working directory when -config is not given.
const ConfigFileName = "vela.yaml"

// MaxEvalDepth bounds evaluator nesting so runaway recursion becomes a
// runtime error instead of a Go stack overflow.
const MaxEvalDepth = 10000

// Root context names
const (
	ProgramContextName = "<program>"
	ReplContextName    = "<repl>"
)

// Built-in function names
const (
	PrintFuncName      = "print"
	PrintRetFuncName   = "print_ret"
	StrFuncName        = "str"
	LenFuncName        = "len"
	AppendFuncName     = "append"
	PopFuncName        = "pop"
	ExtendFuncName     = "extend"
	TypeOfFuncName     = "type_of"
	IsNumberFuncName   = "is_number"
	IsStringFuncName   = "is_string"
	IsListFuncName     = "is_list"
	IsFunctionFuncName = "is_function"
	MatchesFuncName    = "matches"
	ReplaceFuncName    = "replace"
	SplitFuncName      = "split"
)

// Built-in constant names
const (
	NullConstName  = "null"
	TrueConstName  = "true"
	FalseConstName = "false"
	PiConstName    = "pi"
)

// Runtime type names, as reported by type_of and in error messages
const (
	NumberTypeName           = "Number"
	StringTypeName           = "String"
	ListTypeName             = "List"
	FunctionTypeName         = "Function"
	BuiltinTypeName          = "BuiltinFunction"
	StructDefinitionTypeName = "StructDefinition"
	StructInstanceTypeName   = "StructInstance"
	NullTypeName             = "Null"
)
