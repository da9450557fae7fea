package config

// ModulePrefix is the prefix carried by atoms naming a qualified module.
const ModulePrefix = "Elixir."

// Reserved atom names
const (
	TrueAtomName  = "true"
	FalseAtomName = "false"
	NilAtomName   = "nil"
)

// Struct field names
const (
	StructFieldName    = "__struct__"
	ExceptionFieldName = "__exception__"
	MessageFieldName   = "message"
)

// Range struct
const (
	RangeModuleName = "Range"
	RangeFirstKey   = "first"
	RangeLastKey    = "last"
	RangeStepKey    = "step"
)

// Function visibility
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Inspect option names
const (
	CustomOptionsKey = "custom_options"
	SortMapsKey      = "sort_maps"
)
