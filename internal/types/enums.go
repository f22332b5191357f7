package types

type FlagType string

const (
	FlagTypeBool   FlagType = "bool"
	FlagTypeEnum   FlagType = "enum"
	FlagTypeNumber FlagType = "number"
	FlagTypeString FlagType = "string"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type PredicateOp string

const (
	PredicateOpEq    PredicateOp = "eq"
	PredicateOpNe    PredicateOp = "ne"
	PredicateOpIn    PredicateOp = "in"
	PredicateOpNotIn PredicateOp = "not_in"
	PredicateOpGt    PredicateOp = "gt"
	PredicateOpGte   PredicateOp = "gte"
	PredicateOpLt    PredicateOp = "lt"
	PredicateOpLte   PredicateOp = "lte"
	PredicateOpSet   PredicateOp = "set"
	PredicateOpUnset PredicateOp = "unset"
)

type RenderFormat string

const (
	RenderFormatYAML RenderFormat = "yaml"
	RenderFormatJSON RenderFormat = "json"
	RenderFormatJS   RenderFormat = "js"
)

type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
)
