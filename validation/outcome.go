package validation

type Reason string

const (
	ReasonPathRequired        Reason = "pathRequired"
	ReasonPathDangerousChars  Reason = "pathDangerousChars"
	ReasonPathTraversal       Reason = "pathTraversal"
	ReasonInvalidExtension    Reason = "invalidExtension"
	ReasonInvalidWindowsPath  Reason = "invalidWindowsPath"
	ReasonReservedWindowsName Reason = "reservedWindowsName"
	ReasonInvalidUnixPath     Reason = "invalidUnixPath"
	ReasonPathNotExists       Reason = "pathNotExists"
	ReasonInvalidXcodePath    Reason = "invalidXcodePath"
	ReasonInvalidOption       Reason = "invalidOption"
)

// Outcome is the result of validating one value
type Outcome struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

func Valid() Outcome {
	return Outcome{Valid: true}
}

func Invalid(reason Reason) Outcome {
	return Outcome{Valid: false, Reason: reason}
}
