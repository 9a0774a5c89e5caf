package rules

// Rule identifiers.
const (
	// Parameter rules
	DSV101 = "DSV101" // documented parameter missing in code
	DSV102 = "DSV102" // code parameter missing in docstring
	DSV103 = "DSV103" // parameter type mismatch
	DSV104 = "DSV104" // optional/required mismatch

	// Return rules
	DSV201 = "DSV201" // return type mismatch
	DSV202 = "DSV202" // return value not documented
	DSV203 = "DSV203" // void function documents a return
	DSV204 = "DSV204" // return site outside documented type set
	DSV205 = "DSV205" // generator documents Returns instead of Yields

	// Exception rules
	DSV301 = "DSV301" // raised exception not documented
	DSV302 = "DSV302" // documented exception never raised

	// Side-effect rules
	DSV401 = "DSV401" // side effect not documented
)

// Info describes one rule in the catalog.
type Info struct {
	ID      string   `json:"id"`
	Summary string   `json:"summary"`
	Default Severity `json:"defaultSeverity"`
}

// Catalog lists every rule in evaluation order.
func Catalog() []Info {
	return []Info{
		{DSV101, "Documented parameter does not exist in the function signature", SeverityWarning},
		{DSV102, "Function parameter is not documented", SeverityWarning},
		{DSV103, "Documented parameter type differs from the annotation", SeverityWarning},
		{DSV104, "Documented optionality differs from the default value", SeverityWarning},
		{DSV201, "Documented return type differs from the annotation", SeverityWarning},
		{DSV202, "Return value is not documented", SeverityWarning},
		{DSV203, "Void function documents a return value", SeverityWarning},
		{DSV204, "Return statement type is outside the documented type set", SeverityWarning},
		{DSV205, "Generator documents Returns instead of Yields", SeverityWarning},
		{DSV301, "Raised exception is not documented", SeverityWarning},
		{DSV302, "Documented exception is never raised", SeverityWarning},
		{DSV401, "Side effect is not documented", SeverityInfo},
	}
}

// defaultSeverities maps rule id to its catalog severity.
func defaultSeverities() map[string]Severity {
	out := make(map[string]Severity)
	for _, info := range Catalog() {
		out[info.ID] = info.Default
	}
	return out
}
