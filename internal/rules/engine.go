package rules

import (
	"strings"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
)

// ruleFunc is a pure function of one function's code and doc models.
// Implementations never retain state across calls.
type ruleFunc func(fn *pysrc.Function, doc *docstring.Model) []Diagnostic

// ruleOrder pairs ids with their implementations, in catalog order.
var ruleOrder = []struct {
	id string
	fn ruleFunc
}{
	{DSV101, checkDocParamsExist},
	{DSV102, checkCodeParamsDocumented},
	{DSV103, checkParamTypes},
	{DSV104, checkParamOptionality},
	{DSV201, checkReturnType},
	{DSV202, checkReturnDocumented},
	{DSV203, checkVoidReturnDoc},
	{DSV204, checkReturnSites},
	{DSV205, checkGeneratorReturns},
	{DSV301, checkRaisesDocumented},
	{DSV302, checkDocRaisesExist},
	{DSV401, checkSideEffects},
}

// Engine runs the rule set for one function at a time. It carries only
// configuration (severities, disabled rules), never per-function state.
type Engine struct {
	severities map[string]Severity
	disabled   map[string]bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSeverity overrides the severity of a rule.
func WithSeverity(ruleID string, severity Severity) EngineOption {
	return func(e *Engine) {
		e.severities[ruleID] = severity
	}
}

// WithDisabled disables the given rules entirely.
func WithDisabled(ruleIDs ...string) EngineOption {
	return func(e *Engine) {
		for _, id := range ruleIDs {
			e.disabled[id] = true
		}
	}
}

// NewEngine creates an engine with catalog severities.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		severities: defaultSeverities(),
		disabled:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fingerprint returns a stable description of the engine's configuration.
// Two engines that can produce different diagnostics for the same input
// always have different fingerprints.
func (e *Engine) Fingerprint() string {
	var b strings.Builder
	for _, rule := range ruleOrder {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(rule.id)
		b.WriteByte(':')
		if e.disabled[rule.id] {
			b.WriteString("off")
		} else {
			b.WriteString(string(e.severities[rule.id]))
		}
	}
	return b.String()
}

// Run evaluates every enabled rule against one function and its doc model.
// Rules are independent; each may emit zero or more diagnostics. A doc model
// with no detected dialect is still evaluated: every "documented X" rule then
// reports X as undocumented, while "documented but absent" rules stay silent.
func (e *Engine) Run(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	for _, rule := range ruleOrder {
		if e.disabled[rule.id] {
			continue
		}
		for _, d := range rule.fn(fn, doc) {
			d.Severity = e.severities[d.RuleID]
			out = append(out, d)
		}
	}
	return out
}
