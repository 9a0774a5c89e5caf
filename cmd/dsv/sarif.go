package main

import (
	"encoding/json"
	"io"
	"runtime"

	"github.com/google/uuid"

	"github.com/akrisanov/docstring-verifier/internal/report"
	"github.com/akrisanov/docstring-verifier/internal/rules"
	"github.com/akrisanov/docstring-verifier/internal/version"
)

// SARIF 2.1.0 schema types
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SARIFReport is the top-level SARIF document.
type SARIFReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool              SARIFTool         `json:"tool"`
	AutomationDetails *SARIFAutomation  `json:"automationDetails,omitempty"`
	Results           []SARIFResult     `json:"results"`
	Invocations       []SARIFInvocation `json:"invocations,omitempty"`
	ColumnKind        string            `json:"columnKind,omitempty"`
}

// SARIFAutomation identifies a run for result matching across uploads.
type SARIFAutomation struct {
	GUID string `json:"guid,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver describes the primary analysis component.
type SARIFDriver struct {
	Name            string      `json:"name"`
	Version         string      `json:"version,omitempty"`
	SemanticVersion string      `json:"semanticVersion,omitempty"`
	InformationURI  string      `json:"informationUri,omitempty"`
	Rules           []SARIFRule `json:"rules,omitempty"`
}

// SARIFRule describes a rule that detected an issue.
type SARIFRule struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name,omitempty"`
	ShortDescription     *SARIFMessage           `json:"shortDescription,omitempty"`
	DefaultConfiguration *SARIFRuleConfiguration `json:"defaultConfiguration,omitempty"`
}

// SARIFRuleConfiguration describes the default configuration for a rule.
type SARIFRuleConfiguration struct {
	Level string `json:"level,omitempty"` // error, warning, note, none
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level,omitempty"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFMessage contains text in various formats.
type SARIFMessage struct {
	Text string `json:"text,omitempty"`
}

// SARIFLocation describes where a result was found.
type SARIFLocation struct {
	PhysicalLocation *SARIFPhysicalLocation `json:"physicalLocation,omitempty"`
}

// SARIFPhysicalLocation identifies a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation *SARIFArtifactLocation `json:"artifactLocation,omitempty"`
	Region           *SARIFRegion           `json:"region,omitempty"`
}

// SARIFArtifactLocation identifies a file.
type SARIFArtifactLocation struct {
	URI       string `json:"uri,omitempty"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFRegion identifies a region within a file. Lines and columns are
// 1-based per the SARIF specification.
type SARIFRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFInvocation describes a single invocation of the tool.
type SARIFInvocation struct {
	ExecutionSuccessful bool   `json:"executionSuccessful"`
	Machine             string `json:"machine,omitempty"`
}

func severityToSARIFLevel(severity string) string {
	switch severity {
	case "error":
		return "error"
	case "warning":
		return "warning"
	default:
		return "note"
	}
}

// writeSARIF converts the report into a SARIF 2.1.0 document.
func writeSARIF(w io.Writer, doc *report.Report) error {
	catalog := rules.Catalog()

	sarifRules := make([]SARIFRule, 0, len(catalog))
	ruleIndex := make(map[string]int, len(catalog))
	for i, info := range catalog {
		ruleIndex[info.ID] = i
		sarifRules = append(sarifRules, SARIFRule{
			ID:               info.ID,
			Name:             info.ID,
			ShortDescription: &SARIFMessage{Text: info.Summary},
			DefaultConfiguration: &SARIFRuleConfiguration{
				Level: severityToSARIFLevel(string(info.Default)),
			},
		})
	}

	var results []SARIFResult
	executionSuccessful := true
	for _, file := range doc.Files {
		if file.Error != nil {
			executionSuccessful = false
			continue
		}
		for _, d := range file.Diagnostics {
			results = append(results, SARIFResult{
				RuleID:    d.RuleID,
				RuleIndex: ruleIndex[d.RuleID],
				Level:     severityToSARIFLevel(d.Severity),
				Message:   SARIFMessage{Text: d.Message},
				Locations: []SARIFLocation{
					{
						PhysicalLocation: &SARIFPhysicalLocation{
							ArtifactLocation: &SARIFArtifactLocation{
								URI:       file.Path,
								URIBaseID: "%SRCROOT%",
							},
							Region: &SARIFRegion{
								StartLine:   d.Range.Start.Line + 1,
								StartColumn: d.Range.Start.Character + 1,
								EndLine:     d.Range.End.Line + 1,
								EndColumn:   d.Range.End.Character + 1,
							},
						},
					},
				},
			})
		}
	}
	if results == nil {
		results = []SARIFResult{}
	}

	sarif := SARIFReport{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SARIFRun{
			{
				Tool: SARIFTool{
					Driver: SARIFDriver{
						Name:            "dsv",
						Version:         version.Version,
						SemanticVersion: version.Version,
						InformationURI:  "https://github.com/akrisanov/docstring-verifier",
						Rules:           sarifRules,
					},
				},
				AutomationDetails: &SARIFAutomation{GUID: uuid.NewString()},
				Results:           results,
				Invocations: []SARIFInvocation{
					{
						ExecutionSuccessful: executionSuccessful,
						Machine:             runtime.GOOS + "/" + runtime.GOARCH,
					},
				},
				ColumnKind: "unicodeCodePoints",
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarif)
}
