// Package validation checks built templates before they are written or
// deployed.
//
// Two layers run:
//   - structural checks: every Ref, Fn::GetAtt, and DependsOn target must
//     name a resource that exists in the template
//   - cfn-lint-go: rule-based template linting, used as a library so the
//     lint version ships with this tool
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/internal/template"
)

// LintResult is the outcome of a cfn-lint run over one template file.
type LintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r LintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// CheckReferences verifies that every reference in the template points at a
// resource the template actually contains. Pseudo parameters (AWS::Region
// and friends) resolve at stack time and are skipped.
func CheckReferences(tpl *fargate.Template) []error {
	var errs []error

	names := make([]string, 0, len(tpl.Resources))
	for name := range tpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res := tpl.Resources[name]

		for _, target := range template.References(res.Properties) {
			if strings.HasPrefix(target, "AWS::") {
				continue
			}
			if _, exists := tpl.Resources[target]; !exists {
				errs = append(errs, fmt.Errorf("%s references %q, which is not in the template", name, target))
			}
		}

		for _, dep := range res.DependsOn {
			if _, exists := tpl.Resources[dep]; !exists {
				errs = append(errs, fmt.Errorf("%s depends on %q, which is not in the template", name, dep))
			}
		}
	}

	return errs
}

// LintFile runs cfn-lint-go on a rendered template file.
func LintFile(path string) (*LintResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("template file: %w", err)
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		return nil, fmt.Errorf("linting %s: %w", path, err)
	}

	result := &LintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	for _, match := range matches {
		formatted := formatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Warnings are acceptable; errors are not.
	result.Passed = len(result.Errors) == 0
	return result, nil
}

// LintTemplate renders the template to a temporary file and lints it.
func LintTemplate(tpl *fargate.Template) (*LintResult, error) {
	data, err := template.ToJSON(tpl)
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}

	dir, err := os.MkdirTemp("", "fargate-service-lint-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "template.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	return LintFile(path)
}

func formatMatch(match lint.Match) string {
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, strings.Join(parts, "/"))
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
