// Package template renders described resources into CloudFormation
// template documents.
package template

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/internal/serialize"
)

// Builder collects described resources and outputs, then assembles them
// into a template with resources listed in dependency order.
type Builder struct {
	descriptions map[string]*fargate.Description
	outputs      map[string]fargate.Output
	description  string
}

// NewBuilder returns an empty template builder.
func NewBuilder() *Builder {
	return &Builder{
		descriptions: make(map[string]*fargate.Description),
		outputs:      make(map[string]fargate.Output),
	}
}

// SetDescription sets the template's Description field.
func (b *Builder) SetDescription(desc string) {
	b.description = desc
}

// Add registers one described resource. Logical names must be unique
// within a template.
func (b *Builder) Add(d *fargate.Description) error {
	if d == nil || d.Resource == nil {
		return fmt.Errorf("nil resource description")
	}
	if d.LogicalName == "" {
		return fmt.Errorf("resource of type %s has no logical name", d.Resource.ResourceType())
	}
	if _, exists := b.descriptions[d.LogicalName]; exists {
		return fmt.Errorf("duplicate logical name %q", d.LogicalName)
	}
	b.descriptions[d.LogicalName] = d
	return nil
}

// AddAll registers every description, stopping at the first error.
func (b *Builder) AddAll(ds []*fargate.Description) error {
	for _, d := range ds {
		if err := b.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// SetOutput adds a template output under the given name.
func (b *Builder) SetOutput(name string, out fargate.Output) {
	b.outputs[name] = out
}

// Build serializes every registered resource and assembles the template.
// Explicit dependency edges must form a DAG; a cycle is a build error.
func (b *Builder) Build() (*fargate.Template, error) {
	order, err := b.sortedNames()
	if err != nil {
		return nil, err
	}

	tpl := &fargate.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]fargate.ResourceDef, len(order)),
	}

	for _, name := range order {
		d := b.descriptions[name]
		props, err := serialize.Properties(d.Resource)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		tpl.Resources[name] = fargate.ResourceDef{
			Type:       d.Resource.ResourceType(),
			Properties: props,
			DependsOn:  d.Dependencies(),
		}
	}

	if len(b.outputs) > 0 {
		tpl.Outputs = make(map[string]fargate.Output, len(b.outputs))
		for name, out := range b.outputs {
			tpl.Outputs[name] = out
		}
	}

	return tpl, nil
}

// sortedNames returns logical names in dependency order using Kahn's
// algorithm, ties broken alphabetically so output is deterministic.
func (b *Builder) sortedNames() ([]string, error) {
	dependents := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.descriptions {
		inDegree[name] = 0
	}
	for name, d := range b.descriptions {
		for _, dep := range d.Dependencies() {
			if _, exists := b.descriptions[dep]; !exists {
				return nil, fmt.Errorf("%s depends on %q, which is not in the template", name, dep)
			}
			dependents[dep] = append(dependents[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				sort.Strings(queue)
			}
		}
	}

	if len(order) != len(b.descriptions) {
		return nil, fmt.Errorf("circular dependency detected: %s", b.describeCycle())
	}
	return order, nil
}

// describeCycle names one dependency cycle for the error message.
func (b *Builder) describeCycle() string {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	var cycle []string
	var walk func(name string) bool
	walk = func(name string) bool {
		visited[name] = true
		onPath[name] = true

		for _, dep := range b.descriptions[name].Dependencies() {
			if _, exists := b.descriptions[dep]; !exists {
				continue
			}
			if !visited[dep] {
				if walk(dep) {
					cycle = append([]string{name}, cycle...)
					return true
				}
			} else if onPath[dep] {
				cycle = append([]string{dep, name}, cycle...)
				return true
			}
		}

		onPath[name] = false
		return false
	}

	names := make([]string, 0, len(b.descriptions))
	for name := range b.descriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !visited[name] && walk(name) {
			break
		}
	}

	if len(cycle) == 0 {
		return "unknown cycle"
	}
	return strings.Join(cycle, " -> ")
}

// ToJSON serializes the template as indented JSON.
func ToJSON(t *fargate.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template as YAML.
func ToYAML(t *fargate.Template) ([]byte, error) {
	return yaml.Marshal(t)
}

// References returns the logical names a serialized property tree points at
// through Ref and Fn::GetAtt placeholders.
func References(props map[string]any) []string {
	seen := make(map[string]bool)
	collectReferences(props, seen)

	refs := make([]string, 0, len(seen))
	for name := range seen {
		refs = append(refs, name)
	}
	sort.Strings(refs)
	return refs
}

func collectReferences(value any, seen map[string]bool) {
	switch v := value.(type) {
	case map[string]any:
		if target, ok := v["Ref"].(string); ok && len(v) == 1 {
			seen[target] = true
			return
		}
		if att, ok := v["Fn::GetAtt"]; ok && len(v) == 1 {
			if parts, ok := att.([]any); ok && len(parts) > 0 {
				if target, ok := parts[0].(string); ok {
					seen[target] = true
				}
			}
			return
		}
		for _, nested := range v {
			collectReferences(nested, seen)
		}
	case []any:
		for _, item := range v {
			collectReferences(item, seen)
		}
	}
}
