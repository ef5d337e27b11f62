// Package graph renders the resource dependency graph of a template in
// DOT or Mermaid format.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/internal/template"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders dependency graphs from built templates. Property
// references (Ref, Fn::GetAtt) and explicit DependsOn edges both appear;
// explicit edges are drawn bold.
type Generator struct {
	// Format selects dot or mermaid output. Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate writes the dependency graph of the template to w.
func (g *Generator) Generate(tpl *fargate.Template, w io.Writer) error {
	graph := g.buildGraph(tpl)

	var output string
	if g.Format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString returns the rendered graph as a string.
func (g *Generator) GenerateString(tpl *fargate.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(tpl *fargate.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := sortedNames(tpl)

	if g.ClusterByService {
		g.addClusteredNodes(graph, tpl, names)
	} else {
		for _, name := range names {
			node := graph.Node(name)
			node.Label(name + "\\n[" + tpl.Resources[name].Type + "]")
		}
	}

	for _, name := range names {
		res := tpl.Resources[name]

		explicit := make(map[string]bool, len(res.DependsOn))
		for _, dep := range res.DependsOn {
			explicit[dep] = true
		}

		targets := template.References(res.Properties)
		for _, dep := range res.DependsOn {
			targets = append(targets, dep)
		}
		sort.Strings(targets)

		seen := make(map[string]bool)
		for _, target := range targets {
			// Pseudo-parameter references (AWS::Region etc.) are not nodes.
			if _, exists := tpl.Resources[target]; !exists {
				continue
			}
			if seen[target] {
				continue
			}
			seen[target] = true

			edge := graph.Edge(graph.Node(name), graph.Node(target))
			if explicit[target] {
				edge.Attr("style", "bold")
			}
		}
	}

	return graph
}

func (g *Generator) addClusteredNodes(graph *dot.Graph, tpl *fargate.Template, names []string) {
	byService := make(map[string][]string)
	for _, name := range names {
		byService[serviceOf(tpl.Resources[name].Type)] = append(byService[serviceOf(tpl.Resources[name].Type)], name)
	}

	services := make([]string, 0, len(byService))
	for service := range byService {
		services = append(services, service)
	}
	sort.Strings(services)

	for _, service := range services {
		members := byService[service]
		if len(members) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			for _, name := range members {
				node := cluster.Node(name)
				node.Label(name + "\\n[" + tpl.Resources[name].Type + "]")
			}
			continue
		}
		for _, name := range members {
			node := graph.Node(name)
			node.Label(name + "\\n[" + tpl.Resources[name].Type + "]")
		}
	}
}

// serviceOf extracts the service from a CloudFormation type,
// e.g. "AWS::ECS::Cluster" -> "ECS".
func serviceOf(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}

func sortedNames(tpl *fargate.Template) []string {
	names := make([]string, 0, len(tpl.Resources))
	for name := range tpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
