package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapstep/internal/cli/output"
	"github.com/leapstack-labs/leapstep/internal/dag"
	"github.com/spf13/cobra"
)

// NewStructureCommand creates the structure command.
func NewStructureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure <document>",
		Short: "Show the product structure of a document",
		Long: `Display the shape definitions of a document grouped by level.

Level 0 holds the parts; every assembly sits one level above the
deepest definition it uses. Assemblies referring to themselves are
reported and cannot be exported.`,
		Example: `  # Show the structure
  leapstep structure bolted.yaml

  # Output as JSON
  leapstep structure bolted.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStructure(cmd, args[0])
		},
	}
	return cmd
}

func runStructure(cmd *cobra.Command, docPath string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}
	graph := dag.FromDocument(doc)

	result := &output.StructureOutput{
		Document: docPath,
		Nodes:    graph.NodeCount(),
		Edges:    graph.EdgeCount(),
	}
	levels, levelErr := graph.Levels()
	if levelErr != nil {
		for id := range graph.Cyclic() {
			result.Cyclic = append(result.Cyclic, id)
		}
		sort.Strings(result.Cyclic)
	}
	for i, level := range levels {
		sl := output.StructureLevel{Level: i}
		for _, id := range level {
			node, _ := graph.Node(id)
			sl.Labels = append(sl.Labels, output.StructureNode{
				Entry: id,
				Name:  node.Label.Name(),
				Parts: graph.Parts(id),
			})
		}
		result.Levels = append(result.Levels, sl)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	case output.ModeMarkdown:
		structureMarkdown(r, result)
	default:
		structureText(r, result)
	}
	if levelErr != nil {
		return fmt.Errorf("invalid product structure: %w", levelErr)
	}
	return nil
}

func structureText(r *output.Renderer, result *output.StructureOutput) {
	styles := r.Styles()
	r.Header(1, "Product Structure")

	for _, level := range result.Levels {
		r.Println(styles.Header2.Render(fmt.Sprintf("Level %d:", level.Level)))
		for _, n := range level.Labels {
			r.Printf("  %s %s\n", styles.Path.Render(n.Entry), n.Name)
			if len(n.Parts) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("uses:"), strings.Join(n.Parts, ", "))
			}
		}
		r.Println("")
	}
	for _, id := range result.Cyclic {
		r.Println(styles.Error.Render("cycle: " + id))
	}
	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d definitions, %d usages", result.Nodes, result.Edges)))
}

func structureMarkdown(r *output.Renderer, result *output.StructureOutput) {
	r.Println(output.FormatHeader(1, "Product Structure"))
	r.Println("")

	for _, level := range result.Levels {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Level %d", level.Level)))
		r.Println("")
		for _, n := range level.Labels {
			line := "- `" + n.Entry + "`"
			if n.Name != "" {
				line += " " + n.Name
			}
			if len(n.Parts) > 0 {
				line += " (uses " + strings.Join(n.Parts, ", ") + ")"
			}
			r.Println(line)
		}
		r.Println("")
	}
	if len(result.Cyclic) > 0 {
		r.Println(output.FormatHeader(2, "Cycles"))
		r.Println("")
		for _, id := range result.Cyclic {
			r.Println("- `" + id + "`")
		}
		r.Println("")
	}
	r.Printf("**Total:** %d definitions, %d usages\n", result.Nodes, result.Edges)
}
