package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-inventory/core"
	"github.com/goliatone/go-inventory/layout"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type rootOptions struct {
	format    string
	threshold int
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "lensctl",
		Short:         "Inspect inventory layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json or yaml")
	root.PersistentFlags().IntVar(&opts.threshold, "indexed-threshold", core.DefaultIndexedThreshold, "child count above which lookups use binary search")

	root.AddCommand(newDescribeCommand(opts), newResolveCommand(opts))
	return root
}

func newDescribeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <layout.yaml>",
		Short: "Print the container tree of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, inv, err := opts.load(args[0])
			if err != nil {
				return err
			}
			view := describeLayout(file, inv)
			if opts.format == formatText {
				writeTree(cmd.OutOrStdout(), view, 0)
				return nil
			}
			return opts.encode(cmd.OutOrStdout(), view)
		},
	}
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <layout.yaml> <index>",
		Short: "Resolve a flat index to its owning container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("lensctl: index %q is not a number", args[1])
			}
			file, inv, err := opts.load(args[0])
			if err != nil {
				return err
			}
			resolution, ok := core.ResolveIndex(inv, index)
			if !ok {
				return fmt.Errorf("lensctl: index %d is outside [0, %d)", index, inv.Capacity())
			}
			view := resolveView{
				Index: resolution.Index,
				Path:  file.PathNames(resolution.Path),
				Kind:  resolution.Kind,
				Local: resolution.Local,
			}
			if resolution.Grid {
				view.X, view.Y = &resolution.X, &resolution.Y
			}
			if opts.format == formatText {
				writeResolution(cmd.OutOrStdout(), view)
				return nil
			}
			return opts.encode(cmd.OutOrStdout(), view)
		},
	}
}

func (o *rootOptions) load(path string) (*layout.File, *core.CustomInventory, error) {
	switch o.format {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, nil, fmt.Errorf("lensctl: unknown format %q", o.format)
	}
	file, err := layout.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	inv, err := file.Build(func() *core.InventoryBuilder {
		return core.NewInventoryBuilder(core.WithIndexedThreshold(o.threshold))
	})
	if err != nil {
		return nil, nil, err
	}
	return file, inv, nil
}

func (o *rootOptions) encode(out io.Writer, value any) error {
	if o.format == formatYAML {
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

type nodeView struct {
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Kind     string     `json:"kind" yaml:"kind"`
	Capacity int        `json:"capacity" yaml:"capacity"`
	Offset   int        `json:"offset" yaml:"offset"`
	Identity string     `json:"identity,omitempty" yaml:"identity,omitempty"`
	Carrier  string     `json:"carrier,omitempty" yaml:"carrier,omitempty"`
	Width    int        `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int        `json:"height,omitempty" yaml:"height,omitempty"`
	Children []nodeView `json:"children,omitempty" yaml:"children,omitempty"`
}

type resolveView struct {
	Index int      `json:"index" yaml:"index"`
	Path  []string `json:"path" yaml:"path"`
	Kind  string   `json:"kind" yaml:"kind"`
	Local int      `json:"local" yaml:"local"`
	X     *int     `json:"x,omitempty" yaml:"x,omitempty"`
	Y     *int     `json:"y,omitempty" yaml:"y,omitempty"`
}

func describeLayout(file *layout.File, inv *core.CustomInventory) nodeView {
	desc := core.DescribeInventory(inv)
	view := toNodeView(desc, file.Children, 0)
	view.Name = file.Name
	return view
}

func toNodeView(desc core.InventoryDescription, nodes []layout.Node, offset int) nodeView {
	view := nodeView{
		Kind:     desc.Kind,
		Capacity: desc.Capacity,
		Offset:   offset,
		Carrier:  desc.Carrier,
		Width:    desc.Width,
		Height:   desc.Height,
	}
	if desc.ID != uuid.Nil {
		view.Identity = desc.ID.String()
	}
	childOffset := offset
	for i, child := range desc.Children {
		var nested []layout.Node
		name := ""
		if i < len(nodes) {
			name = nodes[i].Name
			nested = nodes[i].Children
		}
		childView := toNodeView(child, nested, childOffset)
		childView.Name = name
		view.Children = append(view.Children, childView)
		childOffset += child.Capacity
	}
	return view
}

func writeTree(out io.Writer, view nodeView, depth int) {
	name := view.Name
	if name == "" {
		name = "-"
	}
	line := fmt.Sprintf("%s%s [%s] capacity=%d offset=%d", strings.Repeat("  ", depth), name, view.Kind, view.Capacity, view.Offset)
	if view.Width > 0 || view.Height > 0 {
		line += fmt.Sprintf(" grid=%dx%d", view.Width, view.Height)
	}
	if view.Identity != "" {
		line += " identity=" + view.Identity
	}
	if view.Carrier != "" {
		line += " carrier=" + view.Carrier
	}
	fmt.Fprintln(out, line)
	for _, child := range view.Children {
		writeTree(out, child, depth+1)
	}
}

func writeResolution(out io.Writer, view resolveView) {
	fmt.Fprintf(out, "index=%d path=%s kind=%s local=%d", view.Index, strings.Join(view.Path, "/"), view.Kind, view.Local)
	if view.X != nil && view.Y != nil {
		fmt.Fprintf(out, " x=%d y=%d", *view.X, *view.Y)
	}
	fmt.Fprintln(out)
}
