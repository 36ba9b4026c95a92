// Package layout reads declarative inventory layouts from YAML and turns them
// into builder calls.
//
//	name: player
//	carrier: steve
//	children:
//	  - name: hotbar
//	    slots: 9
//	  - name: main
//	    grid: {width: 9, height: 3}
//	  - name: fuel
//	    slots: 1
//	    accepts: [coal, charcoal]
//	  - name: backpack
//	    children:
//	      - slots: 4
package layout

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-inventory/core"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	LayoutErrorInvalid = "LAYOUT_INVALID"
	LayoutErrorRead    = "LAYOUT_READ_FAILED"
)

// File is a whole layout document. The root is always a composite.
type File struct {
	Name       string `yaml:"name"`
	Identity   string `yaml:"identity,omitempty"`
	Carrier    string `yaml:"carrier,omitempty"`
	StackLimit int    `yaml:"stack_limit,omitempty"`
	Children   []Node `yaml:"children"`
}

// Node is one child container. Exactly one of Slots, Grid or Children is set.
type Node struct {
	Name     string    `yaml:"name,omitempty"`
	Slots    int       `yaml:"slots,omitempty"`
	Grid     *GridSpec `yaml:"grid,omitempty"`
	Accepts  []string  `yaml:"accepts,omitempty"`
	Output   bool      `yaml:"output,omitempty"`
	Children []Node    `yaml:"children,omitempty"`
}

type GridSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Carrier is the carrier named by a layout file.
type Carrier string

func (c Carrier) CarrierID() string { return string(c) }

func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "layout: read file").
			WithTextCode(LayoutErrorRead).
			WithMetadata(map[string]any{"path": path})
	}
	return Parse(raw)
}

// Parse decodes and validates a layout document.
func Parse(raw []byte) (*File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "layout: decode yaml").
			WithTextCode(LayoutErrorInvalid)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *File) Validate() error {
	if f == nil {
		return goerrors.NewValidation("layout is required",
			goerrors.FieldError{Field: "layout", Message: "required"},
		).WithTextCode(LayoutErrorInvalid)
	}
	var fields []goerrors.FieldError
	if strings.TrimSpace(f.Name) == "" {
		fields = append(fields, goerrors.FieldError{Field: "name", Message: "required"})
	}
	if f.Identity != "" {
		if _, err := uuid.Parse(f.Identity); err != nil {
			fields = append(fields, goerrors.FieldError{Field: "identity", Message: "must be a uuid", Value: f.Identity})
		}
	}
	if f.StackLimit < 0 {
		fields = append(fields, goerrors.FieldError{Field: "stack_limit", Message: "must be >= 0", Value: f.StackLimit})
	}
	for i, child := range f.Children {
		fields = child.validate(fmt.Sprintf("children[%d]", i), fields)
	}
	if len(fields) == 0 {
		return nil
	}
	return goerrors.NewValidation("invalid inventory layout", fields...).
		WithTextCode(LayoutErrorInvalid).
		WithSeverity(goerrors.SeverityError)
}

func (n Node) validate(path string, fields []goerrors.FieldError) []goerrors.FieldError {
	kinds := 0
	if n.Slots != 0 {
		kinds++
	}
	if n.Grid != nil {
		kinds++
	}
	if len(n.Children) > 0 {
		kinds++
	}
	switch {
	case kinds == 0:
		fields = append(fields, goerrors.FieldError{Field: path, Message: "one of slots, grid or children is required"})
	case kinds > 1:
		fields = append(fields, goerrors.FieldError{Field: path, Message: "slots, grid and children are exclusive"})
	}
	if n.Slots < 0 {
		fields = append(fields, goerrors.FieldError{Field: path + ".slots", Message: "must be >= 0", Value: n.Slots})
	}
	if n.Grid != nil && (n.Grid.Width < 0 || n.Grid.Height < 0) {
		fields = append(fields, goerrors.FieldError{Field: path + ".grid", Message: "dimensions must be >= 0", Value: *n.Grid})
	}
	if len(n.Children) > 0 && (len(n.Accepts) > 0 || n.Output) {
		fields = append(fields, goerrors.FieldError{Field: path, Message: "filters apply to slots and grids only"})
	}
	if len(n.Accepts) > 0 && n.Output {
		fields = append(fields, goerrors.FieldError{Field: path, Message: "accepts and output are exclusive"})
	}
	for i, child := range n.Children {
		fields = child.validate(fmt.Sprintf("%s.children[%d]", path, i), fields)
	}
	return fields
}

// Capacity is the flat slot count the layout builds to.
func (f *File) Capacity() int {
	total := 0
	for _, child := range f.Children {
		total += child.capacity()
	}
	return total
}

func (n Node) capacity() int {
	switch {
	case n.Grid != nil:
		return n.Grid.Width * n.Grid.Height
	case len(n.Children) > 0:
		total := 0
		for _, child := range n.Children {
			total += child.capacity()
		}
		return total
	default:
		return n.Slots
	}
}

func (n Node) filter() core.SlotFilter {
	switch {
	case n.Output:
		return core.RejectAll
	case len(n.Accepts) > 0:
		return core.AcceptTypes(n.Accepts...)
	default:
		return nil
	}
}
