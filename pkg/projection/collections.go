package projection

import (
	"errors"
	"slices"

	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// ErrNilNode is returned when a nil node is appended to a collection.
var ErrNilNode = errors.New("projection: nil node")

// collection builds the family for an ordered list of nodes. The list itself
// is a path-list cell at the collection path; each item lives at its own path
// in the item family.
func collection[N gqlast.Node](p *Projection, name string, item func(path string) *cell.Atom[N]) *cell.Family[[]N] {
	return cell.NewFamily(name, func(path string) *cell.Atom[[]N] {
		return cell.Writable(
			func(r cell.Reader) ([]N, error) {
				paths, err := cell.Get(r, p.paths.Get(path))
				if err != nil {
					return nil, err
				}
				var out []N
				for _, ip := range paths {
					n, err := cell.Get(r, item(ip))
					if err != nil {
						return nil, err
					}
					if gqlast.IsNil(n) {
						continue
					}
					out = append(out, n)
				}
				return out, nil
			},
			func(_ cell.Reader, w cell.Writer, ns []N) error {
				ns = slices.DeleteFunc(slices.Clone(ns), func(n N) bool { return gqlast.IsNil(n) })
				paths := resolvePaths(path, ns, nil)
				if err := cell.Set(w, p.paths.Get(path), paths); err != nil {
					return err
				}
				for i, n := range ns {
					if err := cell.Set(w, item(paths[i]), n); err != nil {
						return err
					}
				}
				return nil
			},
		)
	})
}

// resolvePaths assigns every node its declared path, or the first free
// positional path at or above its index. taken reports paths that must not
// be synthesized even though no node in ns declares them.
func resolvePaths[N gqlast.Node](collectionPath string, ns []N, taken func(string) bool) []string {
	used := make(map[string]bool, len(ns))
	for _, n := range ns {
		if declared := n.Meta().Path; declared != "" {
			used[declared] = true
		}
	}

	paths := make([]string, len(ns))
	for i, n := range ns {
		if declared := n.Meta().Path; declared != "" {
			paths[i] = declared
			continue
		}
		for j := i; ; j++ {
			candidate := gqlast.Item(collectionPath, j)
			if used[candidate] || (taken != nil && taken(candidate)) {
				continue
			}
			paths[i] = candidate
			used[candidate] = true
			break
		}
	}
	return paths
}

func (p *Projection) initCollections() {
	p.definitionList = collection(p, "definitions", p.definition.Get)
	p.selectionList = collection(p, "selections", p.selection.Get)
	p.argumentList = collection(p, "arguments", p.arguments.Get)
	p.directiveList = collection(p, "directives", p.directives.Get)
	p.variableDefinitionList = collection(p, "variableDefinitions", p.variableDefinitions.Get)
	p.valueList = collection(p, "values", p.value.Get)
	p.objectFieldList = collection(p, "objectFields", p.objectFields.Get)
}

// appendItem adds n to the end of the collection at collectionPath and
// returns the path it was written to. Appending a node whose declared path is
// already listed rewrites it in place.
func appendItem[N gqlast.Node](p *Projection, item func(string) *cell.Atom[N], collectionPath string, n N) (string, error) {
	var path string
	err := p.store.Batch(func(w cell.Writer) error {
		var err error
		path, err = appendIn(w, p, item, collectionPath, n)
		return err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// appendIn is appendItem inside an already running batch.
func appendIn[N gqlast.Node](w cell.Writer, p *Projection, item func(string) *cell.Atom[N], collectionPath string, n N) (string, error) {
	if gqlast.IsNil(n) {
		return "", ErrNilNode
	}

	list := p.paths.Get(collectionPath)
	paths, err := cell.Get(w, list)
	if err != nil {
		return "", err
	}

	path := n.Meta().Path
	if path == "" {
		listed := make(map[string]bool, len(paths))
		for _, lp := range paths {
			listed[lp] = true
		}
		// Unlisted paths that still hold a selected node belong to removed
		// items and are left alone.
		live := func(candidate string) bool {
			if listed[candidate] {
				return true
			}
			m, _ := cell.Get(w, p.meta.Get(candidate))
			return m.IsSelected
		}
		for j := len(paths); ; j++ {
			if candidate := gqlast.Item(collectionPath, j); !live(candidate) {
				path = candidate
				break
			}
		}
	}

	if !slices.Contains(paths, path) {
		if err := cell.Set(w, list, append(slices.Clone(paths), path)); err != nil {
			return "", err
		}
	}
	if err := cell.Set(w, item(path), n); err != nil {
		return "", err
	}
	return path, nil
}

// AppendDefinition appends def to the definitions collection at collectionPath.
func (p *Projection) AppendDefinition(collectionPath string, def gqlast.Definition) (string, error) {
	return appendItem(p, p.definition.Get, collectionPath, def)
}

// AppendSelection appends sel to the selections collection at collectionPath.
func (p *Projection) AppendSelection(collectionPath string, sel gqlast.Selection) (string, error) {
	return appendItem(p, p.selection.Get, collectionPath, sel)
}

// AppendSelectionIn is AppendSelection inside the batch that owns w.
func (p *Projection) AppendSelectionIn(w cell.Writer, collectionPath string, sel gqlast.Selection) (string, error) {
	return appendIn(w, p, p.selection.Get, collectionPath, sel)
}

func (p *Projection) AppendArgument(collectionPath string, arg *gqlast.Argument) (string, error) {
	return appendItem(p, p.arguments.Get, collectionPath, arg)
}

// AppendArgumentIn is AppendArgument inside the batch that owns w.
func (p *Projection) AppendArgumentIn(w cell.Writer, collectionPath string, arg *gqlast.Argument) (string, error) {
	return appendIn(w, p, p.arguments.Get, collectionPath, arg)
}

func (p *Projection) AppendDirective(collectionPath string, dir *gqlast.Directive) (string, error) {
	return appendItem(p, p.directives.Get, collectionPath, dir)
}

func (p *Projection) AppendVariableDefinition(collectionPath string, vd *gqlast.VariableDefinition) (string, error) {
	return appendItem(p, p.variableDefinitions.Get, collectionPath, vd)
}

func (p *Projection) AppendListValue(collectionPath string, v gqlast.Value) (string, error) {
	return appendItem(p, p.value.Get, collectionPath, v)
}

func (p *Projection) AppendObjectField(collectionPath string, f *gqlast.ObjectField) (string, error) {
	return appendItem(p, p.objectFields.Get, collectionPath, f)
}

// Remove drops itemPath from the collection at collectionPath. The item's
// cells are left in place and can still be read at itemPath. It reports
// whether the path was listed.
func (p *Projection) Remove(collectionPath, itemPath string) (bool, error) {
	var removed bool
	err := p.store.Batch(func(w cell.Writer) error {
		list := p.paths.Get(collectionPath)
		paths, err := cell.Get(w, list)
		if err != nil {
			return err
		}
		kept := slices.DeleteFunc(slices.Clone(paths), func(lp string) bool { return lp == itemPath })
		if len(kept) == len(paths) {
			return nil
		}
		removed = true
		return cell.Set(w, list, kept)
	})
	return removed, err
}
