package projection

import (
	"slices"
	"strings"

	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// pruner is the type-erased view of a family that Compact needs.
type pruner interface {
	Keys() []string
	forget(s *cell.Store, key string) bool
}

type familyPruner[T any] struct{ f *cell.Family[T] }

func (fp familyPruner[T]) Keys() []string { return fp.f.Keys() }

func (fp familyPruner[T]) forget(s *cell.Store, key string) bool {
	a, ok := fp.f.Lookup(key)
	if !ok {
		return false
	}
	if s.Has(a) && !s.Forget(a) {
		return false
	}
	fp.f.Delete(key)
	return true
}

func prune[T any](f *cell.Family[T]) pruner { return familyPruner[T]{f} }

// pruners lists families in forget order: cells that read others come before
// the cells they read.
func (p *Projection) pruners() []pruner {
	return []pruner{
		prune(p.node), prune(p.definition), prune(p.selection), prune(p.value), prune(p.typ),
		prune(p.definitionList), prune(p.selectionList), prune(p.argumentList), prune(p.directiveList),
		prune(p.variableDefinitionList), prune(p.valueList), prune(p.objectFieldList),
		prune(p.documents), prune(p.operations), prune(p.fragmentDefinitions), prune(p.variableDefinitions),
		prune(p.selectionSets), prune(p.fields), prune(p.fragmentSpreads), prune(p.inlineFragments),
		prune(p.arguments), prune(p.directives), prune(p.objectFields),
		prune(p.listValues), prune(p.objectValues), prune(p.variables),
		prune(p.intValues), prune(p.floatValues), prune(p.stringValues), prune(p.booleanValues),
		prune(p.nullValues), prune(p.enumValues),
		prune(p.nonNullTypes), prune(p.listTypes), prune(p.namedTypes), prune(p.names),
		prune(p.meta), prune(p.strs), prune(p.bools), prune(p.paths),
	}
}

// Compact drops the cells of items that were removed from a collection below
// root, together with everything beneath them. Listed items are kept whether
// selected or not, so they can still be re-selected. Cells that are
// subscribed to survive. It returns the number of cells dropped.
func (p *Projection) Compact(root string) (int, error) {
	orphans, err := p.orphans(root)
	if err != nil || len(orphans) == 0 {
		return 0, err
	}

	families := p.pruners()
	var stale []string
	for _, fam := range families {
		for _, key := range fam.Keys() {
			if underAny(key, orphans) {
				stale = append(stale, key)
			}
		}
	}
	slices.SortFunc(stale, func(a, b string) int {
		if d := gqlast.Depth(a) - gqlast.Depth(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	stale = slices.Compact(stale)

	dropped := 0
	for progress := true; progress; {
		progress = false
		for _, key := range stale {
			for _, fam := range families {
				if fam.forget(p.store, key) {
					dropped++
					progress = true
				}
			}
		}
	}
	return dropped, nil
}

// orphans returns the item paths below root that sit at a positional slot of
// a collection but are no longer listed in it.
func (p *Projection) orphans(root string) ([]string, error) {
	lists := make(map[string][]string)
	for _, key := range p.paths.Keys() {
		if !gqlast.HasPrefix(key, root) {
			continue
		}
		paths, err := cell.Get(p.store, p.paths.Get(key))
		if err != nil {
			return nil, err
		}
		lists[key] = paths
	}

	seen := make(map[string]bool)
	var out []string
	for _, key := range p.meta.Keys() {
		parent := gqlast.Parent(key)
		listed, ok := lists[parent]
		if !ok || !isIndex(gqlast.Base(key)) || slices.Contains(listed, key) || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out, nil
}

func underAny(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if gqlast.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func isIndex(segment string) bool {
	return segment != "" && strings.Trim(segment, "0123456789") == ""
}
