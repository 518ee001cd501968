package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// NodeInfo describes one node in the store.
type NodeInfo struct {
	Path       string      `json:"path"`
	ParentPath string      `json:"parentPath"`
	Kind       gqlast.Kind `json:"kind"`
	IsSelected bool        `json:"isSelected"`
	// Name is the node's name or value text where it has one.
	Name  string `json:"name,omitempty"`
	Depth int    `json:"depth"`
}

// Nodes lists every node written under the session root, including
// unselected and removed ones.
func (s *Session) Nodes() ([]NodeInfo, error) {
	metas, err := s.proj.Nodes(s.root)
	if err != nil {
		return nil, err
	}
	out := make([]NodeInfo, 0, len(metas))
	for _, m := range metas {
		name, err := s.nameOf(m)
		if err != nil {
			return nil, err
		}
		out = append(out, NodeInfo{
			Path:       m.Path,
			ParentPath: m.ParentPath,
			Kind:       m.Kind,
			IsSelected: m.IsSelected,
			Name:       name,
			Depth:      gqlast.Depth(m.Path) - gqlast.Depth(s.root),
		})
	}
	return out, nil
}

func (s *Session) nameOf(m gqlast.Metadata) (string, error) {
	var leaf string
	switch m.Kind {
	case gqlast.KindName, gqlast.KindIntValue, gqlast.KindFloatValue, gqlast.KindStringValue, gqlast.KindEnumValue:
		leaf = gqlast.Join(m.Path, gqlast.KeyValue)
	case gqlast.KindOperationDefinition, gqlast.KindField, gqlast.KindArgument, gqlast.KindFragmentSpread,
		gqlast.KindFragmentDefinition, gqlast.KindObjectField, gqlast.KindDirective, gqlast.KindNamedType,
		gqlast.KindVariable:
		leaf = gqlast.Join(gqlast.Join(m.Path, gqlast.KeyName), gqlast.KeyValue)
	default:
		return "", nil
	}
	return cell.Get(s.store, s.proj.StringLeaf(leaf))
}

// Match returns the nodes whose path matches pattern. Patterns use the dot
// separator, e.g. "Foo.**.selections.*"; "*" matches one segment and "**" any
// number of them.
func (s *Session) Match(pattern string) ([]NodeInfo, error) {
	glob := toSlashes(pattern)
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("match %q: %w", pattern, doublestar.ErrBadPattern)
	}

	nodes, err := s.Nodes()
	if err != nil {
		return nil, err
	}
	var out []NodeInfo
	for _, n := range nodes {
		ok, err := doublestar.Match(glob, toSlashes(n.Path))
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func toSlashes(path string) string {
	return strings.ReplaceAll(path, gqlast.Separator, "/")
}

// Filter returns the nodes for which the boolean expression holds. The
// expression sees path, parentPath, kind, isSelected, name and depth, e.g.
// `kind == "Field" && isSelected && depth > 3`.
func (s *Session) Filter(expression string) ([]NodeInfo, error) {
	program, err := s.compileExpr(expression, nodeEnv(NodeInfo{}))
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}

	nodes, err := s.Nodes()
	if err != nil {
		return nil, err
	}

	var out []NodeInfo
	for _, n := range nodes {
		result, err := expr.Run(program, nodeEnv(n))
		if err != nil {
			return nil, fmt.Errorf("eval %q: %w", expression, err)
		}
		if ok, _ := result.(bool); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func nodeEnv(n NodeInfo) map[string]interface{} {
	return map[string]interface{}{
		"path":       n.Path,
		"parentPath": n.ParentPath,
		"kind":       string(n.Kind),
		"isSelected": n.IsSelected,
		"name":       n.Name,
		"depth":      n.Depth,
	}
}

func (s *Session) compileExpr(expression string, env map[string]interface{}) (*vm.Program, error) {
	s.programMu.RLock()
	if program, ok := s.programCache[expression]; ok {
		s.programMu.RUnlock()
		return program, nil
	}
	s.programMu.RUnlock()

	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, err
	}

	s.programMu.Lock()
	s.programCache[expression] = program
	s.programMu.Unlock()
	return program, nil
}

// SortByDepth orders nodes shallowest first, then by path.
func SortByDepth(nodes []NodeInfo) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Depth != nodes[j].Depth {
			return nodes[i].Depth < nodes[j].Depth
		}
		return nodes[i].Path < nodes[j].Path
	})
}
