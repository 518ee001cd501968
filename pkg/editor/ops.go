package editor

import (
	"fmt"

	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// NotFoundError is returned when an edit targets a path that holds no node of
// the expected kind.
type NotFoundError struct {
	Path string
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s at %q", e.What, e.Path)
}

// AddField appends a leaf field named name to the selection set at
// selectionSetPath and returns the new field's path.
func (s *Session) AddField(selectionSetPath, name string) (string, error) {
	return s.AddSelection(selectionSetPath, gqlast.NewField(name))
}

// AddFragmentSpread appends ...name to the selection set at selectionSetPath.
func (s *Session) AddFragmentSpread(selectionSetPath, name string) (string, error) {
	return s.AddSelection(selectionSetPath, &gqlast.FragmentSpread{Name: gqlast.NewName(name)})
}

// AddSelection appends sel to the selection set at selectionSetPath. A leaf
// field gets a selection set on its first child; a previously unselected set
// is selected again with its old children.
func (s *Session) AddSelection(selectionSetPath string, sel gqlast.Selection) (string, error) {
	var path string
	err := s.store.Batch(func(w cell.Writer) error {
		if err := s.ensureSelectionSet(w, selectionSetPath); err != nil {
			return err
		}
		var err error
		path, err = s.proj.AppendSelectionIn(w, gqlast.Join(selectionSetPath, gqlast.KeySelections), sel)
		if err != nil {
			return fmt.Errorf("add selection: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("selection added", "path", path, "kind", sel.Kind())
	return path, nil
}

func (s *Session) ensureSelectionSet(w cell.Writer, path string) error {
	m, err := cell.Get(w, s.proj.Metadata(path))
	if err != nil {
		return err
	}
	switch {
	case m.Kind == gqlast.KindSelectionSet && m.IsSelected:
		return nil
	case m.Kind == gqlast.KindSelectionSet:
		return s.proj.SetSelectedIn(w, path, true)
	case gqlast.Base(path) != gqlast.KeySelectionSet:
		return &NotFoundError{Path: path, What: "selection set"}
	}

	owner, err := cell.Get(w, s.proj.Metadata(gqlast.Parent(path)))
	if err != nil {
		return err
	}
	if !owner.IsSelected {
		return &NotFoundError{Path: gqlast.Parent(path), What: "node"}
	}
	return cell.Set(w, s.proj.SelectionSet(path), &gqlast.SelectionSet{})
}

// RemoveSelection drops the selection at path from its selection set. The
// node's cells are kept until Compact.
func (s *Session) RemoveSelection(path string) error {
	list := gqlast.Parent(path)
	if gqlast.Base(list) != gqlast.KeySelections {
		return &NotFoundError{Path: path, What: "selection"}
	}
	removed, err := s.proj.Remove(list, path)
	if err != nil {
		return fmt.Errorf("remove selection: %w", err)
	}
	if !removed {
		return &NotFoundError{Path: path, What: "selection"}
	}
	s.logger.Debug("selection removed", "path", path)
	return nil
}

// lists maps the keys of node lists to what Remove calls their items.
var lists = map[string]string{
	gqlast.KeyDefinitions:         "definition",
	gqlast.KeySelections:          "selection",
	gqlast.KeyArguments:           "argument",
	gqlast.KeyDirectives:          "directive",
	gqlast.KeyVariableDefinitions: "variable definition",
	gqlast.KeyValues:              "list value",
	gqlast.KeyFields:              "object field",
}

// Remove drops the node at path from whichever list holds it: a definition,
// selection, argument, directive, variable definition, list item or object
// field.
func (s *Session) Remove(path string) error {
	list := gqlast.Parent(path)
	what, ok := lists[gqlast.Base(list)]
	if !ok {
		return &NotFoundError{Path: path, What: "list item"}
	}
	removed, err := s.proj.Remove(list, path)
	if err != nil {
		return fmt.Errorf("remove %s: %w", what, err)
	}
	if !removed {
		return &NotFoundError{Path: path, What: what}
	}
	s.logger.Debug("node removed", "path", path, "list", list)
	return nil
}

// AddArgument sets argument name on the field or directive at ownerPath,
// replacing the value of an existing argument with the same name. It returns
// the argument's path.
func (s *Session) AddArgument(ownerPath, name string, value gqlast.Value) (string, error) {
	if err := s.requireKind(ownerPath, gqlast.KindField, gqlast.KindDirective); err != nil {
		return "", err
	}

	list := gqlast.Join(ownerPath, gqlast.KeyArguments)
	var path string
	var replaced bool
	err := s.store.Batch(func(w cell.Writer) error {
		existing, _, err := s.findArgument(w, list, name)
		if err != nil {
			return err
		}
		if existing == "" {
			path, err = s.proj.AppendArgumentIn(w, list, &gqlast.Argument{Name: gqlast.NewName(name), Value: value})
			if err != nil {
				return fmt.Errorf("add argument: %w", err)
			}
			return nil
		}
		// A removed argument of the same name is brought back with the new
		// value rather than listed twice.
		path, replaced = existing, true
		if err := cell.Set(w, s.proj.Value(gqlast.Join(path, gqlast.KeyValue)), value); err != nil {
			return fmt.Errorf("set argument: %w", err)
		}
		return s.proj.SetSelectedIn(w, path, true)
	})
	if err != nil {
		return "", err
	}
	if replaced {
		s.logger.Debug("argument replaced", "path", path)
	} else {
		s.logger.Debug("argument added", "path", path)
	}
	return path, nil
}

// RemoveArgument drops argument name from the field or directive at ownerPath.
func (s *Session) RemoveArgument(ownerPath, name string) error {
	list := gqlast.Join(ownerPath, gqlast.KeyArguments)
	path, selected, err := s.findArgument(s.store, list, name)
	if err != nil {
		return err
	}
	if !selected {
		return &NotFoundError{Path: gqlast.Join(list, name), What: "argument"}
	}
	if _, err := s.proj.Remove(list, path); err != nil {
		return fmt.Errorf("remove argument: %w", err)
	}
	s.logger.Debug("argument removed", "path", path)
	return nil
}

// findArgument returns the path of the argument called name in list, and
// whether it is selected. A selected match wins; otherwise the first unselected
// one is returned.
func (s *Session) findArgument(r cell.Reader, list, name string) (string, bool, error) {
	paths, err := cell.Get(r, s.proj.Paths(list))
	if err != nil {
		return "", false, err
	}
	var removed string
	for _, path := range paths {
		m, err := cell.Get(r, s.proj.Metadata(path))
		if err != nil {
			return "", false, err
		}
		if m.Kind != gqlast.KindArgument {
			continue
		}
		n, err := cell.Get(r, s.proj.Name(gqlast.Join(path, gqlast.KeyName)))
		if err != nil {
			return "", false, err
		}
		if n == nil || n.Value != name {
			continue
		}
		if m.IsSelected {
			return path, true, nil
		}
		if removed == "" {
			removed = path
		}
	}
	return removed, false, nil
}

func (s *Session) requireKind(path string, kinds ...gqlast.Kind) error {
	m, err := cell.Get(s.store, s.proj.Metadata(path))
	if err != nil {
		return err
	}
	if m.IsSelected {
		for _, k := range kinds {
			if m.Kind == k {
				return nil
			}
		}
	}
	return &NotFoundError{Path: path, What: string(kinds[0])}
}
