package gqlast

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// FromQueryDocument converts a gqlparser document. Operations and fragments
// are interleaved back into source order when positions are known. The
// result carries no metadata; see Stamp.
func FromQueryDocument(q *ast.QueryDocument) (*Document, error) {
	if q == nil {
		return nil, nil
	}

	type positioned struct {
		def   Definition
		start int
		seq   int
	}
	var defs []positioned

	for _, op := range q.Operations {
		def, err := fromOperation(op)
		if err != nil {
			return nil, err
		}
		defs = append(defs, positioned{def: def, start: startOf(op.Position), seq: len(defs)})
	}
	for _, frag := range q.Fragments {
		def, err := fromFragmentDefinition(frag)
		if err != nil {
			return nil, err
		}
		defs = append(defs, positioned{def: def, start: startOf(frag.Position), seq: len(defs)})
	}

	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].start < 0 || defs[j].start < 0 {
			return defs[i].seq < defs[j].seq
		}
		return defs[i].start < defs[j].start
	})

	doc := &Document{}
	for _, d := range defs {
		doc.Definitions = append(doc.Definitions, d.def)
	}
	return doc, nil
}

func startOf(p *ast.Position) int {
	if p == nil {
		return -1
	}
	return p.Start
}

func optionalName(s string) *Name {
	if s == "" {
		return nil
	}
	return NewName(s)
}

func fromOperation(op *ast.OperationDefinition) (*OperationDefinition, error) {
	out := &OperationDefinition{
		Operation: Operation(op.Operation),
		Name:      optionalName(op.Name),
	}
	if out.Operation == "" {
		out.Operation = OperationQuery
	}

	for _, v := range op.VariableDefinitions {
		vd, err := fromVariableDefinition(v)
		if err != nil {
			return nil, err
		}
		out.VariableDefinitions = append(out.VariableDefinitions, vd)
	}

	var err error
	if out.Directives, err = fromDirectives(op.Directives); err != nil {
		return nil, err
	}
	if out.SelectionSet, err = fromSelectionSet(op.SelectionSet); err != nil {
		return nil, err
	}
	return out, nil
}

func fromFragmentDefinition(frag *ast.FragmentDefinition) (*FragmentDefinition, error) {
	out := &FragmentDefinition{
		Name:          NewName(frag.Name),
		TypeCondition: &NamedType{Name: NewName(frag.TypeCondition)},
	}
	var err error
	if out.Directives, err = fromDirectives(frag.Directives); err != nil {
		return nil, err
	}
	if out.SelectionSet, err = fromSelectionSet(frag.SelectionSet); err != nil {
		return nil, err
	}
	return out, nil
}

func fromVariableDefinition(v *ast.VariableDefinition) (*VariableDefinition, error) {
	out := &VariableDefinition{
		Variable: &Variable{Name: NewName(v.Variable)},
		Type:     fromType(v.Type),
	}
	if v.DefaultValue != nil {
		dv, err := fromValue(v.DefaultValue)
		if err != nil {
			return nil, err
		}
		out.DefaultValue = dv
	}
	var err error
	if out.Directives, err = fromDirectives(v.Directives); err != nil {
		return nil, err
	}
	return out, nil
}

func fromType(t *ast.Type) Type {
	if t == nil {
		return nil
	}
	var inner Type
	if t.Elem != nil {
		inner = &ListType{Type: fromType(t.Elem)}
	} else {
		inner = &NamedType{Name: NewName(t.NamedType)}
	}
	if t.NonNull {
		return &NonNullType{Type: inner}
	}
	return inner
}

func fromSelectionSet(set ast.SelectionSet) (*SelectionSet, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := &SelectionSet{}
	for _, sel := range set {
		s, err := fromSelection(sel)
		if err != nil {
			return nil, err
		}
		out.Selections = append(out.Selections, s)
	}
	return out, nil
}

func fromSelection(sel ast.Selection) (Selection, error) {
	var err error
	switch sel := sel.(type) {
	case *ast.Field:
		f := &Field{Name: NewName(sel.Name)}
		if sel.Alias != "" && sel.Alias != sel.Name {
			f.Alias = NewName(sel.Alias)
		}
		if f.Arguments, err = fromArguments(sel.Arguments); err != nil {
			return nil, err
		}
		if f.Directives, err = fromDirectives(sel.Directives); err != nil {
			return nil, err
		}
		if f.SelectionSet, err = fromSelectionSet(sel.SelectionSet); err != nil {
			return nil, err
		}
		return f, nil
	case *ast.FragmentSpread:
		fs := &FragmentSpread{Name: NewName(sel.Name)}
		if fs.Directives, err = fromDirectives(sel.Directives); err != nil {
			return nil, err
		}
		return fs, nil
	case *ast.InlineFragment:
		inl := &InlineFragment{}
		if sel.TypeCondition != "" {
			inl.TypeCondition = &NamedType{Name: NewName(sel.TypeCondition)}
		}
		if inl.Directives, err = fromDirectives(sel.Directives); err != nil {
			return nil, err
		}
		if inl.SelectionSet, err = fromSelectionSet(sel.SelectionSet); err != nil {
			return nil, err
		}
		return inl, nil
	default:
		return nil, &UnknownKindError{Kind: Kind(fmt.Sprintf("%T", sel)), Category: "selection"}
	}
}

func fromArguments(args ast.ArgumentList) ([]*Argument, error) {
	var out []*Argument
	for _, a := range args {
		v, err := fromValue(a.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, &Argument{Name: NewName(a.Name), Value: v})
	}
	return out, nil
}

func fromDirectives(dirs ast.DirectiveList) ([]*Directive, error) {
	var out []*Directive
	for _, d := range dirs {
		args, err := fromArguments(d.Arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, &Directive{Name: NewName(d.Name), Arguments: args})
	}
	return out, nil
}

func fromValue(v *ast.Value) (Value, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case ast.Variable:
		return &Variable{Name: NewName(v.Raw)}, nil
	case ast.IntValue:
		return &IntValue{Value: v.Raw}, nil
	case ast.FloatValue:
		return &FloatValue{Value: v.Raw}, nil
	case ast.StringValue:
		return &StringValue{Value: v.Raw}, nil
	case ast.BlockValue:
		return &StringValue{Value: v.Raw, Block: true}, nil
	case ast.BooleanValue:
		return &BooleanValue{Value: v.Raw == "true"}, nil
	case ast.NullValue:
		return &NullValue{}, nil
	case ast.EnumValue:
		return &EnumValue{Value: v.Raw}, nil
	case ast.ListValue:
		list := &ListValue{}
		for _, child := range v.Children {
			item, err := fromValue(child.Value)
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, item)
		}
		return list, nil
	case ast.ObjectValue:
		obj := &ObjectValue{}
		for _, child := range v.Children {
			item, err := fromValue(child.Value)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, &ObjectField{Name: NewName(child.Name), Value: item})
		}
		return obj, nil
	default:
		return nil, &UnknownKindError{Kind: Kind(fmt.Sprintf("ValueKind(%d)", v.Kind)), Category: "value"}
	}
}

// ToQueryDocument converts back to a gqlparser document for printing.
// Unselected nodes are dropped.
func ToQueryDocument(doc *Document) (*ast.QueryDocument, error) {
	q := &ast.QueryDocument{}
	if doc == nil {
		return q, nil
	}
	for _, def := range doc.Definitions {
		if skip(def) {
			continue
		}
		switch def := def.(type) {
		case *OperationDefinition:
			op, err := toOperation(def)
			if err != nil {
				return nil, err
			}
			q.Operations = append(q.Operations, op)
		case *FragmentDefinition:
			frag, err := toFragmentDefinition(def)
			if err != nil {
				return nil, err
			}
			q.Fragments = append(q.Fragments, frag)
		default:
			return nil, &UnknownKindError{Path: def.Meta().Path, Kind: def.Kind(), Category: "definition"}
		}
	}
	return q, nil
}

// skip reports whether n should be left out of printed output.
func skip(n Node) bool {
	if IsNil(n) {
		return true
	}
	m := n.Meta()
	return m.Path != "" && !m.IsSelected
}

func nameOf(n *Name) string {
	if skip(n) {
		return ""
	}
	return n.Value
}

// requiredName is nameOf for names the grammar cannot do without.
func requiredName(owner Node, n *Name) (string, error) {
	if skip(n) || n.Value == "" {
		return "", &IncompleteNodeError{Path: owner.Meta().Path, Kind: owner.Kind(), Missing: KeyName}
	}
	return n.Value, nil
}

func toOperation(def *OperationDefinition) (*ast.OperationDefinition, error) {
	op := &ast.OperationDefinition{
		Operation: ast.Operation(def.Operation),
		Name:      nameOf(def.Name),
	}
	if op.Operation == "" {
		op.Operation = ast.Query
	}
	for _, v := range def.VariableDefinitions {
		if skip(v) {
			continue
		}
		vd, err := toVariableDefinition(v)
		if err != nil {
			return nil, err
		}
		op.VariableDefinitions = append(op.VariableDefinitions, vd)
	}
	var err error
	if op.Directives, err = toDirectives(def.Directives); err != nil {
		return nil, err
	}
	if op.SelectionSet, err = toSelectionSet(def.SelectionSet); err != nil {
		return nil, err
	}
	return op, nil
}

func toFragmentDefinition(def *FragmentDefinition) (*ast.FragmentDefinition, error) {
	name, err := requiredName(def, def.Name)
	if err != nil {
		return nil, err
	}
	frag := &ast.FragmentDefinition{Name: name}
	if skip(def.TypeCondition) {
		return nil, &IncompleteNodeError{Path: def.Metadata.Path, Kind: def.Kind(), Missing: KeyTypeCondition}
	}
	if frag.TypeCondition, err = requiredName(def.TypeCondition, def.TypeCondition.Name); err != nil {
		return nil, err
	}
	if frag.Directives, err = toDirectives(def.Directives); err != nil {
		return nil, err
	}
	if frag.SelectionSet, err = toSelectionSet(def.SelectionSet); err != nil {
		return nil, err
	}
	return frag, nil
}

func toVariableDefinition(v *VariableDefinition) (*ast.VariableDefinition, error) {
	out := &ast.VariableDefinition{}
	if skip(v.Variable) {
		return nil, &IncompleteNodeError{Path: v.Metadata.Path, Kind: v.Kind(), Missing: KeyVariable}
	}
	name, err := requiredName(v.Variable, v.Variable.Name)
	if err != nil {
		return nil, err
	}
	out.Variable = name
	t, err := toType(v.Type)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &IncompleteNodeError{Path: v.Metadata.Path, Kind: v.Kind(), Missing: KeyType}
	}
	out.Type = t
	if !skip(v.DefaultValue) {
		if out.DefaultValue, err = toValue(v.DefaultValue); err != nil {
			return nil, err
		}
	}
	if out.Directives, err = toDirectives(v.Directives); err != nil {
		return nil, err
	}
	return out, nil
}

func toType(t Type) (*ast.Type, error) {
	if skip(t) {
		return nil, nil
	}
	switch t := t.(type) {
	case *NamedType:
		name, err := requiredName(t, t.Name)
		if err != nil {
			return nil, err
		}
		return &ast.Type{NamedType: name}, nil
	case *ListType:
		elem, err := toType(t.Type)
		if err != nil {
			return nil, err
		}
		return &ast.Type{Elem: elem}, nil
	case *NonNullType:
		inner, err := toType(t.Type)
		if err != nil || inner == nil {
			return inner, err
		}
		inner.NonNull = true
		return inner, nil
	default:
		return nil, &UnknownKindError{Path: t.Meta().Path, Kind: t.Kind(), Category: "type"}
	}
}

func toSelectionSet(set *SelectionSet) (ast.SelectionSet, error) {
	if skip(set) {
		return nil, nil
	}
	var out ast.SelectionSet
	for _, sel := range set.Selections {
		if skip(sel) {
			continue
		}
		s, err := toSelection(sel)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func toSelection(sel Selection) (ast.Selection, error) {
	var err error
	switch sel := sel.(type) {
	case *Field:
		name, err := requiredName(sel, sel.Name)
		if err != nil {
			return nil, err
		}
		f := &ast.Field{Name: name, Alias: name}
		if alias := nameOf(sel.Alias); alias != "" {
			f.Alias = alias
		}
		if f.Arguments, err = toArguments(sel.Arguments); err != nil {
			return nil, err
		}
		if f.Directives, err = toDirectives(sel.Directives); err != nil {
			return nil, err
		}
		if f.SelectionSet, err = toSelectionSet(sel.SelectionSet); err != nil {
			return nil, err
		}
		return f, nil
	case *FragmentSpread:
		name, err := requiredName(sel, sel.Name)
		if err != nil {
			return nil, err
		}
		fs := &ast.FragmentSpread{Name: name}
		if fs.Directives, err = toDirectives(sel.Directives); err != nil {
			return nil, err
		}
		return fs, nil
	case *InlineFragment:
		inl := &ast.InlineFragment{}
		if !skip(sel.TypeCondition) {
			if inl.TypeCondition, err = requiredName(sel.TypeCondition, sel.TypeCondition.Name); err != nil {
				return nil, err
			}
		}
		if inl.Directives, err = toDirectives(sel.Directives); err != nil {
			return nil, err
		}
		if inl.SelectionSet, err = toSelectionSet(sel.SelectionSet); err != nil {
			return nil, err
		}
		return inl, nil
	default:
		return nil, &UnknownKindError{Path: sel.Meta().Path, Kind: sel.Kind(), Category: "selection"}
	}
}

func toArguments(args []*Argument) (ast.ArgumentList, error) {
	var out ast.ArgumentList
	for _, a := range args {
		if skip(a) || skip(a.Value) {
			continue
		}
		name, err := requiredName(a, a.Name)
		if err != nil {
			return nil, err
		}
		v, err := toValue(a.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Argument{Name: name, Value: v})
	}
	return out, nil
}

func toDirectives(dirs []*Directive) (ast.DirectiveList, error) {
	var out ast.DirectiveList
	for _, d := range dirs {
		if skip(d) {
			continue
		}
		name, err := requiredName(d, d.Name)
		if err != nil {
			return nil, err
		}
		args, err := toArguments(d.Arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Directive{Name: name, Arguments: args})
	}
	return out, nil
}

func toValue(v Value) (*ast.Value, error) {
	switch v := v.(type) {
	case *Variable:
		name, err := requiredName(v, v.Name)
		if err != nil {
			return nil, err
		}
		return &ast.Value{Kind: ast.Variable, Raw: name}, nil
	case *IntValue:
		return &ast.Value{Kind: ast.IntValue, Raw: v.Value}, nil
	case *FloatValue:
		return &ast.Value{Kind: ast.FloatValue, Raw: v.Value}, nil
	case *StringValue:
		if v.Block {
			return &ast.Value{Kind: ast.BlockValue, Raw: v.Value}, nil
		}
		return &ast.Value{Kind: ast.StringValue, Raw: v.Value}, nil
	case *BooleanValue:
		raw := "false"
		if v.Value {
			raw = "true"
		}
		return &ast.Value{Kind: ast.BooleanValue, Raw: raw}, nil
	case *NullValue:
		return &ast.Value{Kind: ast.NullValue, Raw: "null"}, nil
	case *EnumValue:
		return &ast.Value{Kind: ast.EnumValue, Raw: v.Value}, nil
	case *ListValue:
		out := &ast.Value{Kind: ast.ListValue}
		for _, item := range v.Values {
			if skip(item) {
				continue
			}
			child, err := toValue(item)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, &ast.ChildValue{Value: child})
		}
		return out, nil
	case *ObjectValue:
		out := &ast.Value{Kind: ast.ObjectValue}
		for _, f := range v.Fields {
			if skip(f) || skip(f.Value) {
				continue
			}
			name, err := requiredName(f, f.Name)
			if err != nil {
				return nil, err
			}
			child, err := toValue(f.Value)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, &ast.ChildValue{Name: name, Value: child})
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, &UnknownKindError{Path: v.Meta().Path, Kind: v.Kind(), Category: "value"}
	}
}
