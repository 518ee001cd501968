package projection

import (
	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// at joins a child key onto a node path.
func at(path, key string) string { return gqlast.Join(path, key) }

func (p *Projection) initNodes() {
	p.names = concrete(p, gqlast.KindName,
		func(r cell.Reader, path string) (*gqlast.Name, error) {
			v, err := cell.Get(r, p.strs.Get(at(path, gqlast.KeyValue)))
			return &gqlast.Name{Value: v}, err
		},
		func(w cell.Writer, path string, n *gqlast.Name) error {
			return cell.Set(w, p.strs.Get(at(path, gqlast.KeyValue)), n.Value)
		})

	p.documents = concrete(p, gqlast.KindDocument,
		func(r cell.Reader, path string) (*gqlast.Document, error) {
			defs, err := cell.Get(r, p.definitionList.Get(at(path, gqlast.KeyDefinitions)))
			return &gqlast.Document{Definitions: defs}, err
		},
		func(w cell.Writer, path string, n *gqlast.Document) error {
			return cell.Set(w, p.definitionList.Get(at(path, gqlast.KeyDefinitions)), n.Definitions)
		})

	p.operations = concrete(p, gqlast.KindOperationDefinition,
		func(r cell.Reader, path string) (*gqlast.OperationDefinition, error) {
			n := &gqlast.OperationDefinition{}
			op, err := cell.Get(r, p.strs.Get(at(path, gqlast.KeyOperation)))
			if err != nil {
				return nil, err
			}
			n.Operation = gqlast.Operation(op)
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.VariableDefinitions, err = cell.Get(r, p.variableDefinitionList.Get(at(path, gqlast.KeyVariableDefinitions))); err != nil {
				return nil, err
			}
			if n.Directives, err = cell.Get(r, p.directiveList.Get(at(path, gqlast.KeyDirectives))); err != nil {
				return nil, err
			}
			if n.SelectionSet, err = cell.Get(r, p.selectionSets.Get(at(path, gqlast.KeySelectionSet))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.OperationDefinition) error {
			return firstErr(
				func() error { return cell.Set(w, p.strs.Get(at(path, gqlast.KeyOperation)), string(n.Operation)) },
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error {
					return cell.Set(w, p.variableDefinitionList.Get(at(path, gqlast.KeyVariableDefinitions)), n.VariableDefinitions)
				},
				func() error { return cell.Set(w, p.directiveList.Get(at(path, gqlast.KeyDirectives)), n.Directives) },
				func() error { return cell.Set(w, p.selectionSets.Get(at(path, gqlast.KeySelectionSet)), n.SelectionSet) },
			)
		})

	p.variableDefinitions = concrete(p, gqlast.KindVariableDefinition,
		func(r cell.Reader, path string) (*gqlast.VariableDefinition, error) {
			n := &gqlast.VariableDefinition{}
			var err error
			if n.Variable, err = cell.Get(r, p.variables.Get(at(path, gqlast.KeyVariable))); err != nil {
				return nil, err
			}
			if n.Type, err = cell.Get(r, p.typ.Get(at(path, gqlast.KeyType))); err != nil {
				return nil, err
			}
			if n.DefaultValue, err = cell.Get(r, p.value.Get(at(path, gqlast.KeyDefaultValue))); err != nil {
				return nil, err
			}
			if n.Directives, err = cell.Get(r, p.directiveList.Get(at(path, gqlast.KeyDirectives))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.VariableDefinition) error {
			return firstErr(
				func() error { return cell.Set(w, p.variables.Get(at(path, gqlast.KeyVariable)), n.Variable) },
				func() error { return cell.Set(w, p.typ.Get(at(path, gqlast.KeyType)), n.Type) },
				func() error { return cell.Set(w, p.value.Get(at(path, gqlast.KeyDefaultValue)), n.DefaultValue) },
				func() error { return cell.Set(w, p.directiveList.Get(at(path, gqlast.KeyDirectives)), n.Directives) },
			)
		})

	p.variables = concrete(p, gqlast.KindVariable,
		func(r cell.Reader, path string) (*gqlast.Variable, error) {
			name, err := cell.Get(r, p.names.Get(at(path, gqlast.KeyName)))
			return &gqlast.Variable{Name: name}, err
		},
		func(w cell.Writer, path string, n *gqlast.Variable) error {
			return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name)
		})

	p.selectionSets = concrete(p, gqlast.KindSelectionSet,
		func(r cell.Reader, path string) (*gqlast.SelectionSet, error) {
			sels, err := cell.Get(r, p.selectionList.Get(at(path, gqlast.KeySelections)))
			return &gqlast.SelectionSet{Selections: sels}, err
		},
		func(w cell.Writer, path string, n *gqlast.SelectionSet) error {
			return cell.Set(w, p.selectionList.Get(at(path, gqlast.KeySelections)), n.Selections)
		})

	p.fields = concrete(p, gqlast.KindField,
		func(r cell.Reader, path string) (*gqlast.Field, error) {
			n := &gqlast.Field{}
			var err error
			if n.Alias, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyAlias))); err != nil {
				return nil, err
			}
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.Arguments, err = cell.Get(r, p.argumentList.Get(at(path, gqlast.KeyArguments))); err != nil {
				return nil, err
			}
			if n.Directives, err = cell.Get(r, p.directiveList.Get(at(path, gqlast.KeyDirectives))); err != nil {
				return nil, err
			}
			if n.SelectionSet, err = cell.Get(r, p.selectionSets.Get(at(path, gqlast.KeySelectionSet))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.Field) error {
			return firstErr(
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyAlias)), n.Alias) },
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error { return cell.Set(w, p.argumentList.Get(at(path, gqlast.KeyArguments)), n.Arguments) },
				func() error { return cell.Set(w, p.directiveList.Get(at(path, gqlast.KeyDirectives)), n.Directives) },
				func() error { return cell.Set(w, p.selectionSets.Get(at(path, gqlast.KeySelectionSet)), n.SelectionSet) },
			)
		})

	p.arguments = concrete(p, gqlast.KindArgument,
		func(r cell.Reader, path string) (*gqlast.Argument, error) {
			n := &gqlast.Argument{}
			var err error
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.Value, err = cell.Get(r, p.value.Get(at(path, gqlast.KeyValue))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.Argument) error {
			return firstErr(
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error { return cell.Set(w, p.value.Get(at(path, gqlast.KeyValue)), n.Value) },
			)
		})

	p.fragmentSpreads = concrete(p, gqlast.KindFragmentSpread,
		func(r cell.Reader, path string) (*gqlast.FragmentSpread, error) {
			n := &gqlast.FragmentSpread{}
			var err error
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.Directives, err = cell.Get(r, p.directiveList.Get(at(path, gqlast.KeyDirectives))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.FragmentSpread) error {
			return firstErr(
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error { return cell.Set(w, p.directiveList.Get(at(path, gqlast.KeyDirectives)), n.Directives) },
			)
		})

	p.inlineFragments = concrete(p, gqlast.KindInlineFragment,
		func(r cell.Reader, path string) (*gqlast.InlineFragment, error) {
			n := &gqlast.InlineFragment{}
			var err error
			if n.TypeCondition, err = cell.Get(r, p.namedTypes.Get(at(path, gqlast.KeyTypeCondition))); err != nil {
				return nil, err
			}
			if n.Directives, err = cell.Get(r, p.directiveList.Get(at(path, gqlast.KeyDirectives))); err != nil {
				return nil, err
			}
			if n.SelectionSet, err = cell.Get(r, p.selectionSets.Get(at(path, gqlast.KeySelectionSet))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.InlineFragment) error {
			return firstErr(
				func() error { return cell.Set(w, p.namedTypes.Get(at(path, gqlast.KeyTypeCondition)), n.TypeCondition) },
				func() error { return cell.Set(w, p.directiveList.Get(at(path, gqlast.KeyDirectives)), n.Directives) },
				func() error { return cell.Set(w, p.selectionSets.Get(at(path, gqlast.KeySelectionSet)), n.SelectionSet) },
			)
		})

	p.fragmentDefinitions = concrete(p, gqlast.KindFragmentDefinition,
		func(r cell.Reader, path string) (*gqlast.FragmentDefinition, error) {
			n := &gqlast.FragmentDefinition{}
			var err error
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.TypeCondition, err = cell.Get(r, p.namedTypes.Get(at(path, gqlast.KeyTypeCondition))); err != nil {
				return nil, err
			}
			if n.Directives, err = cell.Get(r, p.directiveList.Get(at(path, gqlast.KeyDirectives))); err != nil {
				return nil, err
			}
			if n.SelectionSet, err = cell.Get(r, p.selectionSets.Get(at(path, gqlast.KeySelectionSet))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.FragmentDefinition) error {
			return firstErr(
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error { return cell.Set(w, p.namedTypes.Get(at(path, gqlast.KeyTypeCondition)), n.TypeCondition) },
				func() error { return cell.Set(w, p.directiveList.Get(at(path, gqlast.KeyDirectives)), n.Directives) },
				func() error { return cell.Set(w, p.selectionSets.Get(at(path, gqlast.KeySelectionSet)), n.SelectionSet) },
			)
		})

	p.initValues()

	p.objectFields = concrete(p, gqlast.KindObjectField,
		func(r cell.Reader, path string) (*gqlast.ObjectField, error) {
			n := &gqlast.ObjectField{}
			var err error
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.Value, err = cell.Get(r, p.value.Get(at(path, gqlast.KeyValue))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.ObjectField) error {
			return firstErr(
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error { return cell.Set(w, p.value.Get(at(path, gqlast.KeyValue)), n.Value) },
			)
		})

	p.directives = concrete(p, gqlast.KindDirective,
		func(r cell.Reader, path string) (*gqlast.Directive, error) {
			n := &gqlast.Directive{}
			var err error
			if n.Name, err = cell.Get(r, p.names.Get(at(path, gqlast.KeyName))); err != nil {
				return nil, err
			}
			if n.Arguments, err = cell.Get(r, p.argumentList.Get(at(path, gqlast.KeyArguments))); err != nil {
				return nil, err
			}
			return n, nil
		},
		func(w cell.Writer, path string, n *gqlast.Directive) error {
			return firstErr(
				func() error { return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name) },
				func() error { return cell.Set(w, p.argumentList.Get(at(path, gqlast.KeyArguments)), n.Arguments) },
			)
		})

	p.namedTypes = concrete(p, gqlast.KindNamedType,
		func(r cell.Reader, path string) (*gqlast.NamedType, error) {
			name, err := cell.Get(r, p.names.Get(at(path, gqlast.KeyName)))
			return &gqlast.NamedType{Name: name}, err
		},
		func(w cell.Writer, path string, n *gqlast.NamedType) error {
			return cell.Set(w, p.names.Get(at(path, gqlast.KeyName)), n.Name)
		})

	p.listTypes = concrete(p, gqlast.KindListType,
		func(r cell.Reader, path string) (*gqlast.ListType, error) {
			t, err := cell.Get(r, p.typ.Get(at(path, gqlast.KeyType)))
			return &gqlast.ListType{Type: t}, err
		},
		func(w cell.Writer, path string, n *gqlast.ListType) error {
			return cell.Set(w, p.typ.Get(at(path, gqlast.KeyType)), n.Type)
		})

	p.nonNullTypes = concrete(p, gqlast.KindNonNullType,
		func(r cell.Reader, path string) (*gqlast.NonNullType, error) {
			t, err := cell.Get(r, p.typ.Get(at(path, gqlast.KeyType)))
			return &gqlast.NonNullType{Type: t}, err
		},
		func(w cell.Writer, path string, n *gqlast.NonNullType) error {
			return cell.Set(w, p.typ.Get(at(path, gqlast.KeyType)), n.Type)
		})
}

// initValues builds the scalar and composite value families.
func (p *Projection) initValues() {
	p.intValues = concrete(p, gqlast.KindIntValue,
		func(r cell.Reader, path string) (*gqlast.IntValue, error) {
			v, err := cell.Get(r, p.strs.Get(at(path, gqlast.KeyValue)))
			return &gqlast.IntValue{Value: v}, err
		},
		func(w cell.Writer, path string, n *gqlast.IntValue) error {
			return cell.Set(w, p.strs.Get(at(path, gqlast.KeyValue)), n.Value)
		})

	p.floatValues = concrete(p, gqlast.KindFloatValue,
		func(r cell.Reader, path string) (*gqlast.FloatValue, error) {
			v, err := cell.Get(r, p.strs.Get(at(path, gqlast.KeyValue)))
			return &gqlast.FloatValue{Value: v}, err
		},
		func(w cell.Writer, path string, n *gqlast.FloatValue) error {
			return cell.Set(w, p.strs.Get(at(path, gqlast.KeyValue)), n.Value)
		})

	p.stringValues = concrete(p, gqlast.KindStringValue,
		func(r cell.Reader, path string) (*gqlast.StringValue, error) {
			v, err := cell.Get(r, p.strs.Get(at(path, gqlast.KeyValue)))
			if err != nil {
				return nil, err
			}
			block, err := cell.Get(r, p.bools.Get(at(path, gqlast.KeyBlock)))
			return &gqlast.StringValue{Value: v, Block: block}, err
		},
		func(w cell.Writer, path string, n *gqlast.StringValue) error {
			return firstErr(
				func() error { return cell.Set(w, p.strs.Get(at(path, gqlast.KeyValue)), n.Value) },
				func() error { return cell.Set(w, p.bools.Get(at(path, gqlast.KeyBlock)), n.Block) },
			)
		})

	p.booleanValues = concrete(p, gqlast.KindBooleanValue,
		func(r cell.Reader, path string) (*gqlast.BooleanValue, error) {
			v, err := cell.Get(r, p.bools.Get(at(path, gqlast.KeyValue)))
			return &gqlast.BooleanValue{Value: v}, err
		},
		func(w cell.Writer, path string, n *gqlast.BooleanValue) error {
			return cell.Set(w, p.bools.Get(at(path, gqlast.KeyValue)), n.Value)
		})

	p.nullValues = concrete(p, gqlast.KindNullValue,
		func(cell.Reader, string) (*gqlast.NullValue, error) {
			return &gqlast.NullValue{}, nil
		},
		func(cell.Writer, string, *gqlast.NullValue) error {
			return nil
		})

	p.enumValues = concrete(p, gqlast.KindEnumValue,
		func(r cell.Reader, path string) (*gqlast.EnumValue, error) {
			v, err := cell.Get(r, p.strs.Get(at(path, gqlast.KeyValue)))
			return &gqlast.EnumValue{Value: v}, err
		},
		func(w cell.Writer, path string, n *gqlast.EnumValue) error {
			return cell.Set(w, p.strs.Get(at(path, gqlast.KeyValue)), n.Value)
		})

	p.listValues = concrete(p, gqlast.KindListValue,
		func(r cell.Reader, path string) (*gqlast.ListValue, error) {
			vs, err := cell.Get(r, p.valueList.Get(at(path, gqlast.KeyValues)))
			return &gqlast.ListValue{Values: vs}, err
		},
		func(w cell.Writer, path string, n *gqlast.ListValue) error {
			return cell.Set(w, p.valueList.Get(at(path, gqlast.KeyValues)), n.Values)
		})

	p.objectValues = concrete(p, gqlast.KindObjectValue,
		func(r cell.Reader, path string) (*gqlast.ObjectValue, error) {
			fs, err := cell.Get(r, p.objectFieldList.Get(at(path, gqlast.KeyFields)))
			return &gqlast.ObjectValue{Fields: fs}, err
		},
		func(w cell.Writer, path string, n *gqlast.ObjectValue) error {
			return cell.Set(w, p.objectFieldList.Get(at(path, gqlast.KeyFields)), n.Fields)
		})
}

// firstErr runs steps in order and stops at the first error.
func firstErr(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
