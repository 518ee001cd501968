package projection

import (
	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// Grammar categories used in UnknownKindError.
const (
	categoryDefinition = "definition"
	categorySelection  = "selection"
	categoryValue      = "value"
	categoryType       = "type"
	categoryNode       = "node"
)

// route forwards a category read or write to one concrete family.
type route[I gqlast.Node] struct {
	read  func(r cell.Reader, path string) (I, error)
	write func(w cell.Writer, path string, n I) error
}

func via[N gqlast.Node, I gqlast.Node](f *cell.Family[N]) route[I] {
	return route[I]{
		read: func(r cell.Reader, path string) (I, error) {
			return pick[N, I](cell.Get(r, f.Get(path)))
		},
		write: func(w cell.Writer, path string, n I) error {
			concrete, ok := any(n).(N)
			if !ok {
				// n reports a kind its Go type does not have.
				return &gqlast.UnknownKindError{Path: path, Kind: n.Kind(), Category: categoryNode}
			}
			return cell.Set(w, f.Get(path), concrete)
		},
	}
}

// dispatch builds a family that reads and writes whichever concrete kind the
// metadata at a path declares.
func dispatch[I gqlast.Node](p *Projection, category string, routes map[gqlast.Kind]route[I]) *cell.Family[I] {
	return cell.NewFamily(category, func(path string) *cell.Atom[I] {
		return cell.Writable(
			func(r cell.Reader) (I, error) {
				var zero I
				m, err := cell.Get(r, p.meta.Get(path))
				if err != nil || !m.IsSelected {
					return zero, err
				}
				rt, ok := routes[m.Kind]
				if !ok {
					return zero, &gqlast.UnknownKindError{Path: path, Kind: m.Kind, Category: category}
				}
				return rt.read(r, path)
			},
			func(_ cell.Reader, w cell.Writer, n I) error {
				if gqlast.IsNil(n) {
					return p.setSelected(w, path, false)
				}
				rt, ok := routes[n.Kind()]
				if !ok {
					return &gqlast.UnknownKindError{Path: path, Kind: n.Kind(), Category: category}
				}
				return rt.write(w, path, n)
			},
		)
	})
}

func (p *Projection) initDispatch() {
	p.definition = dispatch(p, categoryDefinition, map[gqlast.Kind]route[gqlast.Definition]{
		gqlast.KindOperationDefinition: via[*gqlast.OperationDefinition, gqlast.Definition](p.operations),
		gqlast.KindFragmentDefinition:  via[*gqlast.FragmentDefinition, gqlast.Definition](p.fragmentDefinitions),
	})

	p.selection = dispatch(p, categorySelection, map[gqlast.Kind]route[gqlast.Selection]{
		gqlast.KindField:          via[*gqlast.Field, gqlast.Selection](p.fields),
		gqlast.KindFragmentSpread: via[*gqlast.FragmentSpread, gqlast.Selection](p.fragmentSpreads),
		gqlast.KindInlineFragment: via[*gqlast.InlineFragment, gqlast.Selection](p.inlineFragments),
	})

	p.value = dispatch(p, categoryValue, map[gqlast.Kind]route[gqlast.Value]{
		gqlast.KindVariable:     via[*gqlast.Variable, gqlast.Value](p.variables),
		gqlast.KindIntValue:     via[*gqlast.IntValue, gqlast.Value](p.intValues),
		gqlast.KindFloatValue:   via[*gqlast.FloatValue, gqlast.Value](p.floatValues),
		gqlast.KindStringValue:  via[*gqlast.StringValue, gqlast.Value](p.stringValues),
		gqlast.KindBooleanValue: via[*gqlast.BooleanValue, gqlast.Value](p.booleanValues),
		gqlast.KindNullValue:    via[*gqlast.NullValue, gqlast.Value](p.nullValues),
		gqlast.KindEnumValue:    via[*gqlast.EnumValue, gqlast.Value](p.enumValues),
		gqlast.KindListValue:    via[*gqlast.ListValue, gqlast.Value](p.listValues),
		gqlast.KindObjectValue:  via[*gqlast.ObjectValue, gqlast.Value](p.objectValues),
	})

	p.typ = dispatch(p, categoryType, map[gqlast.Kind]route[gqlast.Type]{
		gqlast.KindNamedType:   via[*gqlast.NamedType, gqlast.Type](p.namedTypes),
		gqlast.KindListType:    via[*gqlast.ListType, gqlast.Type](p.listTypes),
		gqlast.KindNonNullType: via[*gqlast.NonNullType, gqlast.Type](p.nonNullTypes),
	})

	p.node = dispatch(p, categoryNode, map[gqlast.Kind]route[gqlast.Node]{
		gqlast.KindName:                via[*gqlast.Name, gqlast.Node](p.names),
		gqlast.KindDocument:            via[*gqlast.Document, gqlast.Node](p.documents),
		gqlast.KindOperationDefinition: via[*gqlast.OperationDefinition, gqlast.Node](p.operations),
		gqlast.KindVariableDefinition:  via[*gqlast.VariableDefinition, gqlast.Node](p.variableDefinitions),
		gqlast.KindVariable:            via[*gqlast.Variable, gqlast.Node](p.variables),
		gqlast.KindSelectionSet:        via[*gqlast.SelectionSet, gqlast.Node](p.selectionSets),
		gqlast.KindField:               via[*gqlast.Field, gqlast.Node](p.fields),
		gqlast.KindArgument:            via[*gqlast.Argument, gqlast.Node](p.arguments),
		gqlast.KindFragmentSpread:      via[*gqlast.FragmentSpread, gqlast.Node](p.fragmentSpreads),
		gqlast.KindInlineFragment:      via[*gqlast.InlineFragment, gqlast.Node](p.inlineFragments),
		gqlast.KindFragmentDefinition:  via[*gqlast.FragmentDefinition, gqlast.Node](p.fragmentDefinitions),
		gqlast.KindIntValue:            via[*gqlast.IntValue, gqlast.Node](p.intValues),
		gqlast.KindFloatValue:          via[*gqlast.FloatValue, gqlast.Node](p.floatValues),
		gqlast.KindStringValue:         via[*gqlast.StringValue, gqlast.Node](p.stringValues),
		gqlast.KindBooleanValue:        via[*gqlast.BooleanValue, gqlast.Node](p.booleanValues),
		gqlast.KindNullValue:           via[*gqlast.NullValue, gqlast.Node](p.nullValues),
		gqlast.KindEnumValue:           via[*gqlast.EnumValue, gqlast.Node](p.enumValues),
		gqlast.KindListValue:           via[*gqlast.ListValue, gqlast.Node](p.listValues),
		gqlast.KindObjectValue:         via[*gqlast.ObjectValue, gqlast.Node](p.objectValues),
		gqlast.KindObjectField:         via[*gqlast.ObjectField, gqlast.Node](p.objectFields),
		gqlast.KindDirective:           via[*gqlast.Directive, gqlast.Node](p.directives),
		gqlast.KindNamedType:           via[*gqlast.NamedType, gqlast.Node](p.namedTypes),
		gqlast.KindListType:            via[*gqlast.ListType, gqlast.Node](p.listTypes),
		gqlast.KindNonNullType:         via[*gqlast.NonNullType, gqlast.Node](p.nonNullTypes),
	})
}
