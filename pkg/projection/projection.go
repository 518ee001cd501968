package projection

import (
	"github.com/nksaraf/magiql/pkg/cell"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

// Projection maps GraphQL AST nodes onto cells keyed by path. For every node
// kind it owns a writable derived family that assembles the node from its
// children's cells on read and decomposes it into them on write.
//
// All families belong to the Projection, never to the process, so separate
// projections are fully independent.
type Projection struct {
	store *cell.Store

	// primitive storage
	meta  *cell.Family[gqlast.Metadata]
	strs  *cell.Family[string]
	bools *cell.Family[bool]
	paths *cell.Family[[]string]

	// concrete node kinds
	names               *cell.Family[*gqlast.Name]
	documents           *cell.Family[*gqlast.Document]
	operations          *cell.Family[*gqlast.OperationDefinition]
	variableDefinitions *cell.Family[*gqlast.VariableDefinition]
	variables           *cell.Family[*gqlast.Variable]
	selectionSets       *cell.Family[*gqlast.SelectionSet]
	fields              *cell.Family[*gqlast.Field]
	arguments           *cell.Family[*gqlast.Argument]
	fragmentSpreads     *cell.Family[*gqlast.FragmentSpread]
	inlineFragments     *cell.Family[*gqlast.InlineFragment]
	fragmentDefinitions *cell.Family[*gqlast.FragmentDefinition]
	intValues           *cell.Family[*gqlast.IntValue]
	floatValues         *cell.Family[*gqlast.FloatValue]
	stringValues        *cell.Family[*gqlast.StringValue]
	booleanValues       *cell.Family[*gqlast.BooleanValue]
	nullValues          *cell.Family[*gqlast.NullValue]
	enumValues          *cell.Family[*gqlast.EnumValue]
	listValues          *cell.Family[*gqlast.ListValue]
	objectValues        *cell.Family[*gqlast.ObjectValue]
	objectFields        *cell.Family[*gqlast.ObjectField]
	directives          *cell.Family[*gqlast.Directive]
	namedTypes          *cell.Family[*gqlast.NamedType]
	listTypes           *cell.Family[*gqlast.ListType]
	nonNullTypes        *cell.Family[*gqlast.NonNullType]

	// kind dispatch
	definition *cell.Family[gqlast.Definition]
	selection  *cell.Family[gqlast.Selection]
	value      *cell.Family[gqlast.Value]
	typ        *cell.Family[gqlast.Type]
	node       *cell.Family[gqlast.Node]

	// collections, keyed by collection path
	definitionList         *cell.Family[[]gqlast.Definition]
	selectionList          *cell.Family[[]gqlast.Selection]
	argumentList           *cell.Family[[]*gqlast.Argument]
	directiveList          *cell.Family[[]*gqlast.Directive]
	variableDefinitionList *cell.Family[[]*gqlast.VariableDefinition]
	valueList              *cell.Family[[]gqlast.Value]
	objectFieldList        *cell.Family[[]*gqlast.ObjectField]
}

// New creates a projection whose cells live in store.
func New(store *cell.Store) *Projection {
	p := &Projection{store: store}

	p.meta = cell.NewFamily("meta", func(string) *cell.Atom[gqlast.Metadata] {
		return cell.New(gqlast.Metadata{})
	})
	p.strs = cell.NewFamily("string", func(string) *cell.Atom[string] {
		return cell.New("")
	})
	p.bools = cell.NewFamily("bool", func(string) *cell.Atom[bool] {
		return cell.New(false)
	})
	p.paths = cell.NewFamily("paths", func(string) *cell.Atom[[]string] {
		return cell.New[[]string](nil)
	})

	p.initNodes()
	p.initDispatch()
	p.initCollections()
	return p
}

// Store returns the store holding the projection's cells.
func (p *Projection) Store() *cell.Store {
	return p.store
}

// Metadata returns the metadata cell of the node at path.
func (p *Projection) Metadata(path string) *cell.Atom[gqlast.Metadata] { return p.meta.Get(path) }

// StringLeaf returns the string leaf cell at path.
func (p *Projection) StringLeaf(path string) *cell.Atom[string] { return p.strs.Get(path) }

// BoolLeaf returns the bool leaf cell at path.
func (p *Projection) BoolLeaf(path string) *cell.Atom[bool] { return p.bools.Get(path) }

// Paths returns the ordered item paths of the collection at path.
func (p *Projection) Paths(path string) *cell.Atom[[]string] { return p.paths.Get(path) }

func (p *Projection) Name(path string) *cell.Atom[*gqlast.Name]         { return p.names.Get(path) }
func (p *Projection) Document(path string) *cell.Atom[*gqlast.Document] { return p.documents.Get(path) }
func (p *Projection) OperationDefinition(path string) *cell.Atom[*gqlast.OperationDefinition] {
	return p.operations.Get(path)
}
func (p *Projection) VariableDefinition(path string) *cell.Atom[*gqlast.VariableDefinition] {
	return p.variableDefinitions.Get(path)
}
func (p *Projection) Variable(path string) *cell.Atom[*gqlast.Variable] { return p.variables.Get(path) }
func (p *Projection) SelectionSet(path string) *cell.Atom[*gqlast.SelectionSet] {
	return p.selectionSets.Get(path)
}
func (p *Projection) Field(path string) *cell.Atom[*gqlast.Field]       { return p.fields.Get(path) }
func (p *Projection) Argument(path string) *cell.Atom[*gqlast.Argument] { return p.arguments.Get(path) }
func (p *Projection) FragmentSpread(path string) *cell.Atom[*gqlast.FragmentSpread] {
	return p.fragmentSpreads.Get(path)
}
func (p *Projection) InlineFragment(path string) *cell.Atom[*gqlast.InlineFragment] {
	return p.inlineFragments.Get(path)
}
func (p *Projection) FragmentDefinition(path string) *cell.Atom[*gqlast.FragmentDefinition] {
	return p.fragmentDefinitions.Get(path)
}
func (p *Projection) IntValue(path string) *cell.Atom[*gqlast.IntValue]     { return p.intValues.Get(path) }
func (p *Projection) FloatValue(path string) *cell.Atom[*gqlast.FloatValue] { return p.floatValues.Get(path) }
func (p *Projection) StringValue(path string) *cell.Atom[*gqlast.StringValue] {
	return p.stringValues.Get(path)
}
func (p *Projection) BooleanValue(path string) *cell.Atom[*gqlast.BooleanValue] {
	return p.booleanValues.Get(path)
}
func (p *Projection) NullValue(path string) *cell.Atom[*gqlast.NullValue]     { return p.nullValues.Get(path) }
func (p *Projection) EnumValue(path string) *cell.Atom[*gqlast.EnumValue]     { return p.enumValues.Get(path) }
func (p *Projection) ListValue(path string) *cell.Atom[*gqlast.ListValue]     { return p.listValues.Get(path) }
func (p *Projection) ObjectValue(path string) *cell.Atom[*gqlast.ObjectValue] { return p.objectValues.Get(path) }
func (p *Projection) ObjectField(path string) *cell.Atom[*gqlast.ObjectField] { return p.objectFields.Get(path) }
func (p *Projection) Directive(path string) *cell.Atom[*gqlast.Directive]     { return p.directives.Get(path) }
func (p *Projection) NamedType(path string) *cell.Atom[*gqlast.NamedType]     { return p.namedTypes.Get(path) }
func (p *Projection) ListType(path string) *cell.Atom[*gqlast.ListType]       { return p.listTypes.Get(path) }
func (p *Projection) NonNullType(path string) *cell.Atom[*gqlast.NonNullType] { return p.nonNullTypes.Get(path) }

// Definition dispatches on the kind stored at path.
func (p *Projection) Definition(path string) *cell.Atom[gqlast.Definition] { return p.definition.Get(path) }

// Selection dispatches on the kind stored at path.
func (p *Projection) Selection(path string) *cell.Atom[gqlast.Selection] { return p.selection.Get(path) }

// Value dispatches on the kind stored at path.
func (p *Projection) Value(path string) *cell.Atom[gqlast.Value] { return p.value.Get(path) }

// Type dispatches on the kind stored at path.
func (p *Projection) Type(path string) *cell.Atom[gqlast.Type] { return p.typ.Get(path) }

// Node dispatches over every kind.
func (p *Projection) Node(path string) *cell.Atom[gqlast.Node] { return p.node.Get(path) }

func (p *Projection) Definitions(path string) *cell.Atom[[]gqlast.Definition] {
	return p.definitionList.Get(path)
}
func (p *Projection) Selections(path string) *cell.Atom[[]gqlast.Selection] {
	return p.selectionList.Get(path)
}
func (p *Projection) Arguments(path string) *cell.Atom[[]*gqlast.Argument] {
	return p.argumentList.Get(path)
}
func (p *Projection) Directives(path string) *cell.Atom[[]*gqlast.Directive] {
	return p.directiveList.Get(path)
}
func (p *Projection) VariableDefinitions(path string) *cell.Atom[[]*gqlast.VariableDefinition] {
	return p.variableDefinitionList.Get(path)
}
func (p *Projection) ListValues(path string) *cell.Atom[[]gqlast.Value] { return p.valueList.Get(path) }
func (p *Projection) ObjectFields(path string) *cell.Atom[[]*gqlast.ObjectField] {
	return p.objectFieldList.Get(path)
}

// Get reads the node at path whatever its kind. It returns nil for absent
// and unselected nodes.
func (p *Projection) Get(path string) (gqlast.Node, error) {
	return cell.Get(p.store, p.Node(path))
}

// Set writes n at path. A nil node marks the path unselected.
func (p *Projection) Set(path string, n gqlast.Node) error {
	return cell.Set(p.store, p.Node(path), n)
}

// Subscribe calls fn with the node at path after every change to it.
func (p *Projection) Subscribe(path string, fn func(gqlast.Node)) (unsubscribe func()) {
	return cell.Subscribe(p.store, p.Node(path), fn)
}

// SetSelected toggles the logical presence of the node at path without
// touching its children. Selecting a path that never held a node fails.
func (p *Projection) SetSelected(path string, selected bool) error {
	return p.store.Batch(func(w cell.Writer) error {
		return p.SetSelectedIn(w, path, selected)
	})
}

// SetSelectedIn is SetSelected inside the batch that owns w.
func (p *Projection) SetSelectedIn(w cell.Writer, path string, selected bool) error {
	m, err := cell.Get(w, p.meta.Get(path))
	if err != nil {
		return err
	}
	if selected && m.Kind == "" {
		return &gqlast.UnknownKindError{Path: path, Category: "node"}
	}
	return p.setSelected(w, path, selected)
}

func (p *Projection) setSelected(w cell.Writer, path string, selected bool) error {
	return cell.Update(w, p.meta.Get(path), func(m gqlast.Metadata) gqlast.Metadata {
		m.Path = path
		m.ParentPath = gqlast.Parent(path)
		m.IsSelected = selected
		return m
	})
}

// concrete builds the writable family for one node kind. read and write
// handle the kind's own fields; concrete adds the metadata handling shared by
// every kind.
func concrete[N gqlast.Node](
	p *Projection,
	kind gqlast.Kind,
	read func(r cell.Reader, path string) (N, error),
	write func(w cell.Writer, path string, n N) error,
) *cell.Family[N] {
	return cell.NewFamily(string(kind), func(path string) *cell.Atom[N] {
		return cell.Writable(
			func(r cell.Reader) (N, error) {
				var zero N
				m, err := cell.Get(r, p.meta.Get(path))
				if err != nil {
					return zero, err
				}
				if !m.IsSelected || m.Kind != kind {
					return zero, nil
				}
				n, err := read(r, path)
				if err != nil {
					return zero, err
				}
				*n.Meta() = m
				return n, nil
			},
			func(_ cell.Reader, w cell.Writer, n N) error {
				if gqlast.IsNil(n) {
					return p.setSelected(w, path, false)
				}
				if declared := n.Meta().Path; declared != "" && declared != path {
					return &gqlast.PathCollisionError{Path: path, Declared: declared}
				}
				err := cell.Set(w, p.meta.Get(path), gqlast.Metadata{
					Path:       path,
					ParentPath: gqlast.Parent(path),
					Kind:       kind,
					IsSelected: true,
				})
				if err != nil {
					return err
				}
				return write(w, path, n)
			},
		)
	})
}

// pick converts a concrete read result to its category interface, keeping nil
// nodes as nil interfaces.
func pick[N gqlast.Node, I gqlast.Node](n N, err error) (I, error) {
	var zero I
	if err != nil || gqlast.IsNil(n) {
		return zero, err
	}
	return any(n).(I), nil
}

// Nodes returns the metadata of every node ever written below root, selected
// or not, ordered by path.
func (p *Projection) Nodes(root string) ([]gqlast.Metadata, error) {
	var out []gqlast.Metadata
	for _, key := range p.meta.Keys() {
		if !gqlast.HasPrefix(key, root) {
			continue
		}
		m, err := cell.Get(p.store, p.meta.Get(key))
		if err != nil {
			return nil, err
		}
		if m.Kind == "" {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
