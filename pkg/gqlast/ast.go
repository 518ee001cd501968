package gqlast

// Kind identifies the concrete type of a node.
type Kind string

// Node kinds.
const (
	KindName                Kind = "Name"
	KindDocument            Kind = "Document"
	KindOperationDefinition Kind = "OperationDefinition"
	KindVariableDefinition  Kind = "VariableDefinition"
	KindVariable            Kind = "Variable"
	KindSelectionSet        Kind = "SelectionSet"
	KindField               Kind = "Field"
	KindArgument            Kind = "Argument"
	KindFragmentSpread      Kind = "FragmentSpread"
	KindInlineFragment      Kind = "InlineFragment"
	KindFragmentDefinition  Kind = "FragmentDefinition"
	KindIntValue            Kind = "IntValue"
	KindFloatValue          Kind = "FloatValue"
	KindStringValue         Kind = "StringValue"
	KindBooleanValue        Kind = "BooleanValue"
	KindNullValue           Kind = "NullValue"
	KindEnumValue           Kind = "EnumValue"
	KindListValue           Kind = "ListValue"
	KindObjectValue         Kind = "ObjectValue"
	KindObjectField         Kind = "ObjectField"
	KindDirective           Kind = "Directive"
	KindNamedType           Kind = "NamedType"
	KindListType            Kind = "ListType"
	KindNonNullType         Kind = "NonNullType"
)

// Operation is the type of an operation definition.
type Operation string

// Operation types.
const (
	OperationQuery        Operation = "query"
	OperationMutation     Operation = "mutation"
	OperationSubscription Operation = "subscription"
)

// Metadata is the structural information stamped on every node.
type Metadata struct {
	// Path is the node's identity, e.g. "Foo.selectionSet.selections.0".
	Path string `json:"path"`
	// ParentPath is Path without its last segment.
	ParentPath string `json:"parentPath"`
	Kind       Kind   `json:"kind"`
	// IsSelected reports whether the node is part of the logical document.
	IsSelected bool `json:"isSelected"`
}

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Meta() *Metadata
}

// Definition is an OperationDefinition or a FragmentDefinition.
type Definition interface {
	Node
	isDefinition()
}

// Selection is a Field, a FragmentSpread or an InlineFragment.
type Selection interface {
	Node
	isSelection()
}

// Value is an input value literal or a Variable.
type Value interface {
	Node
	isValue()
}

// Type is a NamedType, a ListType or a NonNullType.
type Type interface {
	Node
	isType()
}

// Name is an identifier.
type Name struct {
	Metadata Metadata
	Value    string
}

// Document is a list of executable definitions.
type Document struct {
	Metadata    Metadata
	Definitions []Definition
}

// OperationDefinition is a query, mutation or subscription.
type OperationDefinition struct {
	Metadata            Metadata
	Operation           Operation
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
}

// VariableDefinition declares an operation variable.
type VariableDefinition struct {
	Metadata     Metadata
	Variable     *Variable
	Type         Type
	DefaultValue Value
	Directives   []*Directive
}

// Variable is a $name reference.
type Variable struct {
	Metadata Metadata
	Name     *Name
}

// SelectionSet is a braced list of selections.
type SelectionSet struct {
	Metadata   Metadata
	Selections []Selection
}

// Field selects a field, optionally aliased.
type Field struct {
	Metadata     Metadata
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
}

// Argument is a name: value pair on a field or directive.
type Argument struct {
	Metadata Metadata
	Name     *Name
	Value    Value
}

// FragmentSpread is ...Name.
type FragmentSpread struct {
	Metadata   Metadata
	Name       *Name
	Directives []*Directive
}

// InlineFragment is ... on Type { ... }.
type InlineFragment struct {
	Metadata      Metadata
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

// FragmentDefinition is fragment Name on Type { ... }.
type FragmentDefinition struct {
	Metadata      Metadata
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

// IntValue keeps the literal text.
type IntValue struct {
	Metadata Metadata
	Value    string
}

// FloatValue keeps the literal text.
type FloatValue struct {
	Metadata Metadata
	Value    string
}

// StringValue holds the unescaped string; Block marks """block""" strings.
type StringValue struct {
	Metadata Metadata
	Value    string
	Block    bool
}

type BooleanValue struct {
	Metadata Metadata
	Value    bool
}

type NullValue struct {
	Metadata Metadata
}

type EnumValue struct {
	Metadata Metadata
	Value    string
}

type ListValue struct {
	Metadata Metadata
	Values   []Value
}

type ObjectValue struct {
	Metadata Metadata
	Fields   []*ObjectField
}

type ObjectField struct {
	Metadata Metadata
	Name     *Name
	Value    Value
}

// Directive is @name(args).
type Directive struct {
	Metadata  Metadata
	Name      *Name
	Arguments []*Argument
}

type NamedType struct {
	Metadata Metadata
	Name     *Name
}

type ListType struct {
	Metadata Metadata
	Type     Type
}

type NonNullType struct {
	Metadata Metadata
	Type     Type
}

func (n *Name) Kind() Kind                { return KindName }
func (n *Document) Kind() Kind            { return KindDocument }
func (n *OperationDefinition) Kind() Kind { return KindOperationDefinition }
func (n *VariableDefinition) Kind() Kind  { return KindVariableDefinition }
func (n *Variable) Kind() Kind            { return KindVariable }
func (n *SelectionSet) Kind() Kind        { return KindSelectionSet }
func (n *Field) Kind() Kind               { return KindField }
func (n *Argument) Kind() Kind            { return KindArgument }
func (n *FragmentSpread) Kind() Kind      { return KindFragmentSpread }
func (n *InlineFragment) Kind() Kind      { return KindInlineFragment }
func (n *FragmentDefinition) Kind() Kind  { return KindFragmentDefinition }
func (n *IntValue) Kind() Kind            { return KindIntValue }
func (n *FloatValue) Kind() Kind          { return KindFloatValue }
func (n *StringValue) Kind() Kind         { return KindStringValue }
func (n *BooleanValue) Kind() Kind        { return KindBooleanValue }
func (n *NullValue) Kind() Kind           { return KindNullValue }
func (n *EnumValue) Kind() Kind           { return KindEnumValue }
func (n *ListValue) Kind() Kind           { return KindListValue }
func (n *ObjectValue) Kind() Kind         { return KindObjectValue }
func (n *ObjectField) Kind() Kind         { return KindObjectField }
func (n *Directive) Kind() Kind           { return KindDirective }
func (n *NamedType) Kind() Kind           { return KindNamedType }
func (n *ListType) Kind() Kind            { return KindListType }
func (n *NonNullType) Kind() Kind         { return KindNonNullType }

func (n *Name) Meta() *Metadata                { return &n.Metadata }
func (n *Document) Meta() *Metadata            { return &n.Metadata }
func (n *OperationDefinition) Meta() *Metadata { return &n.Metadata }
func (n *VariableDefinition) Meta() *Metadata  { return &n.Metadata }
func (n *Variable) Meta() *Metadata            { return &n.Metadata }
func (n *SelectionSet) Meta() *Metadata        { return &n.Metadata }
func (n *Field) Meta() *Metadata               { return &n.Metadata }
func (n *Argument) Meta() *Metadata            { return &n.Metadata }
func (n *FragmentSpread) Meta() *Metadata      { return &n.Metadata }
func (n *InlineFragment) Meta() *Metadata      { return &n.Metadata }
func (n *FragmentDefinition) Meta() *Metadata  { return &n.Metadata }
func (n *IntValue) Meta() *Metadata            { return &n.Metadata }
func (n *FloatValue) Meta() *Metadata          { return &n.Metadata }
func (n *StringValue) Meta() *Metadata         { return &n.Metadata }
func (n *BooleanValue) Meta() *Metadata        { return &n.Metadata }
func (n *NullValue) Meta() *Metadata           { return &n.Metadata }
func (n *EnumValue) Meta() *Metadata           { return &n.Metadata }
func (n *ListValue) Meta() *Metadata           { return &n.Metadata }
func (n *ObjectValue) Meta() *Metadata         { return &n.Metadata }
func (n *ObjectField) Meta() *Metadata         { return &n.Metadata }
func (n *Directive) Meta() *Metadata           { return &n.Metadata }
func (n *NamedType) Meta() *Metadata           { return &n.Metadata }
func (n *ListType) Meta() *Metadata            { return &n.Metadata }
func (n *NonNullType) Meta() *Metadata         { return &n.Metadata }

func (*OperationDefinition) isDefinition() {}
func (*FragmentDefinition) isDefinition()  {}

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

func (*Variable) isValue()     {}
func (*IntValue) isValue()     {}
func (*FloatValue) isValue()   {}
func (*StringValue) isValue()  {}
func (*BooleanValue) isValue() {}
func (*NullValue) isValue()    {}
func (*EnumValue) isValue()    {}
func (*ListValue) isValue()    {}
func (*ObjectValue) isValue()  {}

func (*NamedType) isType()   {}
func (*ListType) isType()    {}
func (*NonNullType) isType() {}

var (
	_ Definition = (*OperationDefinition)(nil)
	_ Definition = (*FragmentDefinition)(nil)
	_ Selection  = (*Field)(nil)
	_ Selection  = (*FragmentSpread)(nil)
	_ Selection  = (*InlineFragment)(nil)
	_ Value      = (*Variable)(nil)
	_ Value      = (*ListValue)(nil)
	_ Value      = (*ObjectValue)(nil)
	_ Type       = (*NamedType)(nil)
	_ Type       = (*ListType)(nil)
	_ Type       = (*NonNullType)(nil)
)

// NewName returns a Name node.
func NewName(value string) *Name {
	return &Name{Value: value}
}

// NewField returns a leaf field selection.
func NewField(name string) *Field {
	return &Field{Name: NewName(name)}
}

// ResponseKey returns the alias if present, else the field name.
func (n *Field) ResponseKey() string {
	if n.Alias != nil && n.Alias.Value != "" {
		return n.Alias.Value
	}
	if n.Name == nil {
		return ""
	}
	return n.Name.Value
}
