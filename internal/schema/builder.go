package schema

import (
	"fmt"
	"strconv"

	language "github.com/hanpama/exportgraph/internal/language"
)

// BuildFromSDL parses an SDL string and returns the corresponding Schema.
// Builtin scalars and the @skip, @include and @export directives are always
// present. Root operation types default to Query/Mutation/Subscription when
// no schema block names them.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		Types:      map[string]*Type{},
		Directives: map[string]*Directive{},
	}
	for _, t := range []*Type{stringType, intType, floatType, booleanType, idType} {
		s.Types[t.Name] = t
	}
	for _, d := range []*Directive{includeDirective, skipDirective, exportDirective} {
		s.Directives[d.Name] = d
	}

	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		s.Types[t.Name] = t
	}
	for _, dir := range doc.Directives {
		s.Directives[dir.Name] = buildDirective(dir)
	}

	s.QueryType = "Query"
	if _, ok := s.Types["Mutation"]; ok {
		s.MutationType = "Mutation"
	}
	if _, ok := s.Types["Subscription"]; ok {
		s.SubscriptionType = "Subscription"
	}
	for _, sd := range doc.Schema {
		for _, ot := range sd.OperationTypes {
			switch ot.Operation {
			case language.Query:
				s.QueryType = ot.Type
			case language.Mutation:
				s.MutationType = ot.Type
			case language.Subscription:
				s.SubscriptionType = ot.Type
			}
		}
	}

	if s.GetQueryType() == nil {
		return nil, fmt.Errorf("schema has no %q type", s.QueryType)
	}
	return s, nil
}

func buildDefinition(def *language.Definition) (*Type, error) {
	t := &Type{Name: def.Name, Description: def.Description}
	switch def.Kind {
	case language.Object:
		t.Kind = TypeKindObject
	case language.Interface:
		t.Kind = TypeKindInterface
	case language.Union:
		t.Kind = TypeKindUnion
	case language.Scalar:
		t.Kind = TypeKindScalar
	case language.Enum:
		t.Kind = TypeKindEnum
	case language.InputObject:
		t.Kind = TypeKindInputObject
	default:
		return nil, fmt.Errorf("unsupported definition kind %q for %q", def.Kind, def.Name)
	}

	t.Interfaces = append(t.Interfaces, def.Interfaces...)
	t.PossibleTypes = append(t.PossibleTypes, def.Types...)
	for _, ev := range def.EnumValues {
		t.EnumValues = append(t.EnumValues, ev.Name)
	}
	for _, fd := range def.Fields {
		if def.Kind == language.InputObject {
			t.InputFields = append(t.InputFields, &InputValue{
				Name:         fd.Name,
				Description:  fd.Description,
				Type:         buildTypeRef(fd.Type),
				DefaultValue: goValue(fd.DefaultValue),
			})
			continue
		}
		f := &Field{
			Name:        fd.Name,
			Description: fd.Description,
			Type:        buildTypeRef(fd.Type),
		}
		for _, ad := range fd.Arguments {
			f.Arguments = append(f.Arguments, &InputValue{
				Name:         ad.Name,
				Description:  ad.Description,
				Type:         buildTypeRef(ad.Type),
				DefaultValue: goValue(ad.DefaultValue),
			})
		}
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}

func buildDirective(def *language.DirectiveDefinition) *Directive {
	d := &Directive{
		Name:         def.Name,
		Description:  def.Description,
		IsRepeatable: def.IsRepeatable,
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, ad := range def.Arguments {
		d.Arguments = append(d.Arguments, &InputValue{
			Name:         ad.Name,
			Description:  ad.Description,
			Type:         buildTypeRef(ad.Type),
			DefaultValue: goValue(ad.DefaultValue),
		})
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(buildTypeRef(t.Elem))
	}
	panic("unreachable")
}

// goValue converts an SDL default value to a plain Go value.
func goValue(v *language.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(v.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(v.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return v.Raw
	case language.BooleanValue:
		return v.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(v.Children))
		for i, c := range v.Children {
			out[i] = goValue(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, c := range v.Children {
			m[c.Name] = goValue(c.Value)
		}
		return m
	default:
		return nil
	}
}
