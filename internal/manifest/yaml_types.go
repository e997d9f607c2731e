package manifest

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return len(s) == 0
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// The node types below record where they were declared.

// UnmarshalYAML decodes the definition and keeps its position.
func (d *DefinitionSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain DefinitionSpec

	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}

	d.Position = Position{Line: node.Line, Column: node.Column}

	return nil
}

// UnmarshalYAML decodes the member and keeps its position.
func (m *MemberSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain MemberSpec

	if err := node.Decode((*plain)(m)); err != nil {
		return err
	}

	m.Position = Position{Line: node.Line, Column: node.Column}

	return nil
}

// UnmarshalYAML decodes the variant and keeps its position.
func (v *VariantSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain VariantSpec

	if err := node.Decode((*plain)(v)); err != nil {
		return err
	}

	v.Position = Position{Line: node.Line, Column: node.Column}

	return nil
}
