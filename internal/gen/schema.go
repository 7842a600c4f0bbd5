// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gen

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the schema of a .go.yaml template file.
type File struct {
	// The package of the generated file. Optional if the generator has a
	// default package.
	Package string `yaml:"package"`

	Templates []Template `yaml:"templates"`
}

// Template is one template in a [File]. It becomes a function returning a
// quote.Func.
type Template struct {
	Name yaml.Node `yaml:"name"` // The name of the generated function.
	Docs string    `yaml:"docs"` // Doc comment for the function.

	// Parameters of the generated function, as Go source: "name type", or a
	// group such as "a, b type".
	Params []yaml.Node `yaml:"params"`

	// The template's placeholders.
	Vars []Var `yaml:"vars"`

	// The template itself: Go source in which every variable is a
	// placeholder.
	Body yaml.Node `yaml:"body"`
}

// Var is a placeholder declaration. In YAML, it is either a bare name, which
// binds the function parameter of the same name, or a single-entry mapping
// from name to a Go expression that computes its value.
type Var struct {
	Name string
	Expr string // Empty for the shorthand form.

	node *yaml.Node
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (v *Var) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode:
		v.Name = node.Value
		v.node = node
	case node.Kind == yaml.MappingNode && len(node.Content) == 2:
		key, value := node.Content[0], node.Content[1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: the expression for variable %q must be a string", value.Line, key.Value)
		}
		v.Name = key.Value
		v.Expr = value.Value
		v.node = key
	default:
		return errors.New("a variable must be written as `name` or `name: expression`")
	}
	return nil
}

// IsShorthand returns whether this variable was declared by name alone.
func (v *Var) IsShorthand() bool {
	return v.Expr == ""
}
