package atom

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Feed descriptions are usually written by hand, so persons, links,
// categories, text constructs and content accept a bare string in place of the
// object form, and lang/generator accept false to switch the default off.

func (p *Person) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*p = Person{Name: value.Value}
		return nil
	}
	type plain Person
	return value.Decode((*plain)(p))
}

func (p *Person) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		*p = Person{Name: s}
		return nil
	}
	type plain Person
	return json.Unmarshal(data, (*plain)(p))
}

func (l *Link) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = Link{Href: value.Value}
		return nil
	}
	type plain Link
	return value.Decode((*plain)(l))
}

func (l *Link) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		*l = Link{Href: s}
		return nil
	}

	type plain Link
	var raw struct {
		plain
		Length any `json:"length"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*l = Link(raw.plain)
	if raw.Length != nil {
		l.Length = fmt.Sprint(raw.Length)
	}
	return nil
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = Category{Term: value.Value}
		return nil
	}
	type plain Category
	return value.Decode((*plain)(c))
}

func (c *Category) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		*c = Category{Term: s}
		return nil
	}
	type plain Category
	return json.Unmarshal(data, (*plain)(c))
}

func (t *Text) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = Text{Content: value.Value}
		return nil
	}
	type plain Text
	return value.Decode((*plain)(t))
}

func (t *Text) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		*t = Text{Content: s}
		return nil
	}
	type plain Text
	return json.Unmarshal(data, (*plain)(t))
}

func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = Content{Content: value.Value}
		return nil
	}
	type plain Content
	return value.Decode((*plain)(c))
}

func (c *Content) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		*c = Content{Content: s}
		return nil
	}
	type plain Content
	return json.Unmarshal(data, (*plain)(c))
}

func (g *Generator) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		if value.ShortTag() == "!!bool" {
			var on bool
			if err := value.Decode(&on); err != nil {
				return err
			}
			*g = Generator{Disabled: !on}
			return nil
		}
		*g = Generator{Content: value.Value}
		return nil
	}
	type plain Generator
	return value.Decode((*plain)(g))
}

func (g *Generator) UnmarshalJSON(data []byte) error {
	var on bool
	if err := json.Unmarshal(data, &on); err == nil {
		*g = Generator{Disabled: !on}
		return nil
	}
	if s, ok := jsonString(data); ok {
		*g = Generator{Content: s}
		return nil
	}
	type plain Generator
	return json.Unmarshal(data, (*plain)(g))
}

func (l *Lang) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("lang must be a string or false, got %s", value.ShortTag())
	}
	if value.ShortTag() == "!!bool" {
		var on bool
		if err := value.Decode(&on); err != nil {
			return err
		}
		*l = Lang{Disabled: !on}
		return nil
	}
	*l = Lang{Tag: value.Value}
	return nil
}

func (l *Lang) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var on bool
	if err := json.Unmarshal(data, &on); err == nil {
		*l = Lang{Disabled: !on}
		return nil
	}
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("lang must be a string or false: %w", err)
	}
	*l = Lang{Tag: tag}
	return nil
}

// Date strings are kept as written and passed through on output.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("date must be a scalar, got %s", value.ShortTag())
	}
	*d = Date{Raw: value.Value}
	return nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s, ok := jsonString(data)
	if !ok {
		return fmt.Errorf("date must be a string, got %s", data)
	}
	*d = Date{Raw: s}
	return nil
}

func jsonString(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}
