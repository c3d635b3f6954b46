package gemini

// Schema is the subset of the generative API's response-schema language the
// study generators need. It constrains structured JSON completions.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func StringSchema() *Schema {
	return &Schema{Type: "STRING"}
}

func IntegerSchema() *Schema {
	return &Schema{Type: "INTEGER"}
}

func ArraySchema(items *Schema) *Schema {
	return &Schema{Type: "ARRAY", Items: items}
}

func ObjectSchema(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "OBJECT", Properties: properties, Required: required}
}
