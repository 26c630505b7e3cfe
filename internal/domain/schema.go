package domain

// SchemaType is an OpenAPI-subset type name as understood by the
// generation service.
type SchemaType string

const (
	TypeString SchemaType = "STRING"
	TypeArray  SchemaType = "ARRAY"
	TypeObject SchemaType = "OBJECT"
)

// Schema declares the shape the generation service must answer in.
type Schema struct {
	Type             SchemaType         `json:"type"`
	Format           string             `json:"format,omitempty"`
	Enum             []string           `json:"enum,omitempty"`
	Items            *Schema            `json:"items,omitempty"`
	Properties       map[string]*Schema `json:"properties,omitempty"`
	Required         []string           `json:"required,omitempty"`
	PropertyOrdering []string           `json:"propertyOrdering,omitempty"`
}
