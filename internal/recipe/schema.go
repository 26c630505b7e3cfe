package recipe

import "github.com/hammamikhairi/geminichef/internal/domain"

// requiredFields lists the JSON names of every Recipe field, in the order
// the model is asked to emit them.
var requiredFields = []string{
	"id", "name", "description", "ingredients", "instructions", "estimatedTime", "difficulty",
}

// ResponseSchema declares the response shape: an array of recipe objects
// with every field required. A fresh value is returned on each call.
func ResponseSchema() *domain.Schema {
	str := func() *domain.Schema { return &domain.Schema{Type: domain.TypeString} }
	strList := func() *domain.Schema {
		return &domain.Schema{Type: domain.TypeArray, Items: str()}
	}

	difficulties := make([]string, 0, len(domain.Difficulties()))
	for _, d := range domain.Difficulties() {
		difficulties = append(difficulties, string(d))
	}

	return &domain.Schema{
		Type: domain.TypeArray,
		Items: &domain.Schema{
			Type: domain.TypeObject,
			Properties: map[string]*domain.Schema{
				"id":            str(),
				"name":          str(),
				"description":   str(),
				"ingredients":   strList(),
				"instructions":  strList(),
				"estimatedTime": str(),
				"difficulty": {
					Type:   domain.TypeString,
					Format: "enum",
					Enum:   difficulties,
				},
			},
			Required:         append([]string(nil), requiredFields...),
			PropertyOrdering: append([]string(nil), requiredFields...),
		},
	}
}
