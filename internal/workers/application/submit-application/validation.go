package submitapplication

import "workbridge-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"jobId", "seekerId"},
		Properties: map[string]validation.Property{
			"jobId": {
				Type:        "string",
				Description: "Job posting identifier",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(255),
			},
			"seekerId": {
				Type:        "string",
				Description: "Applying seeker identifier",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(255),
			},
		},
		AdditionalProperties: true,
	}
}

func intPtr(i int) *int {
	return &i
}
