package formbook

import (
	"encoding/json"

	"github.com/ukaji3/formbook-go/pkg/formbook/models"
)

// toMap converts v to its generic JSON object form.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromMap decodes a generic JSON object into a questionnaire.
func fromMap(m map[string]any) (*models.QuestionnaireData, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	data := models.DefaultQuestionnaire()
	if err := json.Unmarshal(b, data); err != nil {
		return nil, err
	}
	return data, nil
}

// deepMerge merges src into dst. Objects merge recursively; arrays and
// scalars from src replace those in dst.
func deepMerge(dst, src map[string]any) {
	for key, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			deepMerge(dm, sm)
			continue
		}
		dst[key] = sv
	}
}
