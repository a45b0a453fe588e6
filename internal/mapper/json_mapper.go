package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ToJSON encodes a map for a jsonb column. Nil maps are stored as NULL.
func ToJSON(v map[string]interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// FromJSON decodes a jsonb column into a map, ignoring malformed payloads.
func FromJSON(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
