package entities

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// StringList decodes a JSON column holding a list of strings. A nil or
// malformed column decodes to an empty list.
func StringList(j datatypes.JSON) []string {
	if len(j) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}

// JSONList encodes a list of strings for storage in a JSON column.
// A nil slice encodes as an empty JSON array rather than SQL NULL.
func JSONList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
