package resolve

// ParseIndex extracts channel-id→name pairs from a decoded global index
// file. Three shapes have been seen across export revisions:
//
//	[{"id": "...", "name": "..."}, ...]
//	{"channels": [{"id": "...", "name": "..."}, ...]}
//	{"<id>": "<name>", ...} or {"<id>": {"name": "..."}, ...}
//
// Anything unrecognized contributes nothing; the index is an override
// layer, never a dependency.
func ParseIndex(v interface{}) map[string]string {
	out := make(map[string]string)

	switch t := v.(type) {
	case []interface{}:
		addIndexRows(out, t)
	case map[string]interface{}:
		if rows, ok := t["channels"].([]interface{}); ok {
			addIndexRows(out, rows)
			break
		}
		for id, val := range t {
			switch name := val.(type) {
			case string:
				if name != "" {
					out[id] = name
				}
			case map[string]interface{}:
				if s, ok := name["name"].(string); ok && s != "" {
					out[id] = s
				}
			}
		}
	}

	return out
}

func addIndexRows(out map[string]string, rows []interface{}) {
	for _, row := range rows {
		obj, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		name, _ := obj["name"].(string)
		if id != "" && name != "" {
			out[id] = name
		}
	}
}
