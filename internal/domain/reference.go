package domain

import "encoding/json"

// ReferenceDoc is a schema-less read-only document (bus schedules,
// buildings). The legacy API returns these as {"id": ..., ...fields}, so
// marshalling flattens Fields next to the id.
type ReferenceDoc struct {
	ID     string
	Fields map[string]any
}

func (d ReferenceDoc) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		flat[k] = v
	}
	flat["id"] = d.ID
	return json.Marshal(flat)
}

func (d *ReferenceDoc) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if id, ok := flat["id"].(string); ok {
		d.ID = id
	}
	delete(flat, "id")
	d.Fields = flat
	return nil
}
