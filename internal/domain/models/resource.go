package models

import (
	"bytes"
	"encoding/json"
)

// Resource is a catalog entry as returned by the remote CMS.
//
// Summary and URL map to the CMS's commonSummary / commonUrl fields on the
// resources_Entry type. Summary may contain HTML and must be sanitized before
// rendering.
type Resource struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Summary            string     `json:"commonSummary"`
	URL                string     `json:"commonUrl"`
	ResourceType       Category   `json:"resourceType"`
	ResourceCategories []Category `json:"resourceCategories"`
}

// UnmarshalJSON accepts resourceType either as a single {id,title} object or
// as a list of them. Entries fields in the CMS always serialize as lists even
// when editors are limited to one value; the first element wins.
func (r *Resource) UnmarshalJSON(b []byte) error {
	type plain Resource
	var aux struct {
		plain
		ResourceType json.RawMessage `json:"resourceType"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Resource(aux.plain)
	r.ResourceType = Category{}

	raw := bytes.TrimSpace(aux.ResourceType)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil
	case raw[0] == '[':
		var list []Category
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			r.ResourceType = list[0]
		}
		return nil
	default:
		return json.Unmarshal(raw, &r.ResourceType)
	}
}

// HasType reports whether the entry carries a resource type.
func (r Resource) HasType() bool {
	return r.ResourceType.ID != "" || r.ResourceType.Title != ""
}
