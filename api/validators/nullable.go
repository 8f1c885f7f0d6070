package validators

import "encoding/json"

// NullableString distinguishes the three states a PATCH field can take:
// absent (Set false), explicit null (Set true, Null true), and a value.
type NullableString struct {
	Set   bool
	Null  bool
	Value string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Null = true
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}
