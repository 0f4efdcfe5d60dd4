package auth

import (
	"bytes"
	"encoding/json"
)

// LooseString is a request field that clients may send as a JSON string or as
// a bare scalar. Non-string values keep their literal JSON text, so the number
// 123456 reads as "123456" and null reads as "".
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = LooseString(x)
	case json.Number:
		*s = LooseString(x.String())
	default:
		*s = LooseString(bytes.TrimSpace(b))
	}
	return nil
}
