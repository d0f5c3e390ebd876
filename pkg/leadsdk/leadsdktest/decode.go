package leadsdktest

import (
	"encoding/json"
	"net/http"
)

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Decode unmarshals a recorded request body into v.
func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}
