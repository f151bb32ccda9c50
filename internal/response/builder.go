package response

import (
	"encoding/json"
)

type response struct {
	Error string `json:"error"`
}

// Build error body for a failed request.
func Build(err error) []byte {
	body, _ := json.Marshal(response{
		Error: err.Error(),
	})
	return body
}
