package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with the given status. A nil payload yields "null".
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// maxBodyBytes caps JSON request bodies; content payloads are small.
const maxBodyBytes = 1 << 20

var ErrInvalidBody = errors.New("invalid request body")

// DecodeJSON decodes a request body into dst, rejecting oversized bodies.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return ErrInvalidBody
	}
	return nil
}

// DecodeJSONFields decodes like DecodeJSON and additionally reports the
// top-level fields the payload actually carried, so a caller can tell an
// absent field from an explicit zero value.
func DecodeJSONFields(r *http.Request, dst any) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, ErrInvalidBody
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, ErrInvalidBody
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, ErrInvalidBody
	}
	return fields, nil
}
