package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront/pkg/response"
)

// maxBodyBytes mirrors the 100kb default limit of common JSON body parsers.
const maxBodyBytes = 100 << 10

var (
	ErrBodyTooLarge = errors.New("request body too large")
	ErrTrailingData = errors.New("unexpected data after JSON body")
)

// DecodeJSON decodes the request body into v. An empty body leaves v untouched
// and is not an error, so callers see it as {}.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return tooLarge(err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return ErrTrailingData
		}
		if tl := tooLarge(err); errors.Is(tl, ErrBodyTooLarge) {
			return tl
		}
		return ErrTrailingData
	}
	return nil
}

func tooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return ErrBodyTooLarge
	}
	return err
}

// WriteError answers a request whose body DecodeJSON rejected.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		response.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	response.Fail(w, http.StatusBadRequest, "Invalid request body")
}
