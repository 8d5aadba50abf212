package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Event is the invocation payload. Body is either a JSON document encoded as a
// string (API Gateway proxy) or the document itself (direct invocation).
type Event struct {
	Body json.RawMessage `json:"body,omitempty"`
}

// Response is the invocation result in API Gateway proxy shape.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type errorBody struct {
	Error string `json:"error"`
}

type successBody struct {
	Message string `json:"message"`
	S3Key   string `json:"s3_key"`
}

var (
	errBodyNotObject = errors.New("request body must be a JSON object")
	errExtraData     = errors.New("request body has extra data after the JSON document")
)

// payload decodes the request document. Only an absent body is an empty
// document; a null one is rejected like any other non-object.
func (e Event) payload() (map[string]any, error) {
	raw := bytes.TrimSpace(e.Body)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		raw = []byte(s)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errExtraData
	}
	if body == nil {
		return nil, errBodyNotObject
	}
	return body, nil
}

func encodeBody(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return `{"error": "failed to encode response"}`
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func errorResponse(status int, message string) Response {
	return Response{StatusCode: status, Body: encodeBody(errorBody{Error: message})}
}
