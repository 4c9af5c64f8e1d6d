package api

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/diogo/goalchat/internal/models"
)

// PathReply is the field holding the reply in object-shaped responses
const PathReply = "reply"

var (
	errInvalidJSON    = errors.New("response body is not valid JSON")
	errNonStringReply = errors.New("reply field is not a string")
)

// ParseReply normalizes a success body into the reply text.
// A bare JSON string is the reply itself. For anything else the "reply"
// field is used; a missing or null field yields models.FallbackReply and a
// reply of any other non-string kind is an error. When the key repeats, the
// last occurrence wins.
func ParseReply(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if !gjson.ValidBytes(trimmed) {
		return "", errInvalidJSON
	}

	parsed := gjson.ParseBytes(trimmed)
	if parsed.Type == gjson.String {
		return parsed.String(), nil
	}

	if !parsed.IsObject() {
		return models.FallbackReply, nil
	}

	reply := lastField(parsed, PathReply)
	switch {
	case !reply.Exists(), reply.Type == gjson.Null:
		return models.FallbackReply, nil
	case reply.Type == gjson.String:
		return reply.String(), nil
	default:
		return "", errNonStringReply
	}
}

// lastField returns the last value stored under key in obj. gjson.Get stops
// at the first match.
func lastField(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
		}
		return true
	})
	return found
}
