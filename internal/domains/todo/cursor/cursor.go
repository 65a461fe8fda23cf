// Package cursor converts the store-native resume position of a paginated
// scan into a URL-safe token and back. The codec checks structure only; it
// never interprets the fields inside a position, and a token carries no
// authorization — the service pairs a decoded position with the owner making
// the request.
package cursor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"keel/internal/domains/todo/store"
	"keel/shared/constant"
	"keel/shared/failure"
)

var errEmptyPosition = errors.New("cursor does not contain a key")

// Encode serializes a resume position as a percent-encoded JSON object.
// A nil position yields the empty token: there are no further pages.
func Encode(pos store.Position) (string, error) {
	if pos == nil {
		return constant.Empty, nil
	}

	plain := map[string]any{}
	if err := attributevalue.UnmarshalMap(pos, &plain); err != nil {
		return constant.Empty, fmt.Errorf("failed to convert position: %w", err)
	}

	raw, err := json.Marshal(plain)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal position: %w", err)
	}

	return url.QueryEscape(string(raw)), nil
}

// Decode is the inverse of Encode. The empty token yields a nil position:
// start from the first page. A token that does not decode to a non-empty
// JSON object fails with a malformed-cursor error; the caller must restart
// pagination from the beginning.
func Decode(token string) (store.Position, error) {
	if token == constant.Empty {
		return nil, nil
	}

	raw, err := url.QueryUnescape(token)
	if err != nil {
		return nil, failure.MalformedCursor(err)
	}

	plain := map[string]any{}
	if err = json.Unmarshal([]byte(raw), &plain); err != nil {
		return nil, failure.MalformedCursor(err)
	}

	if len(plain) == 0 {
		return nil, failure.MalformedCursor(errEmptyPosition)
	}

	pos, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, failure.MalformedCursor(err)
	}

	return store.Position(pos), nil
}
