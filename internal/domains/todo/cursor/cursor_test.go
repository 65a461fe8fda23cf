package cursor_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keel/internal/domains/todo/cursor"
	"keel/internal/domains/todo/model"
	"keel/internal/domains/todo/store"
	"keel/shared/failure"
)

func TestCursor_RoundTrip(t *testing.T) {
	pos := store.Position{
		model.FieldOwnerID:   &types.AttributeValueMemberS{Value: "owner-1"},
		model.FieldTodoID:    &types.AttributeValueMemberS{Value: "todo-42"},
		model.FieldCreatedAt: &types.AttributeValueMemberS{Value: "2025-06-01T10:00:00Z"},
	}

	token, err := cursor.Encode(pos)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	decoded, err := cursor.Decode(token)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	for _, field := range []string{model.FieldOwnerID, model.FieldTodoID, model.FieldCreatedAt} {
		want, ok := pos[field].(*types.AttributeValueMemberS)
		require.True(t, ok)

		got, ok := decoded[field].(*types.AttributeValueMemberS)
		require.True(t, ok, "field %s should decode as a string attribute", field)
		assert.Equal(t, want.Value, got.Value)
	}
}

func TestCursor_EncodeNilPosition(t *testing.T) {
	token, err := cursor.Encode(nil)

	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestCursor_DecodeEmptyToken(t *testing.T) {
	pos, err := cursor.Decode("")

	require.NoError(t, err)
	assert.Nil(t, pos)
}

func TestCursor_DecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "not json",
			token: "definitely-not-json",
		},
		{
			name:  "invalid percent encoding",
			token: "%zz",
		},
		{
			name:  "json array instead of object",
			token: "%5B1%2C2%5D",
		},
		{
			name:  "empty json object",
			token: "%7B%7D",
		},
		{
			name:  "truncated json",
			token: "%7B%22todo_id%22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := cursor.Decode(tt.token)

			require.Error(t, err)
			assert.Nil(t, pos)
			assert.True(t, failure.IsKind(err, failure.KindMalformedCursor))
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}
