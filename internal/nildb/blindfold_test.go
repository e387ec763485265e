package nildb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsAllot(t *testing.T) {
	req := require.New(t)

	req.False(ContainsAllot(nil))
	req.False(ContainsAllot("plain"))
	req.False(ContainsAllot(Document{"_id": "1", "nested": map[string]any{"a": 1}}))
	req.True(ContainsAllot(Document{"title": Allot("secret")}))
	req.True(ContainsAllot(map[string]any{"deep": map[string]any{"list": []any{1, map[string]any{AllotKey: "x"}}}}))
	req.True(ContainsAllot([]Document{{"a": 1}, {"b": Allot("x")}}))
}

func TestXORSharerRoundTrip(t *testing.T) {
	req := require.New(t)
	doc := Document{
		"_id":     "m1",
		"order":   3,
		"content": Allot("the quick brown fox"),
		"meta":    map[string]any{"tags": []any{"a", Allot("b")}},
	}

	shares, err := XORSharer{}.Share(doc, 3)
	req.NoError(err)
	req.Len(shares, 3)

	contents := make([]string, 0, 3)
	tags := make([]string, 0, 3)
	for _, share := range shares {
		req.Equal("m1", share["_id"])
		req.Equal(3, share["order"])
		contents = append(contents, share["content"].(map[string]any)[ShareKey].(string))
		tag := share["meta"].(map[string]any)["tags"].([]any)
		req.Equal("a", tag[0])
		tags = append(tags, tag[1].(map[string]any)[ShareKey].(string))
	}

	plain, err := Combine(contents)
	req.NoError(err)
	req.Equal("the quick brown fox", plain)

	tag, err := Combine(tags)
	req.NoError(err)
	req.Equal("b", tag)

	partial, err := Combine(contents[:2])
	req.NoError(err)
	req.NotEqual("the quick brown fox", partial)
}

func TestXORSharerRejectsNonStringSecrets(t *testing.T) {
	_, err := XORSharer{}.Share(Document{"n": map[string]any{AllotKey: 42}}, 2)
	require.Error(t, err)
}
