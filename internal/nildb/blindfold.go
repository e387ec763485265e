package nildb

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	AllotKey = "%allot"
	ShareKey = "%share"
)

// Allot marks a value for secret sharing before storage.
func Allot(v string) Document {
	return Document{AllotKey: v}
}

// ContainsAllot reports whether data carries an %allot marker at any depth.
func ContainsAllot(data any) bool {
	switch v := data.(type) {
	case nil:
		return false
	case Document:
		return containsAllotMap(v)
	case map[string]any:
		return containsAllotMap(v)
	case []Document:
		for _, item := range v {
			if containsAllotMap(item) {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if ContainsAllot(item) {
				return true
			}
		}
	}
	return false
}

func containsAllotMap(m map[string]any) bool {
	if _, ok := m[AllotKey]; ok {
		return true
	}
	for _, value := range m {
		if ContainsAllot(value) {
			return true
		}
	}
	return false
}

// Sharer turns a document with allotted fields into one document per node.
type Sharer interface {
	Share(doc Document, parts int) ([]Document, error)
}

// XORSharer splits each allotted string into XOR shares. Combining every
// share with XOR yields the plaintext; any strict subset reveals nothing.
type XORSharer struct {
	Rand io.Reader
}

func (s XORSharer) random() io.Reader {
	if s.Rand != nil {
		return s.Rand
	}
	return rand.Reader
}

func (s XORSharer) Share(doc Document, parts int) ([]Document, error) {
	if parts < 1 {
		return nil, fmt.Errorf("share into %d parts", parts)
	}
	out, err := s.shareValue(map[string]any(doc), parts)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, parts)
	for i := range out {
		docs[i] = Document(out[i].(map[string]any))
	}
	return docs, nil
}

func (s XORSharer) shareValue(v any, parts int) ([]any, error) {
	out := make([]any, parts)

	switch val := v.(type) {
	case Document:
		return s.shareValue(map[string]any(val), parts)
	case map[string]any:
		if secret, ok := val[AllotKey]; ok {
			str, ok := secret.(string)
			if !ok {
				return nil, fmt.Errorf("%s value must be a string, got %T", AllotKey, secret)
			}
			shares, err := s.split([]byte(str), parts)
			if err != nil {
				return nil, err
			}
			for i, share := range shares {
				out[i] = map[string]any{ShareKey: base64.StdEncoding.EncodeToString(share)}
			}
			return out, nil
		}

		for i := range out {
			out[i] = make(map[string]any, len(val))
		}
		for key, field := range val {
			shared, err := s.shareValue(field, parts)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			for i := range out {
				out[i].(map[string]any)[key] = shared[i]
			}
		}
		return out, nil
	case []any:
		for i := range out {
			out[i] = make([]any, len(val))
		}
		for idx, item := range val {
			shared, err := s.shareValue(item, parts)
			if err != nil {
				return nil, err
			}
			for i := range out {
				out[i].([]any)[idx] = shared[i]
			}
		}
		return out, nil
	default:
		for i := range out {
			out[i] = v
		}
		return out, nil
	}
}

func (s XORSharer) split(secret []byte, parts int) ([][]byte, error) {
	shares := make([][]byte, parts)
	last := append([]byte(nil), secret...)
	for i := 0; i < parts-1; i++ {
		share := make([]byte, len(secret))
		if _, err := io.ReadFull(s.random(), share); err != nil {
			return nil, fmt.Errorf("read randomness: %w", err)
		}
		for j := range last {
			last[j] ^= share[j]
		}
		shares[i] = share
	}
	shares[parts-1] = last
	return shares, nil
}

// Combine reverses XORSharer for a single field given every node's share.
func Combine(shares []string) (string, error) {
	if len(shares) == 0 {
		return "", fmt.Errorf("no shares")
	}
	var out []byte
	for i, encoded := range shares {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return "", fmt.Errorf("share %d: %w", i, err)
		}
		if out == nil {
			out = make([]byte, len(raw))
		}
		if len(raw) != len(out) {
			return "", fmt.Errorf("share %d has length %d, want %d", i, len(raw), len(out))
		}
		for j := range raw {
			out[j] ^= raw[j]
		}
	}
	return string(out), nil
}
