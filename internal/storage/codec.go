package storage

import (
	"context"
	"mindful/internal/storage/interfaces"

	json "github.com/goccy/go-json"
)

// Load decodes the value stored under key into dst. It reports false when
// the key is absent, leaving dst untouched.
func Load(ctx context.Context, s interfaces.Store, key string, dst any) (bool, error) {
	values, err := s.Get(ctx, key)
	if err != nil {
		return false, wrap("get", []string{key}, err)
	}
	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, wrap("decode", []string{key}, err)
	}
	return true, nil
}

// LoadMany fetches several keys in one call and decodes each present value
// into the matching destination.
func LoadMany(ctx context.Context, s interfaces.Store, dst map[string]any) error {
	keys := make([]string, 0, len(dst))
	for k := range dst {
		keys = append(keys, k)
	}
	values, err := s.Get(ctx, keys...)
	if err != nil {
		return wrap("get", keys, err)
	}
	for k, raw := range values {
		target, ok := dst[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return wrap("decode", []string{k}, err)
		}
	}
	return nil
}

// Save encodes values and writes them in a single Set call.
func Save(ctx context.Context, s interfaces.Store, values map[string]any) error {
	items := make(map[string][]byte, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return wrap("encode", []string{k}, err)
		}
		items[k] = raw
		keys = append(keys, k)
	}
	return wrap("set", keys, s.Set(ctx, items))
}
