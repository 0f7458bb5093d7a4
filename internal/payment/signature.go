package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Canonicalize serialises a payload to the query-string form the gateway
// signs: top-level keys in alphabetical order joined as key=value with &,
// array values JSON-serialised with each element's own keys sorted, and
// null/undefined (including the literal strings) rendered as empty string.
func Canonicalize(data map[string]interface{}) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+canonicalValue(data[k]))
	}
	return strings.Join(pairs, "&")
}

// Sign computes the lowercase hex HMAC-SHA256 of the canonicalized payload.
func Sign(data map[string]interface{}, key string) string {
	return SignString(Canonicalize(data), key)
}

// SignString computes the lowercase hex HMAC-SHA256 of an already
// canonicalized string.
func SignString(canonical, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the payload signature and compares it byte-for-byte
// against the received one.
func Verify(data map[string]interface{}, key, signature string) bool {
	expected := Sign(data, key)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// canonicalValue renders one payload value. Numbers keep their shortest
// decimal form, arrays become sorted-key JSON, nils and the null/undefined
// literals become empty strings.
func canonicalValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if val == "null" || val == "undefined" {
			return ""
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case []interface{}:
		return marshalSorted(sortArrayKeys(val))
	case map[string]interface{}:
		return marshalSorted(val)
	default:
		return marshalSorted(val)
	}
}

// sortArrayKeys returns the array with every map element rebuilt; Go's JSON
// encoder already writes map keys in sorted order, so rebuilding is enough.
func sortArrayKeys(arr []interface{}) []interface{} {
	out := make([]interface{}, len(arr))
	copy(out, arr)
	return out
}

// marshalSorted JSON-encodes without HTML escaping, matching the
// serialisation the gateway signs.
func marshalSorted(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
