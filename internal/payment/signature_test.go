package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_SortsKeys(t *testing.T) {
	data := map[string]interface{}{
		"orderCode":   float64(7),
		"amount":      float64(100),
		"returnUrl":   "https://y",
		"cancelUrl":   "https://x",
		"description": "pay",
	}

	canonical := Canonicalize(data)

	assert.Equal(t, "amount=100&cancelUrl=https://x&description=pay&orderCode=7&returnUrl=https://y", canonical)
}

func TestCanonicalize_NullAndUndefinedBecomeEmpty(t *testing.T) {
	data := map[string]interface{}{
		"a": nil,
		"b": "null",
		"c": "undefined",
		"d": "value",
	}

	assert.Equal(t, "a=&b=&c=&d=value", Canonicalize(data))
}

func TestCanonicalize_NumbersAndBools(t *testing.T) {
	data := map[string]interface{}{
		"amount":  float64(100.5),
		"whole":   float64(5000),
		"success": true,
	}

	assert.Equal(t, "amount=100.5&success=true&whole=5000", Canonicalize(data))
}

func TestCanonicalize_ArraysSerialisedWithSortedElementKeys(t *testing.T) {
	data := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"b": float64(2), "a": float64(1)},
		},
	}

	assert.Equal(t, `items=[{"a":1,"b":2}]`, Canonicalize(data))
}

func TestSign_KnownVectors(t *testing.T) {
	// Digests computed independently over the canonical strings.
	data := map[string]interface{}{
		"amount":      float64(100),
		"cancelUrl":   "https://x",
		"description": "pay",
		"orderCode":   float64(7),
		"returnUrl":   "https://y",
	}

	assert.Equal(t,
		"94c6ef09d8950142c1880801e4e336178e9e027b59be20fae342afeb73a4f298",
		Sign(data, "k1"))

	data["amount"] = float64(101)
	assert.Equal(t,
		"0eed31f9d3d703f2f2d9943204ff250924efbba48f440583eed10e5cb852de7c",
		Sign(data, "k1"))
}

func TestSign_WebhookShapedPayload(t *testing.T) {
	data := map[string]interface{}{
		"amount": float64(5000),
		"code":   "00",
		"items": []interface{}{
			map[string]interface{}{"a": float64(1), "b": float64(2)},
		},
		"note": nil,
	}

	require.Equal(t, `amount=5000&code=00&items=[{"a":1,"b":2}]&note=`, Canonicalize(data))
	assert.Equal(t,
		"75ce1f4ac258fc39e1ca2bc71d822469fce48b806ae0699c0f8126d73b034568",
		Sign(data, "secret-checksum"))
}

func TestVerify(t *testing.T) {
	data := map[string]interface{}{
		"orderCode": float64(42),
		"amount":    float64(1000),
	}
	key := "verify-key"

	sig := Sign(data, key)

	assert.True(t, Verify(data, key, sig))
	assert.False(t, Verify(data, key, sig[:len(sig)-1]+"x"))
	assert.False(t, Verify(data, "wrong-key", sig))

	// Any change to the data invalidates the signature.
	data["amount"] = float64(1001)
	assert.False(t, Verify(data, key, sig))
}

func TestVerifier_Verify(t *testing.T) {
	key := "hook-key"
	v := NewVerifier(key)

	data := map[string]interface{}{
		"orderCode": float64(9),
		"amount":    float64(150000),
		"code":      "00",
	}

	payload := WebhookPayload{
		Code:      "00",
		Desc:      "success",
		Success:   true,
		Data:      data,
		Signature: Sign(data, key),
	}

	assert.True(t, v.Verify(payload))

	payload.Signature = "deadbeef"
	assert.False(t, v.Verify(payload))

	payload.Signature = ""
	assert.False(t, v.Verify(payload))

	payload.Data = nil
	payload.Signature = "anything"
	assert.False(t, v.Verify(payload))
}
