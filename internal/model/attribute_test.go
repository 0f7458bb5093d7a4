package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeRefs_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AttributeRefs
		wantErr bool
	}{
		{name: "scalar string", input: `"attr-1"`, want: AttributeRefs{"attr-1"}},
		{name: "array", input: `["attr-1","attr-2"]`, want: AttributeRefs{"attr-1", "attr-2"}},
		{name: "empty string", input: `""`, want: nil},
		{name: "empty array", input: `[]`, want: AttributeRefs{}},
		{name: "number rejected", input: `7`, wantErr: true},
		{name: "object rejected", input: `{"id":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var refs AttributeRefs
			err := json.Unmarshal([]byte(tt.input), &refs)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, refs)
		})
	}
}

func TestOrderItemRequest_AcceptsBothAttributeShapes(t *testing.T) {
	var scalar OrderItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":1,"attribute":"attr-1"}`), &scalar))
	assert.Equal(t, AttributeRefs{"attr-1"}, scalar.Attrs)

	var list OrderItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":2,"attribute":["attr-1","attr-2"]}`), &list))
	assert.Equal(t, AttributeRefs{"attr-1", "attr-2"}, list.Attrs)
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, ValidPaymentMethod(m))
	}
	assert.False(t, ValidPaymentMethod("Barter"))
	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("cash"))
}
