package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseString_AcceptsScalars(t *testing.T) {
	cases := []struct {
		body string
		want LooseString
	}{
		{`{"code":"123456"}`, "123456"},
		{`{"code":123456}`, "123456"},
		{`{"code":12}`, "12"},
		{`{"code":null}`, ""},
		{`{"code":true}`, "true"},
		{`{"code":{"a":1}}`, `{"a":1}`},
		{`{}`, ""},
	}
	for _, tc := range cases {
		var req VerifyTwoFactorRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)
		assert.Equal(t, tc.want, req.Code, tc.body)
	}
}

func TestVerifyTwoFactorRequest_NumericSessionToken(t *testing.T) {
	var req VerifyTwoFactorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"session_token":42,"code":"123456"}`), &req))
	assert.Equal(t, LooseString("42"), req.SessionToken)
}
