package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRequest_WithScopes(t *testing.T) {
	var nilRequest *Request
	assert.Equal(t, &Request{Scopes: []string{"a"}}, nilRequest.WithScopes([]string{"a"}))

	extras := &Request{Scopes: []string{"ignored"}, Prompt: "login", ExtraQueryParameters: map[string]string{"k": "v"}}
	merged := extras.WithScopes([]string{"api.read"})
	assert.Equal(t, []string{"api.read"}, merged.Scopes)
	assert.Equal(t, "login", merged.Prompt)
	merged.ExtraQueryParameters["k"] = "changed"
	assert.Equal(t, "v", extras.ExtraQueryParameters["k"])
	assert.Equal(t, []string{"ignored"}, extras.Scopes)
}

func TestInteractionType(t *testing.T) {
	var testCases = []struct {
		text      string
		expect    InteractionType
		expectErr bool
	}{
		{text: "popup", expect: InteractionPopup},
		{text: "Redirect", expect: InteractionRedirect},
		{text: "silent", expectErr: true},
	}
	for _, testCase := range testCases {
		var actual InteractionType
		err := yaml.Unmarshal([]byte(testCase.text), &actual)
		if testCase.expectErr {
			assert.Error(t, err, testCase.text)
			continue
		}
		require.NoError(t, err, testCase.text)
		assert.Equal(t, testCase.expect, actual, testCase.text)
	}
	assert.Equal(t, "redirect", InteractionRedirect.String())
	assert.False(t, InteractionType(0).Valid())
	_, err := InteractionType(0).MarshalText()
	assert.Error(t, err)
}

func TestWriterNavigator(t *testing.T) {
	buffer := &bytes.Buffer{}
	require.NoError(t, NewWriterNavigator(buffer).Navigate(context.Background(), "https://login.example.com/authorize"))
	assert.Contains(t, buffer.String(), "https://login.example.com/authorize")
}
