package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList_Allowed(t *testing.T) {
	var testCases = []struct {
		description string
		patterns    []string
		url         string
		expect      bool
	}{
		{description: "default pattern", patterns: DefaultPatterns, url: "https://localhost:44351/api/azure/items", expect: true},
		{description: "nothing after azure/", patterns: DefaultPatterns, url: "https://localhost:44351/api/azure/", expect: false},
		{description: "different controller", patterns: DefaultPatterns, url: "https://localhost:44351/api/todolist", expect: false},
		{description: "no marker", patterns: DefaultPatterns, url: "https://graph.microsoft.com/v1.0/me", expect: false},
		{description: "marker at position zero", patterns: DefaultPatterns, url: "api/azure/items", expect: false},
		{description: "unanchored match", patterns: []string{"orders"}, url: "https://example.com/api/v1/orders/1", expect: true},
		{description: "any pattern", patterns: []string{"users", "orders"}, url: "https://example.com/api/orders", expect: true},
		{description: "no patterns", url: "https://example.com/api/orders", expect: false},
	}
	for _, testCase := range testCases {
		allowList := MustAllowList(testCase.patterns...)
		assert.Equal(t, testCase.expect, allowList.Allowed(testCase.url), testCase.description)
	}
}

func TestAllowList_Nil(t *testing.T) {
	var allowList *AllowList
	assert.True(t, allowList.Allowed("https://example.com/anything"))
	assert.Nil(t, allowList.Patterns())
}

func TestNewAllowList_Invalid(t *testing.T) {
	_, err := NewAllowList("(")
	assert.Error(t, err)
	assert.Panics(t, func() { MustAllowList("(") })
	assert.Equal(t, DefaultPatterns, DefaultAllowList().Patterns())
}
