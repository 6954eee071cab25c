package service

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// InteractionType selects how a token is acquired when silent acquisition fails.
type InteractionType int

const (
	InteractionPopup InteractionType = iota + 1
	InteractionRedirect
)

// ParseInteractionType parses "popup" or "redirect".
func ParseInteractionType(text string) (InteractionType, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "popup":
		return InteractionPopup, nil
	case "redirect":
		return InteractionRedirect, nil
	}
	return 0, fmt.Errorf("unsupported interaction type: %q", text)
}

func (t InteractionType) String() string {
	switch t {
	case InteractionPopup:
		return "popup"
	case InteractionRedirect:
		return "redirect"
	}
	return fmt.Sprintf("InteractionType(%d)", int(t))
}

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	return t == InteractionPopup || t == InteractionRedirect
}

func (t InteractionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid interaction type: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *InteractionType) UnmarshalText(text []byte) error {
	parsed, err := ParseInteractionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *InteractionType) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(text))
}

func (t InteractionType) MarshalYAML() (interface{}, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}
