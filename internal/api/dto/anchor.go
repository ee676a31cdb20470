package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"store-route-service/internal/domain"
	"strings"
)

// AnchorInput accepts either a named anchor ("entrance", "exit") or an
// explicit {"x": .., "y": ..} point.
type AnchorInput struct {
	anchor domain.Anchor
	set    bool
}

func (a *AnchorInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return errors.New(`anchor must be "entrance", "exit" or a point`)
	}

	if b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "entrance":
			a.anchor = domain.Entrance()
		case "exit":
			a.anchor = domain.Exit()
		default:
			return fmt.Errorf("unknown anchor %q", name)
		}
		a.set = true
		return nil
	}

	var p struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("anchor point: %w", err)
	}
	if p.X == nil || p.Y == nil {
		return errors.New("anchor point needs both x and y")
	}

	a.anchor = domain.Explicit(domain.Point{X: *p.X, Y: *p.Y})
	a.set = true
	return nil
}

func (a AnchorInput) MarshalJSON() ([]byte, error) {
	if a.anchor.Kind == domain.AnchorPoint {
		return json.Marshal(a.anchor.Point)
	}
	return json.Marshal(a.anchor.Kind.String())
}

// Set reports whether the field was present in the request.
func (a AnchorInput) Set() bool { return a.set }

func (a AnchorInput) Anchor() domain.Anchor { return a.anchor }

func NewAnchorInput(a domain.Anchor) AnchorInput { return AnchorInput{anchor: a, set: true} }
