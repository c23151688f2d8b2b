package model

import "strings"

// dangerObjects are detector labels that warrant an immediate warning to the user
var dangerObjects = map[string]struct{}{
	"car":        {},
	"truck":      {},
	"bus":        {},
	"motorcycle": {},
	"bicycle":    {},
	"person":     {},
}

// Scene is the visual context supplied with a turn. All fields are optional;
// the caption comes from an external captioning model, objects from an object
// detector and text from OCR.
type Scene struct {
	Caption string
	Objects []string
	Text    string
}

// VisualContext renders the scene as free text for the prompt. The second
// value is false when there is nothing to describe.
func (s *Scene) VisualContext() (string, bool) {
	if s == nil {
		return "", false
	}

	var parts []string
	if caption := strings.TrimSpace(s.Caption); caption != "" {
		parts = append(parts, caption)
	}
	if len(s.Objects) > 0 {
		parts = append(parts, "Объекты: "+strings.Join(s.Objects, ", "))
	}
	if text := strings.TrimSpace(s.Text); text != "" {
		parts = append(parts, "Видимый текст: "+text)
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ". "), true
}

// IsDanger reports whether any detected object is a traffic or collision hazard
func (s *Scene) IsDanger() bool {
	if s == nil {
		return false
	}
	for _, obj := range s.Objects {
		if _, ok := dangerObjects[strings.ToLower(strings.TrimSpace(obj))]; ok {
			return true
		}
	}
	return false
}
