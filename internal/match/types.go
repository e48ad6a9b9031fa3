// Package match builds match requests from form input and submits them to
// the Skill Exchange matching service.
package match

import "strings"

// FormInput is the raw text entered into the form.
type FormInput struct {
	Identifier string
	RawSkills  string
}

// MatchRequest is the payload sent to the matching service.
type MatchRequest struct {
	ID     string   `json:"id"`
	Skills []string `json:"skills"`
}

// ParseSkills splits raw on commas, trims each token and drops the ones that
// end up empty. Order and duplicates are kept. The result is never nil.
func ParseSkills(raw string) []string {
	skills := make([]string, 0)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		skills = append(skills, tok)
	}
	return skills
}

// NewRequest derives a MatchRequest from the form input. The identifier is
// used verbatim, empty or not.
func NewRequest(in FormInput) MatchRequest {
	return MatchRequest{
		ID:     in.Identifier,
		Skills: ParseSkills(in.RawSkills),
	}
}
