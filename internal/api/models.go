package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/prodwriter/internal/domain"
)

// DescriptionRequest is the payload for POST /api/descriptions.
// Tone and length accept either the value or the form label.
type DescriptionRequest struct {
	Title    string   `json:"title"`
	Details  []string `json:"details"`
	Audience []string `json:"audience"`
	Tone     string   `json:"tone"`
	Length   string   `json:"length"`
	Keywords []string `json:"keywords"`
}

// ToProductSpec converts the request; normalisation and validation happen in the service.
func (r DescriptionRequest) ToProductSpec() domain.ProductSpec {
	audience := make([]domain.Audience, len(r.Audience))
	for i, a := range r.Audience {
		audience[i] = domain.Audience(a)
	}

	return domain.ProductSpec{
		Title:    r.Title,
		Details:  r.Details,
		Audience: audience,
		Tone:     domain.Tone(r.Tone),
		Length:   domain.Length(r.Length),
		Keywords: r.Keywords,
	}
}

// DescriptionResponse is a generated description. Text is empty when the model
// produced nothing usable; Blocked tells whether safety filters were the cause.
type DescriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	Blocked   bool      `json:"blocked"`
	Attempts  int       `json:"attempts"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

func descriptionToResponse(d *domain.Description) DescriptionResponse {
	return DescriptionResponse{
		ID:        d.ID,
		Text:      d.Text,
		HTML:      d.HTML,
		Blocked:   d.Blocked,
		Attempts:  d.Attempts,
		Model:     d.Model,
		CreatedAt: d.CreatedAt,
	}
}

// LengthOption is a selectable description length.
type LengthOption struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	WordTarget int    `json:"word_target"`
}

// OptionsResponse lists the closed vocabularies accepted by the API.
type OptionsResponse struct {
	Audiences []string       `json:"audiences"`
	Tones     []string       `json:"tones"`
	Lengths   []LengthOption `json:"lengths"`
}

func newOptionsResponse() OptionsResponse {
	resp := OptionsResponse{
		Audiences: make([]string, 0, len(domain.Audiences)),
		Tones:     make([]string, 0, len(domain.Tones)),
		Lengths:   make([]LengthOption, 0, len(domain.Lengths)),
	}
	for _, a := range domain.Audiences {
		resp.Audiences = append(resp.Audiences, string(a))
	}
	for _, t := range domain.Tones {
		resp.Tones = append(resp.Tones, string(t))
	}
	for _, l := range domain.Lengths {
		resp.Lengths = append(resp.Lengths, LengthOption{
			Value:      string(l),
			Label:      l.Label(),
			WordTarget: l.WordTarget(),
		})
	}
	return resp
}
