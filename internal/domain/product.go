package domain

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProductSpec holds the product attributes collected from the user.
// Every field must be non-empty before a description can be generated.
type ProductSpec struct {
	Title    string     `json:"title" validate:"required"`
	Details  []string   `json:"details" validate:"min=1,dive,required"`
	Audience []Audience `json:"audience" validate:"min=1,dive,audience"`
	Tone     Tone       `json:"tone" validate:"required,tone"`
	Length   Length     `json:"length" validate:"required,length"`
	Keywords []string   `json:"keywords" validate:"min=1,dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so messages match the form and API.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "tone", func(fl validator.FieldLevel) bool {
		return Tone(fl.Field().String()).Valid()
	})
	mustRegister(v, "length", func(fl validator.FieldLevel) bool {
		return Length(fl.Field().String()).Valid()
	})
	mustRegister(v, "audience", func(fl validator.FieldLevel) bool {
		return Audience(fl.Field().String()).Valid()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Normalize trims the title, drops blank list items, and canonicalises the
// audience, tone and length labels. It returns a new ProductSpec.
func (p ProductSpec) Normalize() ProductSpec {
	audience := make([]string, len(p.Audience))
	for i, a := range p.Audience {
		audience[i] = string(a)
	}

	return ProductSpec{
		Title:    strings.TrimSpace(p.Title),
		Details:  compact(p.Details),
		Audience: NormalizeAudience(audience),
		Tone:     ParseTone(string(p.Tone)),
		Length:   ParseLength(string(p.Length)),
		Keywords: compact(p.Keywords),
	}
}

// Validate checks that every field is present and that tone, length and
// audience come from their vocabularies. It returns a *ValidationError naming
// each offending field in declaration order.
func (p ProductSpec) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	seen := make(map[string]bool, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name, _, _ := strings.Cut(fe.Field(), "[")
		if !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}
	return &ValidationError{Fields: fields}
}

// AudienceLabels returns the audience as plain strings.
func (p ProductSpec) AudienceLabels() []string {
	labels := make([]string, len(p.Audience))
	for i, a := range p.Audience {
		labels[i] = string(a)
	}
	return labels
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Description is the outcome of one generation request. It is never stored.
type Description struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	HTML      string    `json:"html,omitempty"`
	Prompt    string    `json:"-"`
	Blocked   bool      `json:"blocked"`
	Attempts  int       `json:"attempts"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDescription stamps a fresh ID and creation time on generated text.
func NewDescription(text, prompt, model string, attempts int, blocked bool) *Description {
	return &Description{
		ID:        uuid.New(),
		Text:      text,
		Prompt:    prompt,
		Blocked:   blocked,
		Attempts:  attempts,
		Model:     model,
		CreatedAt: time.Now().UTC(),
	}
}

// Empty reports whether no usable text was produced.
func (d *Description) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}
