package persona

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/zhpersona/internal/platform/errors"
)

// Gender filters the generated sex.
type Gender string

const (
	GenderAny    Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Age limits.
const (
	DefaultMinAge = 18
	DefaultMaxAge = 65
	MaxAge        = 150
)

// ParseGender accepts English and Chinese spellings. Empty and "any" mean
// no filter.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "random", "不限":
		return GenderAny, nil
	case "male", "m", "男":
		return GenderMale, nil
	case "female", "f", "女":
		return GenderFemale, nil
	}
	return "", apperrors.WithMetadata(apperrors.CodeInvalidArgument,
		"gender must be male, female or any", map[string]string{"field": "gender", "value": s})
}

// AgeRange is an inclusive age interval in years.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultAgeRange is used when a caller does not pass one.
func DefaultAgeRange() AgeRange {
	return AgeRange{Min: DefaultMinAge, Max: DefaultMaxAge}
}

// ParseAgeRange reads "min-max" or a single age. Empty input yields the
// default range.
func ParseAgeRange(s string) (AgeRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultAgeRange(), nil
	}
	invalid := func() error {
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"age must be a number or a min-max range", map[string]string{"field": "age", "value": s})
	}
	lo, hi, ranged := strings.Cut(s, "-")
	minAge, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return AgeRange{}, invalid()
	}
	maxAge := minAge
	if ranged {
		if maxAge, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
			return AgeRange{}, invalid()
		}
	}
	r := AgeRange{Min: minAge, Max: maxAge}
	return r, r.Validate()
}

// Validate rejects negative, inverted and implausible ranges.
func (r AgeRange) Validate() error {
	meta := map[string]string{"field": "age", "min": strconv.Itoa(r.Min), "max": strconv.Itoa(r.Max)}
	switch {
	case r.Min < 0 || r.Max < 0:
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "age must not be negative", meta)
	case r.Min > r.Max:
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "age minimum exceeds maximum", meta)
	case r.Max > MaxAge:
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "age maximum exceeds "+strconv.Itoa(MaxAge), meta)
	}
	return nil
}

// AIConfig selects the story and image collaborators. Empty fields fall
// back to the assembler's configured defaults.
type AIConfig struct {
	APIKey      string `json:"api_key,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
	Model       string `json:"model,omitempty"`
	ImageAPIKey string `json:"image_api_key,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageModel  string `json:"image_model,omitempty"`
}

func (c AIConfig) withDefaults(d AIConfig) AIConfig {
	or := func(v, fallback string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return fallback
	}
	return AIConfig{
		APIKey:      or(c.APIKey, d.APIKey),
		BaseURL:     or(c.BaseURL, d.BaseURL),
		Model:       or(c.Model, d.Model),
		ImageAPIKey: or(c.ImageAPIKey, d.ImageAPIKey),
		ImageURL:    or(c.ImageURL, d.ImageURL),
		ImageModel:  or(c.ImageModel, d.ImageModel),
	}
}

// Overrides pins output leaves to literal values. Empty strings are unset.
type Overrides struct {
	Name             string `json:"name,omitempty"`
	Username         string `json:"username,omitempty"`
	Password         string `json:"password,omitempty"`
	Email            string `json:"email,omitempty"`
	TempEmail        string `json:"temp_email,omitempty"`
	Job              string `json:"job,omitempty"`
	Education        string `json:"education,omitempty"`
	Employment       string `json:"employment,omitempty"`
	Salary           string `json:"salary,omitempty"`
	Height           string `json:"height,omitempty"`
	Weight           string `json:"weight,omitempty"`
	BloodType        string `json:"blood_type,omitempty"`
	MBTI             string `json:"mbti,omitempty"`
	BankCard         string `json:"bank_card,omitempty"`
	BankName         string `json:"bank_name,omitempty"`
	Ethnicity        string `json:"ethnicity,omitempty"`
	GUID             string `json:"guid,omitempty"`
	UserAgent        string `json:"user_agent,omitempty"`
	OS               string `json:"os,omitempty"`
	WebHome          string `json:"web_home,omitempty"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

// Options control one generation call. The zero value draws an adult of
// either sex anywhere in the country with a fresh seed.
type Options struct {
	Gender           Gender    `json:"gender,omitempty"`
	Age              *AgeRange `json:"age,omitempty"`
	HometownProvince string    `json:"hometown_province,omitempty"`
	HometownCity     string    `json:"hometown_city,omitempty"`
	SecondPhone      bool      `json:"second_phone,omitempty"`
	WorkProvince     string    `json:"work_province,omitempty"`
	WorkCity         string    `json:"work_city,omitempty"`
	UseAI            bool      `json:"use_ai,omitempty"`
	AI               AIConfig  `json:"ai"`
	Fields           []string  `json:"fields,omitempty"`
	// Seed fixes the random stream. Zero draws a fresh seed.
	Seed      int64     `json:"seed,omitempty"`
	Overrides Overrides `json:"overrides"`
}

// AgeBounds returns the requested range or the default.
func (o Options) AgeBounds() AgeRange {
	if o.Age == nil {
		return DefaultAgeRange()
	}
	return *o.Age
}

// WorkPinned reports whether the caller named a work province or city.
func (o Options) WorkPinned() bool {
	return strings.TrimSpace(o.WorkProvince) != "" || strings.TrimSpace(o.WorkCity) != ""
}

// Validate checks caller input before any generation work starts.
func (o Options) Validate() error {
	if _, err := ParseGender(string(o.Gender)); err != nil {
		return err
	}
	return o.AgeBounds().Validate()
}
