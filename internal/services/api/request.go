package api

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/zhpersona/internal/platform/errors"
	"github.com/louisbranch/zhpersona/internal/services/persona"
)

// PersonaRequest is the POST /v1/persona body. Query parameters on GET use
// the same names and accept fields as a comma-separated list.
type PersonaRequest struct {
	Gender           string            `json:"gender,omitempty"`
	Age              string            `json:"age,omitempty"`
	HometownProvince string            `json:"hometown_province,omitempty"`
	HometownCity     string            `json:"hometown_city,omitempty"`
	SecondPhone      bool              `json:"second_phone,omitempty"`
	WorkProvince     string            `json:"work_province,omitempty"`
	WorkCity         string            `json:"work_city,omitempty"`
	Fields           []string          `json:"fields,omitempty"`
	Seed             int64             `json:"seed,omitempty"`
	UseAI            bool              `json:"use_ai,omitempty"`
	AI               persona.AIConfig  `json:"ai"`
	Overrides        persona.Overrides `json:"overrides"`
}

// Options converts the request into generation options.
func (req PersonaRequest) Options() (persona.Options, error) {
	gender, err := persona.ParseGender(req.Gender)
	if err != nil {
		return persona.Options{}, err
	}
	ages, err := persona.ParseAgeRange(req.Age)
	if err != nil {
		return persona.Options{}, err
	}
	return persona.Options{
		Gender:           gender,
		Age:              &ages,
		HometownProvince: strings.TrimSpace(req.HometownProvince),
		HometownCity:     strings.TrimSpace(req.HometownCity),
		SecondPhone:      req.SecondPhone,
		WorkProvince:     strings.TrimSpace(req.WorkProvince),
		WorkCity:         strings.TrimSpace(req.WorkCity),
		UseAI:            req.UseAI,
		AI:               req.AI,
		Fields:           req.Fields,
		Seed:             req.Seed,
		Overrides:        req.Overrides,
	}, nil
}

// parseQuery reads a PersonaRequest from URL query parameters. province,
// city and ai are accepted as short forms.
func parseQuery(q url.Values) (PersonaRequest, error) {
	req := PersonaRequest{
		Gender:           q.Get("gender"),
		Age:              q.Get("age"),
		HometownProvince: firstOf(q, "hometown_province", "province"),
		HometownCity:     firstOf(q, "hometown_city", "city"),
		WorkProvince:     q.Get("work_province"),
		WorkCity:         q.Get("work_city"),
		Fields:           splitFields(q["fields"]),
	}

	var err error
	if req.SecondPhone, err = parseBool(q, "second_phone"); err != nil {
		return PersonaRequest{}, err
	}
	if req.UseAI, err = parseBool(q, "use_ai", "ai"); err != nil {
		return PersonaRequest{}, err
	}
	if raw := strings.TrimSpace(q.Get("seed")); raw != "" {
		req.Seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return PersonaRequest{}, invalidParam("seed", raw)
		}
	}
	return req, nil
}

func firstOf(q url.Values, keys ...string) string {
	for _, key := range keys {
		if v := q.Get(key); v != "" {
			return v
		}
	}
	return ""
}

// splitFields accepts both repeated and comma-separated fields parameters.
func splitFields(values []string) []string {
	var fields []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				fields = append(fields, part)
			}
		}
	}
	return fields
}

func parseBool(q url.Values, keys ...string) (bool, error) {
	for _, key := range keys {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return false, invalidParam(key, raw)
		}
		return v, nil
	}
	return false, nil
}

func invalidParam(name, value string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidArgument,
		"invalid "+name+" parameter", map[string]string{"field": name, "value": value})
}
