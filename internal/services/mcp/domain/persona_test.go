package domain

import (
	"context"
	"testing"

	apperrors "github.com/louisbranch/zhpersona/internal/platform/errors"
	"github.com/louisbranch/zhpersona/internal/services/persona"
	"github.com/louisbranch/zhpersona/internal/services/persona/dataset"
)

type fakeGenerator struct {
	got persona.Options
	res persona.Result
	err error
}

func (f *fakeGenerator) Persona(_ context.Context, opts persona.Options) (persona.Result, error) {
	f.got = opts
	return f.res, f.err
}

type fakeStatus dataset.Status

func (f fakeStatus) Status() dataset.Status { return dataset.Status(f) }

func TestPersonaGenerateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{res: persona.Result{
			Record: persona.Record{Name: "张伟", Hometown: persona.Hometown{Postcode: "510630"}},
			Fields: []string{"hometown.postcode"},
			Seed:   42,
		}}
		handler := PersonaGenerateHandler(gen)
		_, result, err := handler(context.Background(), nil, PersonaGenerateInput{
			Gender:           "男",
			Age:              "30",
			HometownProvince: "广东",
			SecondPhone:      true,
			Fields:           []string{"hometown.postcode"},
			Seed:             42,
			Overrides:        persona.Overrides{Job: "教师"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Seed != 42 {
			t.Errorf("seed = %d, want 42", result.Seed)
		}
		hometown, ok := result.Record["hometown"].(map[string]any)
		if !ok || hometown["postcode"] != "510630" {
			t.Fatalf("record = %v, want hometown.postcode only", result.Record)
		}
		if _, ok := result.Record["name"]; ok {
			t.Errorf("expected name to be projected away, got %v", result.Record)
		}

		got := gen.got
		if got.Gender != persona.GenderMale {
			t.Errorf("gender = %q, want male", got.Gender)
		}
		if got.Age == nil || *got.Age != (persona.AgeRange{Min: 30, Max: 30}) {
			t.Errorf("age = %v, want 30-30", got.Age)
		}
		if !got.SecondPhone || got.HometownProvince != "广东" || got.Seed != 42 {
			t.Errorf("options not forwarded: %+v", got)
		}
		if got.Overrides.Job != "教师" {
			t.Errorf("job override = %q, want 教师", got.Overrides.Job)
		}
	})

	t.Run("invalid gender", func(t *testing.T) {
		gen := &fakeGenerator{}
		_, _, err := PersonaGenerateHandler(gen)(context.Background(), nil, PersonaGenerateInput{Gender: "robot"})
		if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
			t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
		}
	})

	t.Run("invalid age", func(t *testing.T) {
		gen := &fakeGenerator{}
		_, _, err := PersonaGenerateHandler(gen)(context.Background(), nil, PersonaGenerateInput{Age: "old"})
		if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
			t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
		}
	})

	t.Run("generator error", func(t *testing.T) {
		gen := &fakeGenerator{err: apperrors.New(apperrors.CodeDatasetUnavailable, "geography unavailable")}
		_, _, err := PersonaGenerateHandler(gen)(context.Background(), nil, PersonaGenerateInput{})
		if apperrors.CodeOf(err) != apperrors.CodeDatasetUnavailable {
			t.Fatalf("err = %v, want DATASET_UNAVAILABLE", err)
		}
	})

	t.Run("nil generator", func(t *testing.T) {
		_, _, err := PersonaGenerateHandler(nil)(context.Background(), nil, PersonaGenerateInput{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestPersonaGenerateInputDefaultsAge(t *testing.T) {
	opts, err := PersonaGenerateInput{}.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Age == nil || *opts.Age != persona.DefaultAgeRange() {
		t.Fatalf("age = %v, want default", opts.Age)
	}
}

func TestIDNumberValidateHandler(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		valid  bool
		birth  string
		gender string
	}{
		{name: "female with X", input: "11010519491231002X", valid: true, birth: "1949-12-31", gender: "女"},
		{name: "lowercase x", input: "11010519491231002x", valid: true, birth: "1949-12-31", gender: "女"},
		{name: "male", input: "440106198506151239", valid: true, birth: "1985-06-15", gender: "男"},
		{name: "bad check", input: "110105194912310021", valid: false},
		{name: "short", input: "1101051949", valid: false},
		{name: "impossible date", input: "110105194913310021", valid: false},
	}

	handler := IDNumberValidateHandler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, result, err := handler(context.Background(), nil, IDNumberValidateInput{IDNumber: tc.input})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (reason %q)", result.Valid, tc.valid, result.Reason)
			}
			if !tc.valid {
				if result.Reason == "" {
					t.Error("expected a reason")
				}
				return
			}
			if result.BirthDate != tc.birth {
				t.Errorf("birth_date = %q, want %q", result.BirthDate, tc.birth)
			}
			if result.Gender != tc.gender {
				t.Errorf("gender = %q, want %q", result.Gender, tc.gender)
			}
			if result.AreaCode != tc.input[:6] {
				t.Errorf("area_code = %q, want %q", result.AreaCode, tc.input[:6])
			}
		})
	}
}

func TestDatasetStatusResourceHandler(t *testing.T) {
	handler := DatasetStatusResourceHandler(fakeStatus{Geography: true, Phones: true})
	result, err := handler(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(result.Contents))
	}
	content := result.Contents[0]
	if content.URI != DatasetStatusURI {
		t.Errorf("uri = %q, want %q", content.URI, DatasetStatusURI)
	}
	want := "{\n  \"geography\": true,\n  \"phones\": true,\n  \"postcodes\": false,\n  \"villages\": false\n}"
	if content.Text != want {
		t.Errorf("text = %q, want %q", content.Text, want)
	}

	if _, err := DatasetStatusResourceHandler(nil)(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil reporter")
	}
}

