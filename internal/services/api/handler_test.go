package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/louisbranch/zhpersona/internal/platform/errors"
	"github.com/louisbranch/zhpersona/internal/services/persona"
	"github.com/louisbranch/zhpersona/internal/services/persona/dataset"
	"github.com/louisbranch/zhpersona/internal/services/persona/idnumber"
	"github.com/louisbranch/zhpersona/internal/services/persona/metrics"
)

type fakeGenerator struct {
	err error
}

func (f fakeGenerator) Persona(context.Context, persona.Options) (persona.Result, error) {
	return persona.Result{}, f.err
}

type fakeStatus dataset.Status

func (f fakeStatus) Status() dataset.Status { return dataset.Status(f) }

func newTestHandler(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	bundle := dataset.Default()
	assembler := persona.New(persona.Config{
		Datasets: bundle,
		Metrics:  metrics.New(reg),
		Now:      func() time.Time { return time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC) },
	})
	return NewHandler(assembler, bundle, reg).Router(), reg
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGetPersona(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/persona?gender=male&age=30-40&province=%E5%B9%BF%E4%B8%9C&seed=11", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(SeedHeader); got != "11" {
		t.Errorf("%s = %q, want 11", SeedHeader, got)
	}
	var record persona.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if err := idnumber.Validate(record.IdentityNumber); err != nil {
		t.Errorf("identity number %q: %v", record.IdentityNumber, err)
	}
	if record.Gender != "男" {
		t.Errorf("gender = %q, want 男", record.Gender)
	}
	if record.Age < 30 || record.Age > 40 {
		t.Errorf("age = %d, want 30-40", record.Age)
	}
	if !strings.HasPrefix(record.Hometown.Province, "广东") {
		t.Errorf("hometown province = %q, want 广东", record.Hometown.Province)
	}
}

func TestGetPersonaIsReproducible(t *testing.T) {
	h, _ := newTestHandler(t)
	first := do(t, h, http.MethodGet, "/v1/persona?seed=2024&second_phone=true", nil)
	second := do(t, h, http.MethodGet, "/v1/persona?seed=2024&second_phone=true", nil)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d, %d, want 200", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("same seed produced different bodies:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestGetPersonaProjectsFields(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/persona?seed=8&fields=name,hometown.postcode&fields=no.such.path", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("keys = %v, want name and hometown", got)
	}
	hometown, ok := got["hometown"].(map[string]any)
	if !ok || len(hometown) != 1 {
		t.Fatalf("hometown = %v, want postcode only", got["hometown"])
	}
}

func TestPostPersona(t *testing.T) {
	h, _ := newTestHandler(t)
	body := `{"gender":"女","age":"20","seed":77,"overrides":{"name":"林小雨","job":"教师"}}`
	rec := do(t, h, http.MethodPost, "/v1/persona", strings.NewReader(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var record persona.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Name != "林小雨" || record.Social.Job != "教师" {
		t.Errorf("overrides not applied: name=%q job=%q", record.Name, record.Social.Job)
	}
	if record.Age != 20 || record.Gender != "女" {
		t.Errorf("age/gender = %d/%q, want 20/女", record.Age, record.Gender)
	}
}

func TestPostPersonaEmptyBody(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/persona", http.NoBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestPersonaRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{name: "gender", method: http.MethodGet, target: "/v1/persona?gender=robot", field: "gender"},
		{name: "inverted age", method: http.MethodGet, target: "/v1/persona?age=50-20"},
		{name: "seed", method: http.MethodGet, target: "/v1/persona?seed=abc", field: "seed"},
		{name: "second phone", method: http.MethodGet, target: "/v1/persona?second_phone=maybe", field: "second_phone"},
		{name: "unknown body field", method: http.MethodPost, target: "/v1/persona", body: `{"colour":"red"}`},
		{name: "malformed body", method: http.MethodPost, target: "/v1/persona", body: `{"age":`},
	}

	h, _ := newTestHandler(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			rec := do(t, h, tc.method, tc.target, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			got := decodeError(t, rec)
			if got.Code != apperrors.CodeInvalidArgument {
				t.Errorf("code = %q, want %q", got.Code, apperrors.CodeInvalidArgument)
			}
			if tc.field != "" && got.Metadata["field"] != tc.field {
				t.Errorf("metadata field = %q, want %q", got.Metadata["field"], tc.field)
			}
		})
	}
}

func TestPersonaMapsGeneratorErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apperrors.Code
	}{
		{name: "dataset", err: apperrors.New(apperrors.CodeDatasetUnavailable, "geography unavailable"), status: http.StatusServiceUnavailable, code: apperrors.CodeDatasetUnavailable},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: apperrors.CodeUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(fakeGenerator{err: tc.err}, nil, prometheus.NewRegistry()).Router()
			rec := do(t, h, http.MethodGet, "/v1/persona", nil)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if got := decodeError(t, rec); got.Code != tc.code {
				t.Errorf("code = %q, want %q", got.Code, tc.code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := do(t, h, http.MethodGet, "/healthz", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var status dataset.Status
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !status.Geography || !status.Villages {
			t.Fatalf("status = %+v", status)
		}
	})

	t.Run("missing geography", func(t *testing.T) {
		h := NewHandler(fakeGenerator{}, fakeStatus{Phones: true}, prometheus.NewRegistry()).Router()
		rec := do(t, h, http.MethodGet, "/healthz", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	if rec := do(t, h, http.MethodGet, "/v1/persona?seed=1", nil); rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `zhpersona_personas_generated_total{outcome="ok"} 1`) {
		t.Fatalf("metrics missing generation counter:\n%s", rec.Body.String())
	}
}

func TestUnsupportedMethod(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodDelete, "/v1/persona", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
