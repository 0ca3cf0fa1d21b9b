package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans emitted by persona generation.
const InstrumentationName = "github.com/louisbranch/zhpersona"

// Tracer returns the tracer used for persona generation spans. It resolves
// the global provider on each call, so it is a no-op until Setup registers
// an exporter.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
