package acquire

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/tracklight/replay/internal/acquire"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
