package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithServiceNameAddsEnvValue(t *testing.T) {
	t.Setenv("SERVICE_NAME", "more-from-api")

	fields := withServiceName(nil)
	assert.Equal(t, "more-from-api", fields["service_name"])
}

func TestWithServiceNameKeepsExplicitValue(t *testing.T) {
	t.Setenv("SERVICE_NAME", "more-from-api")

	fields := withServiceName(Fields{"service_name": "widgetctl"})
	assert.Equal(t, "widgetctl", fields["service_name"])
}

func TestInitFallsBackToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	Init("  ")
	assert.NotNil(t, Log)

	// must not panic with structured helpers on the default logger
	InfoWithFields("render finished", Fields{"block": "gb/more-from-widget"})
	WarnWithFields("asset missing", nil)
}
