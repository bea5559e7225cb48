package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("SCHEMA_PATH", "")
	assert.Equal(t, "internal/store/schema.sql", envOr("SCHEMA_PATH", "internal/store/schema.sql"))

	t.Setenv("SCHEMA_PATH", "/etc/normalizer/schema.sql")
	assert.Equal(t, "/etc/normalizer/schema.sql", envOr("SCHEMA_PATH", "internal/store/schema.sql"))
}

func TestDerefOr(t *testing.T) {
	assert.Equal(t, "unknown", derefOr(nil, "unknown"))
	assert.Equal(t, "OCDS_JSON", derefOr(record.String("OCDS_JSON"), "unknown"))
}
