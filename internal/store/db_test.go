package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero falls back to default", limit: 0, want: 100},
		{name: "negative falls back to default", limit: -5, want: 100},
		{name: "within range passes through", limit: 250, want: 250},
		{name: "above max clamps", limit: 5000, want: 1000},
		{name: "max passes through", limit: 1000, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampLimit(tt.limit, 100, 1000))
		})
	}
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "x", deref(record.String("x")))
}
