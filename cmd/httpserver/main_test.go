package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDetector struct {
	hasLink bool
	err     error
}

func (f fakeDetector) DetectSchema(context.Context) (bool, error) {
	return f.hasLink, f.err
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		name     string
		detector fakeDetector
		strict   bool
		expected error
	}{
		{name: "column present", detector: fakeDetector{hasLink: true}},
		{name: "legacy table is tolerated", detector: fakeDetector{}},
		{name: "legacy table fails in strict mode", detector: fakeDetector{}, strict: true, expected: errMissingMovieLink},
		{name: "database down at startup", detector: fakeDetector{err: errors.New("connection refused")}, strict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSchema(context.Background(), tt.detector, tt.strict)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
