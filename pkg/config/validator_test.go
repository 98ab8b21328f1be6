package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		cfg     any
		wantErr string
	}{
		{name: "valid", cfg: &sessionConfig{Threshold: 1, Mode: "pull"}},
		{name: "nil", cfg: nil, wantErr: "cannot be nil"},
		{name: "min", cfg: &sessionConfig{Threshold: 0, Mode: "push"}, wantErr: "field 'Threshold' must be at least 1"},
		{name: "oneof", cfg: &sessionConfig{Threshold: 1, Mode: "poll"}, wantErr: "field 'Mode' must be one of [pull push]"},
		{name: "required", cfg: &dialConfig{Port: 1}, wantErr: "field 'Host' is required"},
		{name: "max", cfg: &dialConfig{Host: "h", Port: 70000}, wantErr: "field 'Port' must be at most 65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_ErrorIsValidationFailed(t *testing.T) {
	err := NewValidator().Validate(&sessionConfig{Mode: "pull"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
