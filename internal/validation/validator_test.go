// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package validation

import (
	"strings"
	"testing"
)

type pageParams struct {
	K      int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   pageParams
		wantErr bool
		wantMsg string
	}{
		{"valid", pageParams{K: 20, Offset: 0}, false, ""},
		{"k at lower bound", pageParams{K: 1}, false, ""},
		{"k at upper bound", pageParams{K: 100}, false, ""},
		{"k below range", pageParams{K: 0}, true, "K must be at least 1"},
		{"k above range", pageParams{K: 101}, true, "K must be at most 100"},
		{"negative offset", pageParams{K: 10, Offset: -1}, true, "Offset must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if (verr != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(verr.Error(), tt.wantMsg) {
				t.Errorf("message = %q, want substring %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	verr := ValidateStruct(&pageParams{K: 0, Offset: -1})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := len(verr.Fields()); got != 2 {
		t.Errorf("field failures = %d, want 2", got)
	}
}

func TestToAPIError(t *testing.T) {
	verr := ValidateStruct(&pageParams{K: 0})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "INVALID_ARGUMENT" {
		t.Errorf("Code = %q, want INVALID_ARGUMENT", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("Message empty")
	}
	details, ok := apiErr.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("Details type = %T, want map", apiErr.Details)
	}
	if details["field"] != "K" {
		t.Errorf("details.field = %v, want K", details["field"])
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned distinct instances")
	}
}
