// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Title string `json:"title" validate:"required,notblank,max=16"`
	Limit int    `json:"limit" validate:"gte=1,lte=50"`
	Theme string `json:"theme" validate:"omitempty,oneof=light dark"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantTag   string
	}{
		{"valid", sampleRequest{Title: "Avatar", Limit: 10}, "", ""},
		{"missing title", sampleRequest{Limit: 10}, "title", "required"},
		{"blank title", sampleRequest{Title: "   ", Limit: 10}, "title", "notblank"},
		{"title too long", sampleRequest{Title: strings.Repeat("x", 17), Limit: 10}, "title", "max"},
		{"limit too high", sampleRequest{Title: "Avatar", Limit: 51}, "limit", "lte"},
		{"bad theme", sampleRequest{Title: "Avatar", Limit: 1, Theme: "neon"}, "theme", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&sampleRequest{Limit: 1})
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "title is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}

	multi := ValidateStruct(&sampleRequest{Limit: 0})
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "limit must be greater than or equal to 1") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
