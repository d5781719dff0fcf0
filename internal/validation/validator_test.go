// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

package validation

import (
	"strings"
	"testing"

	"github.com/Fiyas-N/travel-journal-sub000/internal/models"
)

type sampleRequest struct {
	Name     string `validate:"required,min=1,max=200"`
	Category string `validate:"required,destcategory"`
	Stars    int    `validate:"omitempty,gte=1,lte=5"`
}

func TestValidateStructPasses(t *testing.T) {
	req := sampleRequest{Name: "Munnar Hills", Category: models.CategoryMountain, Stars: 4}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("unexpected validation error: %v", verr)
	}
}

func TestDestCategoryValidator(t *testing.T) {
	for _, c := range models.Categories() {
		req := sampleRequest{Name: "x", Category: c}
		if verr := ValidateStruct(&req); verr != nil {
			t.Errorf("category %q rejected: %v", c, verr)
		}
	}

	req := sampleRequest{Name: "x", Category: "volcano"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("invalid category accepted")
	}
	if verr.Errors()[0].Tag() != "destcategory" {
		t.Errorf("tag = %q, want destcategory", verr.Errors()[0].Tag())
	}
}

func TestValidateStructCollectsAllErrors(t *testing.T) {
	req := sampleRequest{Name: "", Category: "volcano", Stars: 9}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation errors")
	}
	if len(verr.Errors()) != 3 {
		t.Errorf("error count = %d, want 3: %v", len(verr.Errors()), verr)
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		req := sampleRequest{Name: "x", Category: "volcano"}
		apiErr := ValidateStruct(&req).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("code = %q", apiErr.Code)
		}
		if apiErr.Details["field"] != "Category" {
			t.Errorf("details field = %v, want Category", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors list every field", func(t *testing.T) {
		req := sampleRequest{Name: "", Category: "volcano"}
		apiErr := ValidateStruct(&req).ToAPIError()
		if !strings.Contains(apiErr.Message, "Name") || !strings.Contains(apiErr.Message, "Category") {
			t.Errorf("message does not name both fields: %s", apiErr.Message)
		}
		if _, ok := apiErr.Details["fields"]; !ok {
			t.Error("details missing fields list")
		}
	})
}

func TestTranslatedMessages(t *testing.T) {
	req := sampleRequest{Name: "x", Category: models.CategoryBeach, Stars: 9}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if want := "Stars must be less than or equal to 5"; verr.Errors()[0].Error() != want {
		t.Errorf("message = %q, want %q", verr.Errors()[0].Error(), want)
	}
}
