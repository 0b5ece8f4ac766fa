package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSuccess(t *testing.T) {
	resp := Success(map[string]string{"key": "value"})

	if !resp.Success {
		t.Error("Expected Success to be true")
	}
	if resp.Data == nil {
		t.Error("Expected Data to be set")
	}
	if resp.Error != nil {
		t.Error("Expected Error to be nil")
	}
}

func TestError(t *testing.T) {
	resp := Error(ErrCodeBadRequest, "invalid input")

	if resp.Success {
		t.Error("Expected Success to be false")
	}
	if resp.Error == nil {
		t.Fatal("Expected Error to be set")
	}
	if resp.Error.Code != ErrCodeBadRequest {
		t.Errorf("Error.Code = %q, want %q", resp.Error.Code, ErrCodeBadRequest)
	}
	if resp.Error.Message != "invalid input" {
		t.Errorf("Error.Message = %q, want %q", resp.Error.Message, "invalid input")
	}
}

func TestErrorWithDetails(t *testing.T) {
	details := []string{"name is required", "price must be positive"}
	resp := ErrorWithDetails(ErrCodeValidationFailed, "Validation failed", details)

	if resp.Success {
		t.Error("Expected Success to be false")
	}
	if len(resp.Error.Details) != 2 {
		t.Fatalf("Details length = %d, want 2", len(resp.Error.Details))
	}
	if resp.Error.Details[0] != "name is required" {
		t.Errorf("Details[0] = %q", resp.Error.Details[0])
	}
}

func TestPaginated(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		total          int64
		wantTotalPages int
	}{
		{"exact pages", 1, 10, 30, 3},
		{"partial last page", 2, 10, 31, 4},
		{"empty", 1, 12, 0, 0},
		{"single item", 1, 12, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Paginated([]string{}, tt.page, tt.perPage, tt.total)
			if resp.Meta == nil {
				t.Fatal("Expected Meta to be set")
			}
			if resp.Meta.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", resp.Meta.TotalPages, tt.wantTotalPages)
			}
			if resp.Meta.Page != tt.page {
				t.Errorf("Page = %d, want %d", resp.Meta.Page, tt.page)
			}
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{ErrCodeEmptyCart, http.StatusUnprocessableEntity},
		{ErrCodeSessionExpired, http.StatusUnauthorized},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := GetHTTPStatus(tt.code); got != tt.want {
			t.Errorf("GetHTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestResponseJSONShape(t *testing.T) {
	resp := Error(ErrCodeUnauthorized, "Authentication required")

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["success"] != false {
		t.Error("Expected success=false in JSON")
	}
	if _, ok := decoded["data"]; ok {
		t.Error("Expected data to be omitted for error responses")
	}
	if _, ok := decoded["error"]; !ok {
		t.Error("Expected error object in JSON")
	}
}
