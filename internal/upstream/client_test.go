package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second), srv
}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"user": map[string]interface{}{"_id": "u1"}},
		})
	})

	if _, err := client.Me(context.Background(), "tok-123"); err != nil {
		t.Fatalf("Me() failed: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"cities": []string{}},
		})
	})

	if _, err := client.Home(context.Background()); err != nil {
		t.Fatalf("Home() failed: %v", err)
	}

	if hasAuth {
		t.Error("Expected no Authorization header on anonymous calls")
	}
}

func TestClient_EnvelopeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
	})

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("Expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.Error() != "Invalid credentials" {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), "Invalid credentials")
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", apiErr.Status, http.StatusUnauthorized)
	}
}

func TestClient_EnvelopeFailureWithDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Validation failed",
			"errors":  []string{"name is required", "price must be positive"},
		})
	})

	_, err := client.Home(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}

	want := "Validation failed\nname is required\nprice must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestClient_EnvelopeFailureNoMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
		})
	})

	_, err := client.Home(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "Request failed" {
		t.Errorf("Error() = %q, want fallback message", err.Error())
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	client := NewClient(srv.URL, time.Second)
	_, err := client.Home(context.Background())
	if err == nil {
		t.Fatal("Expected transport error")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("Transport failures must not carry an envelope")
	}
}

func TestClient_IsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"401 api error", &APIError{Status: http.StatusUnauthorized, Message: "expired"}, true},
		{"wrapped 401", fmt.Errorf("refresh: %w", &APIError{Status: http.StatusUnauthorized}), true},
		{"403 api error", &APIError{Status: http.StatusForbidden}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_RestaurantFilterQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"items": []interface{}{}, "page": 1, "totalPages": 1},
		})
	})

	filter := RestaurantFilter{City: "Damascus", OpenNow: true, Page: 2, Limit: 12}
	if _, err := client.ListRestaurants(context.Background(), filter); err != nil {
		t.Fatalf("ListRestaurants() failed: %v", err)
	}

	for _, want := range []string{"city=Damascus", "openNow=true", "page=2", "limit=12"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("Query %q missing %q", gotQuery, want)
		}
	}
	// zero-valued filters are omitted entirely
	for _, banned := range []string{"type=", "delivery="} {
		if strings.Contains(gotQuery, banned) {
			t.Errorf("Query %q should not carry %q", gotQuery, banned)
		}
	}
}

func TestClient_OrderLinkPayload(t *testing.T) {
	var gotBody OrderRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"whatsappUrl": "https://wa.me/x"},
		})
	})

	table := 5
	req := OrderRequest{
		Slug:        "falafel-house",
		TableNumber: &table,
		Items: []OrderItem{
			{Name: "A", Qty: 2, Options: []string{}},
			{Name: "B", Qty: 1, Options: []string{"extra cheese"}},
		},
		Notes: "no onions",
	}

	link, err := client.OrderLink(context.Background(), req)
	if err != nil {
		t.Fatalf("OrderLink() failed: %v", err)
	}
	if link.WhatsappURL != "https://wa.me/x" {
		t.Errorf("WhatsappURL = %q", link.WhatsappURL)
	}

	if gotBody.Slug != "falafel-house" || gotBody.TableNumber == nil || *gotBody.TableNumber != 5 {
		t.Errorf("Unexpected payload: %+v", gotBody)
	}
	if len(gotBody.Items) != 2 || gotBody.Items[1].Options[0] != "extra cheese" {
		t.Errorf("Unexpected items: %+v", gotBody.Items)
	}
}

func TestClient_FetchQR(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("table"); got != "7" {
			t.Errorf("table param = %q, want %q", got, "7")
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	data, contentType, err := client.FetchQR(context.Background(), "tok", "r1", 7)
	if err != nil {
		t.Fatalf("FetchQR() failed: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("contentType = %q", contentType)
	}
	if string(data) != string(png) {
		t.Errorf("Unexpected image bytes")
	}
}

func TestClient_FetchQRError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Restaurant not found",
		})
	})

	_, _, err := client.FetchQR(context.Background(), "tok", "missing", 0)
	if err == nil {
		t.Fatal("Expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Restaurant not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
