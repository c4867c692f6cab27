package handler

import (
	"net/http"
	"testing"

	"github.com/martijn/clientreg/internal/api/dto"
)

func TestAddPhones(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	id := env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true, "555-1")
	path := "/clients/" + itoa(id) + "/phones"

	w := env.doRequest(t, http.MethodPost, path, map[string]interface{}{"phones": []string{"555-2", "555-3"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.PhonesAddResponse
	parseResponse(t, w, &resp)
	if resp.Added != 2 || resp.Message != "Numbers added successfully" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if n := env.countPhones(t, id); n != 3 {
		t.Errorf("expected 3 phones, got %d", n)
	}
}

func TestAddPhones_AllOrNothing(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	id := env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true, "555-1")
	path := "/clients/" + itoa(id) + "/phones"

	tests := []struct {
		name   string
		phones []string
	}{
		{"one already stored", []string{"555-9", "555-1"}},
		{"repeated within the batch", []string{"555-7", "555-7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.doRequest(t, http.MethodPost, path, map[string]interface{}{"phones": tt.phones})

			if w.Code != http.StatusConflict {
				t.Fatalf("expected status 409, got %d: %s", w.Code, w.Body.String())
			}
			if resp := parseErrorResponse(t, w); resp.Error != "Phone already exists" {
				t.Errorf("expected Phone already exists, got %q", resp.Error)
			}
			if n := env.countPhones(t, id); n != 1 {
				t.Errorf("expected no numbers added, got %d phones", n)
			}
		})
	}
}

func TestAddPhones_SameNumberOnAnotherClient(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true, "555-1")
	other := env.seedClient(t, "Bruno", "Young", "bruno@example.com", "2024-02-15", true)

	w := env.doRequest(t, http.MethodPost, "/clients/"+itoa(other)+"/phones", map[string]interface{}{"phones": []string{"555-1"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddPhones_Errors(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	id := env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true)

	tests := []struct {
		name            string
		path            string
		body            interface{}
		expectedStatus  int
		expectedMessage string
	}{
		{"unknown client", "/clients/99/phones", map[string]interface{}{"phones": []string{"555-1"}}, http.StatusNotFound, "Client not found"},
		{"invalid id", "/clients/x/phones", map[string]interface{}{"phones": []string{"555-1"}}, http.StatusBadRequest, "Invalid id parameter"},
		{"missing phones", "/clients/" + itoa(id) + "/phones", map[string]interface{}{}, http.StatusBadRequest, "Invalid phones array"},
		{"phones not an array", "/clients/" + itoa(id) + "/phones", map[string]interface{}{"phones": "555-1"}, http.StatusBadRequest, "Invalid phones array"},
		{"non string phone", "/clients/" + itoa(id) + "/phones", map[string]interface{}{"phones": []interface{}{5551}}, http.StatusBadRequest, "Invalid phone value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.doRequest(t, http.MethodPost, tt.path, tt.body)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if resp := parseErrorResponse(t, w); resp.Error != tt.expectedMessage {
				t.Errorf("expected error %q, got %q", tt.expectedMessage, resp.Error)
			}
		})
	}
}

func TestDeletePhone(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	id := env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true, "555-1", "555-2")
	other := env.seedClient(t, "Bruno", "Young", "bruno@example.com", "2024-02-15", true, "555-3")

	w := env.doRequest(t, http.MethodDelete, "/clients/"+itoa(id)+"/phones/555-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.PhoneDeleteResponse
	parseResponse(t, w, &resp)
	if !resp.Deleted || resp.Number != "555-1" || resp.Message != "Number deleted successfully" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if n := env.countPhones(t, id); n != 1 {
		t.Errorf("expected 1 remaining phone, got %d", n)
	}

	tests := []struct {
		name            string
		path            string
		expectedStatus  int
		expectedMessage string
	}{
		{"already deleted", "/clients/" + itoa(id) + "/phones/555-1", http.StatusNotFound, "Number not found"},
		{"number of another client", "/clients/" + itoa(id) + "/phones/555-3", http.StatusNotFound, "Number not found"},
		{"unknown client", "/clients/99/phones/555-2", http.StatusNotFound, "Client not found"},
		{"invalid id", "/clients/-4/phones/555-2", http.StatusBadRequest, "Invalid id parameter"},
		{"blank number", "/clients/" + itoa(id) + "/phones/%20", http.StatusBadRequest, "Invalid phone parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.doRequest(t, http.MethodDelete, tt.path, nil)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if resp := parseErrorResponse(t, w); resp.Error != tt.expectedMessage {
				t.Errorf("expected error %q, got %q", tt.expectedMessage, resp.Error)
			}
		})
	}

	if n := env.countPhones(t, other); n != 1 {
		t.Errorf("expected other client's phone untouched, got %d", n)
	}
}

func TestDeleteAllPhones(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	id := env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true, "555-1", "555-2")
	other := env.seedClient(t, "Bruno", "Young", "bruno@example.com", "2024-02-15", true, "555-3")
	path := "/clients/" + itoa(id) + "/phones"

	w := env.doRequest(t, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.PhonesDeleteResponse
	parseResponse(t, w, &resp)
	if resp.Deleted != 2 || len(resp.Numbers) != 2 || resp.Message != "All phone numbers deleted successfully" {
		t.Errorf("unexpected response: %+v", resp)
	}

	// second call reports nothing left
	w = env.doRequest(t, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = dto.PhonesDeleteResponse{}
	parseResponse(t, w, &resp)
	if resp.Deleted != 0 || resp.Numbers == nil || len(resp.Numbers) != 0 || resp.Message != "Client has no phone numbers" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if n := env.countPhones(t, other); n != 1 {
		t.Errorf("expected other client's phone untouched, got %d", n)
	}

	w = env.doRequest(t, http.MethodDelete, "/clients/99/phones", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if resp := parseErrorResponse(t, w); resp.Error != "Client not found" {
		t.Errorf("expected Client not found, got %q", resp.Error)
	}
}
