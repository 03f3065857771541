package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"mcp-agent-go/internal/config"
	"mcp-agent-go/internal/mcp"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler, err := New(config.DefaultServer(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestListTools(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/mcp/v1/tools")
	if err != nil {
		t.Fatalf("Failed to fetch tools: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var list mcp.ToolListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode tool list: %v", err)
	}

	if len(list.Tools) != 2 {
		t.Fatalf("Expected 2 tools, got %d", len(list.Tools))
	}
	if list.Tools[0].Name != "get_current_time" {
		t.Errorf("Expected get_current_time first, got %s", list.Tools[0].Name)
	}
	if list.Tools[1].Name != "convert_time" {
		t.Errorf("Expected convert_time second, got %s", list.Tools[1].Name)
	}
	for _, def := range list.Tools {
		if len(def.Parameters) == 0 {
			t.Errorf("Expected parameter schema for %s", def.Name)
		}
	}
}

func TestCallTool_GetCurrentTime(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"tool_name":"get_current_time","arguments":{}}`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var callResp mcp.CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&callResp); err != nil {
		t.Fatalf("Failed to decode call response: %v", err)
	}

	if callResp.IsError() {
		t.Fatalf("Expected success, got error %q", callResp.Error)
	}
	if callResp.ToolName != "get_current_time" {
		t.Errorf("Expected tool_name get_current_time, got %s", callResp.ToolName)
	}

	var output map[string]string
	if err := json.Unmarshal(callResp.Output, &output); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if !strings.HasSuffix(output["current_time_utc"], "Z") {
		t.Errorf("Expected UTC timestamp with Z suffix, got %s", output["current_time_utc"])
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"tool_name":"delete_universe","arguments":{}}`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	defer resp.Body.Close()

	// Tool-level failures stay in-band with status 200.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var callResp mcp.CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&callResp); err != nil {
		t.Fatalf("Failed to decode call response: %v", err)
	}

	if !callResp.IsError() {
		t.Fatal("Expected error envelope")
	}
	if callResp.Error != "tool not found" {
		t.Errorf("Expected 'tool not found', got %q", callResp.Error)
	}
}

func TestCallTool_InvalidArguments(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"tool_name":"convert_time","arguments":{"time":"2026-08-30T12:00:00Z"}}`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var callResp mcp.CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&callResp); err != nil {
		t.Fatalf("Failed to decode call response: %v", err)
	}

	if !callResp.IsError() {
		t.Fatal("Expected validation error envelope")
	}
}

func TestCallTool_ConvertTime(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"tool_name":"convert_time","arguments":{"time":"2026-08-30T12:00:00Z","timezone":"Europe/Amsterdam"}}`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	defer resp.Body.Close()

	var callResp mcp.CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&callResp); err != nil {
		t.Fatalf("Failed to decode call response: %v", err)
	}

	if callResp.IsError() {
		t.Fatalf("Expected success, got error %q", callResp.Error)
	}

	var output map[string]string
	if err := json.Unmarshal(callResp.Output, &output); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if output["converted_time"] != "2026-08-30T14:00:00+02:00" {
		t.Errorf("Expected 2026-08-30T14:00:00+02:00, got %s", output["converted_time"])
	}
}

func TestCallTool_MalformedBody(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"tool_name":`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	var callResp mcp.CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&callResp); err != nil {
		t.Fatalf("Failed to decode call response: %v", err)
	}
	if !callResp.IsError() {
		t.Fatal("Expected error envelope for malformed body")
	}
}

func TestCallTool_MissingToolName(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"arguments":{}}`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Failed to fetch health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	// Generate some traffic first so tool metrics exist.
	resp, err := http.Post(server.URL+"/mcp/v1/call", "application/json",
		strings.NewReader(`{"tool_name":"get_current_time","arguments":{}}`))
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Failed to fetch metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}
