package functional_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/ganot/rosterdesk/internal/testserver"
	"github.com/stretchr/testify/require"
)

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type rpcError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func rpcCall(t *testing.T, ts *testserver.TestServer, method string, params any) rpcResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result rpcResponse
	require.NoError(t, json.Unmarshal(readRPCBody(t, resp), &result))
	return result
}

// readRPCBody handles both plain JSON and SSE-framed responses.
func readRPCBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return body
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			return []byte(data)
		}
	}
	t.Fatal("no data frame in event stream")
	return nil
}

// callTool makes a tools/call RPC call and unwraps the result
func callTool(t *testing.T, ts *testserver.TestServer, toolName string, args any) json.RawMessage {
	t.Helper()

	result, isError := callToolRaw(t, ts, toolName, args)
	require.False(t, isError, "tool error: %s", string(result))
	return result
}

// callToolRaw is callTool without the success assertion; it reports the
// isError flag so failure paths can be asserted on.
func callToolRaw(t *testing.T, ts *testserver.TestServer, toolName string, args any) (json.RawMessage, bool) {
	t.Helper()

	params := map[string]any{
		"name": toolName,
	}
	if args != nil {
		params["arguments"] = args
	}

	resp := rpcCall(t, ts, "tools/call", params)
	require.Nil(t, resp.Error, "RPC error: %v", resp.Error)

	var toolResult struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &toolResult))
	require.NotEmpty(t, toolResult.Content)

	return json.RawMessage(toolResult.Content[0].Text), toolResult.IsError
}

func signIn(t *testing.T, ts *testserver.TestServer, email, password string) {
	t.Helper()

	_ = callTool(t, ts, "sign_up", map[string]any{
		"email":    email,
		"password": password,
	})
	resp := callTool(t, ts, "sign_in", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Contains(t, string(resp), email)
}

func TestFunctional_ToolDiscovery(t *testing.T) {
	ts := testserver.New(t)

	toolsResp := rpcCall(t, ts, "tools/list", map[string]any{})
	require.Nil(t, toolsResp.Error)

	var toolsResult struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(toolsResp.Result, &toolsResult))
	require.GreaterOrEqual(t, len(toolsResult.Tools), 11)

	toolNames := make(map[string]bool)
	for _, tool := range toolsResult.Tools {
		toolNames[tool.Name] = true
		require.NotEmpty(t, tool.Description, "tool %s should have description", tool.Name)
		require.NotNil(t, tool.InputSchema, "tool %s should have inputSchema", tool.Name)
	}
	for _, name := range []string{"session_status", "sign_up", "sign_in", "sign_out", "add_student", "list_students", "select_student", "list_courses"} {
		require.True(t, toolNames[name], "should have %s tool", name)
	}
}

func TestFunctional_SignUpSignInSignOut(t *testing.T) {
	ts := testserver.New(t)

	status := callTool(t, ts, "session_status", nil)
	require.Contains(t, string(status), `"authenticated":false`)

	_ = callTool(t, ts, "sign_up", map[string]any{
		"email":    "dana@example.com",
		"password": "hunter22",
	})

	// Signing up signs the new account in via the auth-state stream
	status = callTool(t, ts, "session_status", nil)
	require.Contains(t, string(status), `"authenticated":true`)

	signInResp := callTool(t, ts, "sign_in", map[string]any{
		"email":    "dana@example.com",
		"password": "hunter22",
	})
	require.Contains(t, string(signInResp), "dana@example.com")

	status = callTool(t, ts, "session_status", nil)
	require.Contains(t, string(status), `"authenticated":true`)

	_ = callTool(t, ts, "sign_out", nil)

	status = callTool(t, ts, "session_status", nil)
	require.Contains(t, string(status), `"authenticated":false`)
}

func TestFunctional_SignInRejectsBadCredentials(t *testing.T) {
	ts := testserver.New(t)

	_ = callTool(t, ts, "sign_up", map[string]any{
		"email":    "dana@example.com",
		"password": "hunter22",
	})
	_ = callTool(t, ts, "sign_out", nil)

	resp, isError := callToolRaw(t, ts, "sign_in", map[string]any{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	require.True(t, isError)
	require.Contains(t, string(resp), "credentials")

	status := callTool(t, ts, "session_status", nil)
	require.Contains(t, string(status), `"authenticated":false`)
	require.Contains(t, string(status), `"last_error"`)
}

func TestFunctional_AddStudentRequiresSignIn(t *testing.T) {
	ts := testserver.New(t)

	resp, isError := callToolRaw(t, ts, "add_student", map[string]any{
		"name":   "Casey Park",
		"email":  "casey@example.com",
		"grade":  "B+",
		"course": "Computer Science 101",
	})
	require.True(t, isError)
	require.Contains(t, string(resp), "sign in")
}

func TestFunctional_RosterWorkflow(t *testing.T) {
	ts := testserver.New(t)
	signIn(t, ts, "dana@example.com", "hunter22")

	listResp := callTool(t, ts, "list_students", nil)
	var list struct {
		Students []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"students"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(listResp, &list))
	require.Equal(t, 3, list.Total)

	addResp := callTool(t, ts, "add_student", map[string]any{
		"name":   "Casey Park",
		"email":  "casey@example.com",
		"grade":  "B+",
		"course": "Computer Science 101",
	})
	var added struct {
		Student struct {
			ID string `json:"id"`
		} `json:"student"`
	}
	require.NoError(t, json.Unmarshal(addResp, &added))
	require.NotEmpty(t, added.Student.ID)

	filtered := callTool(t, ts, "list_students", map[string]any{
		"search": "casey",
	})
	require.NoError(t, json.Unmarshal(filtered, &list))
	require.Len(t, list.Students, 1)
	require.Equal(t, 4, list.Total)
	require.Equal(t, "Casey Park", list.Students[0].Name)

	selectResp := callTool(t, ts, "select_student", map[string]any{
		"id": added.Student.ID,
	})
	require.Contains(t, string(selectResp), added.Student.ID)

	selected := callTool(t, ts, "selected_student", nil)
	require.Contains(t, string(selected), "Casey Park")

	// Clearing the selection
	_ = callTool(t, ts, "select_student", map[string]any{"id": ""})
	selected = callTool(t, ts, "selected_student", nil)
	require.NotContains(t, string(selected), "Casey Park")
}

func TestFunctional_GetStudentUnknownID(t *testing.T) {
	ts := testserver.New(t)

	resp, isError := callToolRaw(t, ts, "get_student", map[string]any{
		"id": "no-such-student",
	})
	require.True(t, isError)
	require.Contains(t, string(resp), "not found")
}

func TestFunctional_CourseCatalog(t *testing.T) {
	ts := testserver.New(t)
	signIn(t, ts, "dana@example.com", "hunter22")

	listResp := callTool(t, ts, "list_courses", nil)
	var list struct {
		Courses []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Level string `json:"level"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(listResp, &list))
	require.Len(t, list.Courses, 5)

	addResp := callTool(t, ts, "add_course", map[string]any{
		"name":        "Statistics 210",
		"description": "Probability and inference",
		"level":       "Intermediate",
	})
	require.Contains(t, string(addResp), "Statistics 210")

	searchResp := callTool(t, ts, "list_courses", map[string]any{
		"search": "statistics",
	})
	require.NoError(t, json.Unmarshal(searchResp, &list))
	require.Len(t, list.Courses, 1)
}
