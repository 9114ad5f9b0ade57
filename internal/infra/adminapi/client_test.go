package adminapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"wunderadmin/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)
	return client
}

func TestFetchInventoryDecodesCategories(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tools", r.URL.Path)
		require.Equal(t, "u-1", r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"builtin_tools": [{"name":"search","description":"web search"}],
			"shared_tools": [{"name":"S","description":"","owner_id":"other"}],
			"extra_prompt": "be nice"
		}`))
	}))

	inv, err := client.FetchInventory(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, []domain.ToolDescriptor{{Name: "search", Description: "web search"}}, inv.Tools(domain.ToolKindBuiltin))
	require.Equal(t, "be nice", inv.ExtraPrompt)
	require.Contains(t, inv.SharedNames(), "S")
	require.Empty(t, inv.Tools(domain.ToolKindMCP))
}

func TestFetchInventoryOmitsEmptyUserID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("user_id"))
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := client.FetchInventory(context.Background(), "")
	require.NoError(t, err)
}

func TestFetchInventoryToleratesMalformedCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"builtin_tools": "nope", "mcp_tools": [{"name":"m"}]}`))
	}))

	inv, err := client.FetchInventory(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, inv.Tools(domain.ToolKindBuiltin))
	require.Equal(t, []domain.ToolDescriptor{{Name: "m"}}, inv.Tools(domain.ToolKindMCP))
}

func TestFetchInventoryNonSuccessStatusFails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.FetchInventory(context.Background(), "u-1")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInventoryUnavailable)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeUnavailable, code)
}

func TestFetchInventoryMalformedBodyFails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))

	_, err := client.FetchInventory(context.Background(), "u-1")
	require.ErrorIs(t, err, domain.ErrInventoryUnavailable)
}

func TestSkillsRoundTrip(t *testing.T) {
	var deleted string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/skills":
			_, _ = w.Write([]byte(`{"skills":[{"name":"summarize","description":"tl;dr"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/skills":
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodDelete:
			deleted = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	skills, err := client.ListSkills(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Equal(t, "summarize", skills[0].Name)

	require.NoError(t, client.CreateSkill(context.Background(), domain.Skill{Name: "translate"}))
	require.NoError(t, client.DeleteSkill(context.Background(), "summarize"))
	require.Equal(t, "/skills/summarize", deleted)

	err = client.CreateSkill(context.Background(), domain.Skill{})
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeInvalidArgument, code)
}

func TestChannelDeleteSendsIdentity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "slack", r.URL.Query().Get("provider"))
		require.Equal(t, "acc-1", r.URL.Query().Get("account_id"))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteChannel(context.Background(), "slack", "acc-1"))
}

func TestFetchLogsPassesTail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logs", r.URL.Path)
		require.Equal(t, "50", r.URL.Query().Get("tail"))
		_, _ = w.Write([]byte(`{"entries":[{"level":"info","message":"started"}]}`))
	}))

	entries, err := client.FetchLogs(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "started", entries[0].Message)
}
