package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(_ context.Context, input map[string]any) (string, error) {
	if v, ok := input["text"].(string); ok {
		return v, nil
	}
	return "empty", nil
}

func TestToolRegistry_RegisterAndExecute(t *testing.T) {
	r := NewToolRegistry()
	require.NoError(t, r.Register(Tool{Name: "echo"}, echoHandler))

	assert.True(t, r.HasTool("echo"))
	assert.Equal(t, 1, r.ToolCount())

	out, err := r.Execute(context.Background(), "echo", map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	out, err = r.Execute(context.Background(), "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, "empty", out)
}

func TestToolRegistry_RegisterErrors(t *testing.T) {
	r := NewToolRegistry()
	require.NoError(t, r.Register(Tool{Name: "echo"}, echoHandler))

	assert.Error(t, r.Register(Tool{Name: "echo"}, echoHandler))
	assert.Error(t, r.Register(Tool{}, echoHandler))
	assert.Error(t, r.Register(Tool{Name: "nil"}, nil))
	assert.Panics(t, func() { r.MustRegister(Tool{Name: "echo"}, echoHandler) })
}

func TestToolRegistry_UnknownTool(t *testing.T) {
	r := NewToolRegistry()

	_, err := r.Execute(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestToolRegistry_ExecuteJSON(t *testing.T) {
	r := NewToolRegistry()
	r.MustRegister(Tool{Name: "echo"}, echoHandler)

	out, err := r.ExecuteJSON(context.Background(), "echo", []byte(`{"text":"from json"}`))
	require.NoError(t, err)
	assert.Equal(t, "from json", out)

	out, err = r.ExecuteJSON(context.Background(), "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, "empty", out)

	_, err = r.ExecuteJSON(context.Background(), "echo", []byte(`not json`))
	assert.Error(t, err)
}

func TestToolRegistry_ToolsAndNames(t *testing.T) {
	r := NewToolRegistry()
	r.MustRegister(Tool{Name: "zeta"}, echoHandler)
	r.MustRegister(Tool{Name: "alpha"}, echoHandler)

	tools := r.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "zeta", tools[0].Name)

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

func TestDecodeInput(t *testing.T) {
	type request struct {
		Title     string   `json:"title"`
		Minutes   int      `json:"minutes"`
		Attendees []string `json:"attendees"`
	}

	req, err := DecodeInput[request](map[string]any{
		"title":     "Sync",
		"minutes":   float64(30),
		"attendees": []any{"a@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, request{Title: "Sync", Minutes: 30, Attendees: []string{"a@example.com"}}, req)

	_, err = DecodeInput[request](map[string]any{"minutes": "thirty"})
	assert.Error(t, err)
}

func TestBuildJSONSchema(t *testing.T) {
	schema := BuildJSONSchema("object", map[string]any{
		"title":     PropertyString("Event title"),
		"minutes":   PropertyInt("Duration"),
		"attendees": PropertyArray("E-mails", PropertyString("E-mail")),
		"force":     PropertyBool("Skip checks"),
	}, []string{"title"})

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"title"}, schema["required"])

	props := schema["properties"].(map[string]any)
	assert.Equal(t, "integer", props["minutes"].(map[string]any)["type"])
	assert.Equal(t, "array", props["attendees"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["force"].(map[string]any)["type"])

	noRequired := BuildJSONSchema("object", map[string]any{}, nil)
	_, ok := noRequired["required"]
	assert.False(t, ok)
}
