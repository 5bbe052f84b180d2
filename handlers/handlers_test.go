package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/server"
	"github.com/d-gangz/mcp-template/util/schema"
)

func textOf(t *testing.T, content []protocol.Content) string {
	t.Helper()
	require.NotEmpty(t, content)
	text, ok := content[0].(protocol.TextContent)
	require.True(t, ok, "first content block is not text")
	return text.Text
}

func TestAddNumbers(t *testing.T) {
	d := AddNumbers()
	assert.Equal(t, "add-numbers", d.Name)
	assert.Equal(t, server.KindTool, d.Kind)

	// Schema declares both operands as required numbers.
	a, ok := d.Schema.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, schema.TypeNumber, a.Type)
	assert.True(t, a.Required)
	b, ok := d.Schema.Lookup("b")
	require.True(t, ok)
	assert.True(t, b.Required)

	content, err := d.Handler(context.Background(), map[string]interface{}{
		"a": float64(2), "b": float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "The sum of 2 and 3 is 5", textOf(t, content))
}

func TestAddNumbersFractional(t *testing.T) {
	d := AddNumbers()
	content, err := d.Handler(context.Background(), map[string]interface{}{
		"a": 1.5, "b": 2.25,
	})
	require.NoError(t, err)
	assert.Equal(t, "The sum of 1.5 and 2.25 is 3.75", textOf(t, content))
}

func TestAddNumbersIdempotent(t *testing.T) {
	d := AddNumbers()
	params := map[string]interface{}{"a": float64(2), "b": float64(3)}

	var results []string
	for i := 0; i < 3; i++ {
		content, err := d.Handler(context.Background(), params)
		require.NoError(t, err)
		results = append(results, textOf(t, content))
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[1], results[2])
}

func TestCreateGreeting(t *testing.T) {
	d := CreateGreeting()
	assert.Equal(t, server.KindPrompt, d.Kind)

	// Style is optional: pointer fields map to non-required schema entries.
	style, ok := d.Schema.Lookup("style")
	require.True(t, ok)
	assert.False(t, style.Required)

	content, err := d.Handler(context.Background(), map[string]interface{}{"name": "Ada"})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, content), "Ada")
	assert.Contains(t, textOf(t, content), "friendly")

	content, err = d.Handler(context.Background(), map[string]interface{}{
		"name": "Ada", "style": "formal",
	})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, content), "formal")
}

func TestCodeReview(t *testing.T) {
	d := CodeReview()
	content, err := d.Handler(context.Background(), map[string]interface{}{
		"language": "go",
		"code":     "func main() {}",
	})
	require.NoError(t, err)
	text := textOf(t, content)
	assert.Contains(t, text, "go")
	assert.Contains(t, text, "func main() {}")
}

func TestPromptGeneratorsAreDeterministic(t *testing.T) {
	d := CreateGreeting()
	params := map[string]interface{}{"name": "Ada", "style": "formal"}

	first, err := d.Handler(context.Background(), params)
	require.NoError(t, err)
	second, err := d.Handler(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, textOf(t, first), textOf(t, second))
}

func TestUsageGuideStableContent(t *testing.T) {
	d := UsageGuide("")
	assert.Equal(t, server.KindResource, d.Kind)

	first, err := d.Handler(context.Background(), nil)
	require.NoError(t, err)
	second, err := d.Handler(context.Background(), nil)
	require.NoError(t, err)

	// Identical text on every call, no mutation between calls.
	assert.Equal(t, textOf(t, first), textOf(t, second))
	assert.Len(t, first, 1)
}

func TestUsageGuideOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.txt")
	require.NoError(t, os.WriteFile(path, []byte("custom guide"), 0o600))

	d := UsageGuide(path)
	content, err := d.Handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "custom guide", textOf(t, content))
}

func TestUsageGuideFallbackOnLoadFailure(t *testing.T) {
	d := UsageGuide(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	content, err := d.Handler(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, content, 2)

	// Embedded text is served, annotated with the fallback flag.
	assert.NotEmpty(t, textOf(t, content))
	data, ok := content[1].(protocol.DataContent)
	require.True(t, ok)
	annotation := data.Data.(map[string]interface{})
	assert.Equal(t, true, annotation["fallback"])
}

func TestListOperations(t *testing.T) {
	reg := server.NewRegistry(nil)
	require.NoError(t, reg.Register(AddNumbers()))
	require.NoError(t, reg.Register(CreateGreeting()))
	require.NoError(t, reg.Register(ListOperations(reg)))

	d, err := reg.Lookup("list-operations")
	require.NoError(t, err)

	content, err := d.Handler(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, content, 1)

	data, ok := content[0].(protocol.DataContent)
	require.True(t, ok)
	payload := data.Data.(map[string]interface{})
	infos := payload["operations"].([]operationInfo)
	require.Len(t, infos, 3)
	assert.Equal(t, "add-numbers", infos[0].Name)
	assert.Equal(t, "create-greeting", infos[1].Name)
	assert.Equal(t, "list-operations", infos[2].Name)
	assert.Equal(t, server.KindTool, infos[2].Kind)
}

func TestRateLimitedPassesThrough(t *testing.T) {
	calls := 0
	wrapped := RateLimited(func(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
		calls++
		return []protocol.Content{protocol.NewTextContent("ok")}, nil
	}, 1000, 10)

	for i := 0; i < 3; i++ {
		_, err := wrapped(context.Background(), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestRateLimitedHonorsCancellation(t *testing.T) {
	wrapped := RateLimited(func(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
		return nil, nil
	}, 0.001, 1)

	// Consume the single burst token.
	_, err := wrapped(context.Background(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = wrapped(ctx, nil)
	assert.Error(t, err)
}
