package llm

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitesmith/internal/common"
)

func TestCleanFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", "<html></html>", "<html></html>"},
		{"json fence", "```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"html fence", "```html\n<html></html>\n```", "<html></html>"},
		{"bare fence", "```\nbody {}\n```", "body {}"},
		{"surrounding whitespace", "  ```js\nlet x;\n```  ", "let x;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanFences(tt.in))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"prose around object", `Sure! Here it is: {"a": 1} Hope that helps.`, `{"a": 1}`},
		{"fenced array", "```json\n[1, 2]\n```", "[1, 2]"},
		{"array before object", `[{"a": 1}]`, `[{"a": 1}]`},
		{"no json", "no structured data here", "no structured data here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	assert.False(t, IsRateLimitError(nil))
	assert.False(t, IsRateLimitError(errors.New("connection refused")))
	assert.True(t, IsRateLimitError(errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")))
	assert.True(t, IsRateLimitError(errors.New("rate_limit_error: exceeded")))
	assert.True(t, IsRateLimitError(errors.New("quota exceeded for metric")))
}

func TestExtractRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(nil))
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(errors.New("some error")))
	assert.Equal(t, 7*time.Second, ExtractRetryDelay(errors.New("Please retry in 7s")))
	assert.Equal(t, 2500*time.Millisecond, ExtractRetryDelay(errors.New("retryDelay: 2.5s")))
}

func TestCalculateBackoff(t *testing.T) {
	c := NewDefaultRetryConfig()

	assert.Equal(t, 2*time.Second, c.CalculateBackoff(0, 0))
	assert.Equal(t, 4*time.Second, c.CalculateBackoff(1, 0))
	assert.Equal(t, 8*time.Second, c.CalculateBackoff(2, 0))

	// API-suggested delay becomes the base, plus a second of slack
	assert.Equal(t, 11*time.Second, c.CalculateBackoff(0, 10*time.Second))

	// Capped at MaxBackoff
	assert.Equal(t, 60*time.Second, c.CalculateBackoff(10, 0))
}

func newTestFactory() *ProviderFactory {
	cfg := common.NewDefaultConfig()
	return NewProviderFactory(&cfg.Gemini, &cfg.Claude, &cfg.LLM, common.GetLogger())
}

func TestDetectProvider(t *testing.T) {
	f := newTestFactory()

	tests := []struct {
		model string
		want  ProviderType
	}{
		{"", ProviderGemini},
		{"gemini-3-flash-preview", ProviderGemini},
		{"claude-haiku-3-5-20241022", ProviderClaude},
		{"claude/claude-haiku-3-5-20241022", ProviderClaude},
		{"anthropic/claude-sonnet-4", ProviderClaude},
		{"google/gemini-3-flash-preview", ProviderGemini},
		{"something-else", ProviderGemini},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.DetectProvider(tt.model), tt.model)
	}
}

func TestNormalizeModel(t *testing.T) {
	f := newTestFactory()

	assert.Equal(t, "claude-sonnet-4", f.NormalizeModel("claude/claude-sonnet-4"))
	assert.Equal(t, "gemini-3-flash-preview", f.NormalizeModel("gemini/gemini-3-flash-preview"))
	assert.Equal(t, "claude-sonnet-4", f.NormalizeModel("claude-sonnet-4"))
}

func TestProviderFactory_ConcurrentClientCaching(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Claude.APIKey = "sk-ant-test-key"
	f := NewProviderFactory(&cfg.Gemini, &cfg.Claude, &cfg.LLM, common.GetLogger())

	// Jobs share one factory, so first-use initialization races unless the
	// cache is guarded. Run with -race to catch regressions.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.getClaudeClient(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.NoError(t, f.Close())
	_, err := f.getClaudeClient()
	assert.NoError(t, err)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("short"))
	assert.Equal(t, "AIza...wxyz", maskKey("AIzaSomeLongKeywxyz"))
}
