package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

type stubCompleter struct {
	resp chatgpt.ChatCompletionResponse
	err  error
	req  chatgpt.ChatCompletionRequest
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.req = req
	return s.resp, s.err
}

func reply(content string) chatgpt.ChatCompletionResponse {
	var resp chatgpt.ChatCompletionResponse
	_ = json.Unmarshal([]byte(`{"choices":[{"message":{"role":"assistant","content":`+mustQuote(content)+`}}],"usage":{"prompt_tokens":40,"completion_tokens":12,"total_tokens":52}}`), &resp)
	return resp
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestMealInsightsParsesReply(t *testing.T) {
	stub := &stubCompleter{resp: reply("```json\n{\"insights\":[\"Salads lift your energy.\",\" \"]}\n```")}
	adapter := newChatGPTMealInsights(stub, "gpt-4o-mini", 0.3, "")

	result, err := adapter.MealInsights(context.Background(), []meal.Entry{{
		MealType: meal.TypeLunch, MealName: "Salad", FoodCategory: meal.CategorySalads, Time: "12:00",
		MoodBefore: 3, MoodAfter: 4, EnergyBefore: 3, EnergyAfter: 5,
	}})
	require.NoError(t, err)
	require.Equal(t, []string{"Salads lift your energy."}, result.Insights)
	require.Equal(t, 52, result.Usage.TotalTokens)

	require.Equal(t, "gpt-4o-mini", stub.req.Model)
	require.Equal(t, DefaultMealPrompt, stub.req.Messages[0].Content)
	require.Contains(t, stub.req.Messages[1].Content, `"recent_meals"`)
	require.Contains(t, stub.req.Messages[1].Content, `"mealName":"Salad"`)
	require.Equal(t, "json_object", stub.req.ResponseFormat.Type)
}

func TestMealInsightsErrors(t *testing.T) {
	adapter := newChatGPTMealInsights(&stubCompleter{err: errors.New("timeout")}, "m", 0, "custom")
	_, err := adapter.MealInsights(context.Background(), nil)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))

	adapter = newChatGPTMealInsights(&stubCompleter{resp: reply("not json")}, "m", 0, "custom")
	result, err := adapter.MealInsights(context.Background(), nil)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))
	require.Equal(t, 52, result.Usage.TotalTokens)
}

func TestChatGPTClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" {\"insights\":[\"Keep it up\"]} "}}],"usage":{"total_tokens":7}}`))
	}))
	defer srv.Close()

	client, err := chatgpt.NewClient("sk-test", srv.URL+"/")
	require.NoError(t, err)
	result, err := NewChatGPTMealInsights(client, "m", 0, "").MealInsights(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Keep it up"}, result.Insights)
	require.Equal(t, 7, result.Usage.TotalTokens)

	_, err = chatgpt.NewClient(" ", "")
	require.Error(t, err)
}
