// Package llm adapts language model clients to the insight domain.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yanqian/moodsip/internal/domain/insight"
	"github.com/yanqian/moodsip/internal/domain/meal"
	"github.com/yanqian/moodsip/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
	"github.com/yanqian/moodsip/pkg/metrics"
)

// DefaultMealPrompt is the system prompt used when none is configured.
const DefaultMealPrompt = `You are a nutrition coach. You receive a user's recent meals with mood and energy ratings (1-5) before and after each meal.
Reply with a JSON object {"insights": [...]} holding at most 3 short, friendly observations about how the meals relate to mood and energy.`

type completer interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatGPTMealInsights asks ChatGPT for insights about recent meals.
type ChatGPTMealInsights struct {
	client      completer
	model       string
	temperature float32
	prompt      string
}

var _ insight.LLM = (*ChatGPTMealInsights)(nil)

// NewChatGPTMealInsights constructs the adapter.
func NewChatGPTMealInsights(client *chatgpt.Client, model string, temperature float32, prompt string) *ChatGPTMealInsights {
	return newChatGPTMealInsights(client, model, temperature, prompt)
}

func newChatGPTMealInsights(client completer, model string, temperature float32, prompt string) *ChatGPTMealInsights {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultMealPrompt
	}
	return &ChatGPTMealInsights{client: client, model: model, temperature: temperature, prompt: prompt}
}

type recentMeal struct {
	MealType     string `json:"mealType"`
	MealName     string `json:"mealName"`
	FoodCategory string `json:"foodCategory"`
	Time         string `json:"time"`
	MoodBefore   int    `json:"moodBefore"`
	MoodAfter    int    `json:"moodAfter"`
	EnergyBefore int    `json:"energyBefore"`
	EnergyAfter  int    `json:"energyAfter"`
}

type mealInsightsReply struct {
	Insights []string `json:"insights"`
}

// MealInsights sends the meals as {"recent_meals": [...]} and parses the reply.
func (l *ChatGPTMealInsights) MealInsights(ctx context.Context, meals []meal.Entry) (insight.LLMResult, error) {
	recent := make([]recentMeal, 0, len(meals))
	for _, m := range meals {
		recent = append(recent, recentMeal{
			MealType:     string(m.MealType),
			MealName:     m.MealName,
			FoodCategory: string(m.FoodCategory),
			Time:         m.Time,
			MoodBefore:   m.MoodBefore,
			MoodAfter:    m.MoodAfter,
			EnergyBefore: m.EnergyBefore,
			EnergyAfter:  m.EnergyAfter,
		})
	}
	payload, err := json.Marshal(map[string]any{"recent_meals": recent})
	if err != nil {
		return insight.LLMResult{}, apperrors.Wrap(apperrors.CodeLLM, "encode recent meals", err)
	}

	resp, err := l.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       l.model,
		Temperature: l.temperature,
		Messages: []chatgpt.Message{
			{Role: "system", Content: l.prompt},
			{Role: "user", Content: string(payload)},
		},
		ResponseFormat: chatgpt.JSONObject,
	})
	if err != nil {
		return insight.LLMResult{}, apperrors.Wrap(apperrors.CodeLLM, "meal insights completion failed", err)
	}
	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}

	insights, err := parseInsights(resp.Content())
	if err != nil {
		return insight.LLMResult{Usage: usage}, apperrors.Wrap(apperrors.CodeLLM, "parse meal insights", err)
	}
	return insight.LLMResult{Insights: insights, Usage: usage}, nil
}

func parseInsights(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty completion")
	}
	var reply mealInsightsReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(reply.Insights))
	for _, s := range reply.Insights {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
