package aifx

import (
	"context"
	"os"

	"go.uber.org/fx"

	"tabiplan/pkg/utils"
)

var Module = fx.Provide(NewTextGenerator)

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewTextGenerator builds the configured provider client and wraps it in
// the quota-aware retry layer. The underlying client closes with the app.
func NewTextGenerator(lc fx.Lifecycle) (utils.TextGenerator, error) {
	provider := getEnvWithDefault("AI_PROVIDER", "gemini")

	var apiKey, model string
	switch provider {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = os.Getenv("OPENAI_MODEL")
	default:
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = os.Getenv("GEMINI_MODEL")
	}

	inner, err := utils.NewTextGenerator(context.Background(), provider, apiKey, model)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if closer, ok := inner.(interface{ Close() error }); ok {
				return closer.Close()
			}
			return nil
		},
	})

	return utils.NewRetryingGenerator(inner, utils.DefaultRetryPolicy()), nil
}
