/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package infra

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/cloudwego/eino-research-companion/conf"
	"github.com/cloudwego/eino-research-companion/internal/gptr"
)

const defaultOllamaURL = "http://localhost:11434"

// NewChatModel creates the chat model client of the configured provider.
// Temperature and model name are also sent per call, see ModelOptions.
func NewChatModel(ctx context.Context, cfg *conf.Config) (model.BaseChatModel, error) {
	var (
		cm  model.BaseChatModel
		err error
		mc  = cfg.Model
	)

	switch mc.Provider {
	case conf.ProviderOpenAI:
		cm, err = asChatModel(openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     mc.BaseURL,
			APIKey:      mc.APIKey,
			Model:       mc.Name,
			Temperature: gptr.Of(float32(mc.Temperature)),
			Timeout:     mc.Timeout,
		}))
	case conf.ProviderDeepSeek:
		cm, err = asChatModel(deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			BaseURL: mc.BaseURL,
			APIKey:  mc.APIKey,
			Model:   mc.Name,
			Timeout: mc.Timeout,
		}))
	case conf.ProviderArk:
		cm, err = asChatModel(ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey: mc.APIKey,
			Model:  mc.Name,
		}))
	case conf.ProviderOllama:
		baseURL := mc.BaseURL
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
		cm, err = asChatModel(ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   mc.Name,
			Timeout: mc.Timeout,
		}))
	default:
		return nil, fmt.Errorf("unsupported model provider %q", mc.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s chat model failed: %w", mc.Provider, err)
	}
	return cm, nil
}

// asChatModel keeps a failed constructor from leaking a typed nil interface.
func asChatModel[M model.BaseChatModel](m M, err error) (model.BaseChatModel, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ModelOptions are the per-call options every task sends to the model.
func ModelOptions(cfg *conf.Config) []model.Option {
	return []model.Option{
		model.WithModel(cfg.Model.Name),
		model.WithTemperature(float32(cfg.Model.Temperature)),
	}
}
