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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/eino-research-companion/biz/companion"
	"github.com/cloudwego/eino-research-companion/conf"
)

// failingModel answers every call until call number failOn, which returns err.
type failingModel struct {
	calls  int
	failOn int
	err    error
}

func (m *failingModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.failOn > 0 && m.calls == m.failOn {
		return nil, m.err
	}
	return schema.AssistantMessage(fmt.Sprintf("section %d", m.calls), nil), nil
}

func (m *failingModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func testConfig(t *testing.T) *conf.Config {
	t.Helper()
	cfg := conf.Default()
	cfg.Model.APIKey = "unused"
	cfg.Log.Verbose = false
	cfg.Output.Path = filepath.Join(t.TempDir(), "out.md")
	return cfg
}

func loadConfig(cfg *conf.Config) loadFunc {
	return func() (*conf.Config, error) { return cfg, nil }
}

func buildWith(m model.BaseChatModel) buildFunc {
	return func(ctx context.Context, cfg *conf.Config) (*companion.Companion, error) {
		return companion.New(ctx, cfg, companion.WithChatModel(m))
	}
}

func TestRunSuccess(t *testing.T) {
	cfg := testConfig(t)
	m := &failingModel{}
	var out bytes.Buffer

	code := run(context.Background(), strings.NewReader("4\n"), &out, loadConfig(cfg), buildWith(m))

	assert.Equal(t, 0, code)
	assert.Equal(t, 3, m.calls)
	assert.Contains(t, out.String(), "📋 Selected topic: Graph neural networks for drug discovery")
	assert.Contains(t, out.String(), "Executing analysis with 3 tasks")
	assert.Contains(t, out.String(), "ANALYSIS COMPLETED SUCCESSFULLY!")
	assert.Contains(t, out.String(), "Estimated cost")
	assert.Contains(t, out.String(), "Program finished.")
	assert.NotContains(t, out.String(), "Common issues")

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Research Gap Analysis\n\nsection 3")
}

func TestRunEmptyInputUsesFirstTopic(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	code := run(context.Background(), strings.NewReader(""), &out, loadConfig(cfg), buildWith(&failingModel{}))

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Selected topic: "+exampleTopics[0])
}

func TestRunInitFailure(t *testing.T) {
	cases := []struct {
		name  string
		load  loadFunc
		build buildFunc
	}{
		{
			name: "config",
			load: func() (*conf.Config, error) { return nil, errors.New("OPENAI_API_KEY is not set") },
		},
		{
			name: "companion",
			load: func() (*conf.Config, error) {
				cfg := testConfig(t)
				cfg.Model.Provider = "nope"
				return cfg, nil
			},
			build: func(ctx context.Context, cfg *conf.Config) (*companion.Companion, error) {
				return companion.New(ctx, cfg)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(context.Background(), strings.NewReader("1\n"), &out, tc.load, tc.build)

			assert.Equal(t, 1, code)
			assert.Contains(t, out.String(), "Failed to initialize")
			assert.NotContains(t, out.String(), "Available research topics")
		})
	}
}

func TestRunAnalysisFailure(t *testing.T) {
	for _, exitCode := range []int{0, 1} {
		t.Run(fmt.Sprintf("exit_%d", exitCode), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.CLI.ExitCodeOnFailure = exitCode
			m := &failingModel{failOn: 2, err: errors.New("insufficient_quota")}
			var out bytes.Buffer

			code := run(context.Background(), strings.NewReader("2\n"), &out, loadConfig(cfg), buildWith(m))

			assert.Equal(t, exitCode, code)
			assert.Equal(t, 2, m.calls)
			assert.Contains(t, out.String(), "Analysis failed")
			assert.Contains(t, out.String(), "insufficient_quota")
			assert.Contains(t, out.String(), "Common issues")
			assert.Contains(t, out.String(), "Detailed error")
			assert.Contains(t, out.String(), "Program finished.")
			assert.NotContains(t, out.String(), "ANALYSIS COMPLETED")
			assert.NoFileExists(t, cfg.Output.Path)
		})
	}
}

func TestRunPersistFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.CLI.ExitCodeOnFailure = 3
	cfg.Output.Path = filepath.Join(t.TempDir(), "missing", "out.md")
	m := &failingModel{}
	var out bytes.Buffer

	code := run(context.Background(), strings.NewReader("my custom topic\n"), &out, loadConfig(cfg), buildWith(m))

	assert.Equal(t, 3, code)
	assert.Equal(t, 3, m.calls)
	assert.Contains(t, out.String(), "Selected topic: my custom topic")
	assert.Contains(t, out.String(), "Analysis failed")
	assert.Contains(t, out.String(), "Common issues")
	assert.Contains(t, out.String(), "create report")
	assert.NotContains(t, out.String(), "Results saved")
}

func TestCostEstimate(t *testing.T) {
	cfg := conf.Default()
	_, ok := costEstimate(cfg)
	assert.True(t, ok)

	cfg.Model.Provider = conf.ProviderOllama
	cfg.Model.Name = "llama3"
	_, ok = costEstimate(cfg)
	assert.False(t, ok)
}
