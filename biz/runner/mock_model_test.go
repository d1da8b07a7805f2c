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

package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// scriptedModel answers the n-th Generate call with replies[n-1] and fails
// on call number failOn (1-based) when failOn > 0.
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	failOn  int
	err     error

	inputs [][]*schema.Message
	opts   [][]model.Option
}

func (m *scriptedModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inputs = append(m.inputs, input)
	m.opts = append(m.opts, opts)
	n := len(m.inputs)
	if n == m.failOn {
		return nil, m.err
	}
	if n > len(m.replies) {
		return nil, fmt.Errorf("unexpected call #%d", n)
	}
	return schema.AssistantMessage(m.replies[n-1], nil), nil
}

func (m *scriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream is not scripted")
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// userPrompt returns the last message of the n-th call (0-based).
func (m *scriptedModel) userPrompt(n int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	in := m.inputs[n]
	return in[len(in)-1].Content
}

type stubSearch struct {
	result string
	err    error
	args   []string
}

func (s *stubSearch) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{Name: "stub_search", Desc: "returns canned results"}, nil
}

func (s *stubSearch) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	s.args = append(s.args, argumentsInJSON)
	return s.result, s.err
}
