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

package task

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/eino-research-companion/biz/role"
)

type nopChatModel struct{}

func (nopChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage("", nil), nil
}

func (nopChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage("", nil)}), nil
}

func newRoster(t *testing.T) *role.Roster {
	t.Helper()
	roster, err := role.NewRoster(nopChatModel{}, false)
	require.NoError(t, err)
	return roster
}

func TestBuild(t *testing.T) {
	roster := newRoster(t)

	for _, topic := range []string{
		"Graph neural networks for drug discovery",
		"x",
		`quotes "and" {braces}`,
	} {
		tasks := Build(topic, roster)
		require.Len(t, tasks, ResearchTaskCount)

		assert.Equal(t, []string{IDExplanation, IDLiterature, IDGapAnalysis},
			[]string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
		assert.Empty(t, tasks[0].Prerequisites)
		assert.Equal(t, []*Task{tasks[0]}, tasks[1].Prerequisites)
		assert.Equal(t, []*Task{tasks[0], tasks[1]}, tasks[2].Prerequisites)

		assert.Same(t, roster.Explainer, tasks[0].Role)
		assert.Same(t, roster.LiteratureFinder, tasks[1].Role)
		assert.Same(t, roster.GapAnalyzer, tasks[2].Role)

		for _, tk := range tasks {
			assert.Contains(t, tk.Instruction, `"`+topic+`"`)
			assert.NotEmpty(t, tk.ExpectedOutput)
		}
		assert.Contains(t, tasks[1].SearchQuery, topic)
		assert.NoError(t, Validate(tasks))
	}
}

func TestBuildIsFreshPerRequest(t *testing.T) {
	roster := newRoster(t)
	a := Build("first", roster)
	b := Build("second", roster)
	assert.NotSame(t, a[0], b[0])
	assert.Same(t, a[0].Role, b[0].Role)
}

func TestValidate(t *testing.T) {
	r := newRoster(t).Explainer
	first := &Task{ID: "a", Instruction: "do a", Role: r}
	second := &Task{ID: "b", Instruction: "do b", Role: r, Prerequisites: []*Task{first}}

	tests := []struct {
		name    string
		tasks   []*Task
		wantMsg string
	}{
		{name: "empty", tasks: nil, wantMsg: "no tasks"},
		{name: "nil task", tasks: []*Task{first, nil}, wantMsg: "is nil"},
		{name: "missing id", tasks: []*Task{{Instruction: "x", Role: r}}, wantMsg: "has no id"},
		{name: "duplicate id", tasks: []*Task{first, {ID: "a", Instruction: "x", Role: r}}, wantMsg: "duplicate id"},
		{name: "no role", tasks: []*Task{{ID: "a", Instruction: "x"}}, wantMsg: "no owning role"},
		{name: "no instruction", tasks: []*Task{{ID: "a", Role: r}}, wantMsg: "empty instruction"},
		{name: "out of order", tasks: []*Task{second, first}, wantMsg: `prerequisite "a"`},
		{name: "self reference", tasks: func() []*Task {
			self := &Task{ID: "s", Instruction: "x", Role: r}
			self.Prerequisites = []*Task{self}
			return []*Task{self}
		}(), wantMsg: `prerequisite "s"`},
		{name: "nil prerequisite", tasks: []*Task{{ID: "a", Instruction: "x", Role: r, Prerequisites: []*Task{nil}}}, wantMsg: "nil prerequisite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tasks)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGraph))

			var ge *GraphError
			require.True(t, errors.As(err, &ge))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	assert.NoError(t, Validate([]*Task{first, second}))
}
