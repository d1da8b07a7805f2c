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
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/cloudwego/eino-research-companion/biz/task"
)

const (
	systemTpl = `You are {role}. {persona}
Your personal goal is: {objective}`

	userTpl = `Current Task: {instruction}

This is the expected criteria for your final answer: {expected_output}
You MUST return the actual complete content as the final answer, not a summary.{context}`
)

var taskTemplate = prompt.FromMessages(schema.FString,
	schema.SystemMessage(systemTpl),
	schema.UserMessage(userTpl),
)

// renderPrompt builds the messages for t. prior holds the outputs of
// t.Prerequisites in the same order; grounding is optional search output.
func renderPrompt(ctx context.Context, t *task.Task, prior []string, grounding string) ([]*schema.Message, error) {
	return taskTemplate.Format(ctx, map[string]any{
		"role":            t.Role.Label,
		"persona":         t.Role.Persona,
		"objective":       t.Role.Objective,
		"instruction":     t.Instruction,
		"expected_output": t.ExpectedOutput,
		"context":         taskContext(t, prior, grounding),
	})
}

func taskContext(t *task.Task, prior []string, grounding string) string {
	if len(prior) == 0 && grounding == "" {
		return ""
	}

	var sb strings.Builder
	if len(prior) > 0 {
		sb.WriteString("\n\nThis is the context you're working with:")
		for i, out := range prior {
			fmt.Fprintf(&sb, "\n\n### %s\n%s", t.Prerequisites[i].Title, out)
		}
	}
	if grounding != "" {
		fmt.Fprintf(&sb, "\n\nWeb search results for %q:\n%s", t.SearchQuery, grounding)
	}
	return sb.String()
}

func promptSize(msgs []*schema.Message) int {
	n := 0
	for _, m := range msgs {
		n += len(m.Content)
	}
	return n
}
