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
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TaskOutput is the recorded answer of one task.
type TaskOutput struct {
	TaskID   string        `json:"task_id"`
	Title    string        `json:"title"`
	Role     string        `json:"role"`
	Content  string        `json:"content"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Grounded bool          `json:"grounded"`
}

// Result holds every task output of one run, in execution order.
type Result struct {
	Topic   string
	Outputs *orderedmap.OrderedMap[string, *TaskOutput]
}

func newResult() *Result {
	return &Result{Outputs: orderedmap.New[string, *TaskOutput]()}
}

func (r *Result) add(out *TaskOutput) {
	r.Outputs.Set(out.TaskID, out)
}

// Output returns the output of the task with the given id, or nil.
func (r *Result) Output(taskID string) *TaskOutput {
	out, _ := r.Outputs.Get(taskID)
	return out
}

// List returns the outputs in execution order.
func (r *Result) List() []*TaskOutput {
	list := make([]*TaskOutput, 0, r.Outputs.Len())
	for pair := r.Outputs.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, pair.Value)
	}
	return list
}

// Final is the answer of the last task.
func (r *Result) Final() string {
	if pair := r.Outputs.Newest(); pair != nil {
		return pair.Value.Content
	}
	return ""
}

// String concatenates every task output under a level-two heading.
func (r *Result) String() string {
	var sb strings.Builder
	for i, out := range r.List() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("## ")
		sb.WriteString(out.Title)
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(out.Content))
	}
	return sb.String()
}
