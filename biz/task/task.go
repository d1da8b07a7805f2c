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
	"github.com/cloudwego/eino-research-companion/biz/role"
)

// Task is one prompted unit of work. Prerequisites point at tasks declared
// earlier in the same request; their outputs are fed into this task's prompt.
type Task struct {
	ID             string
	Title          string
	Instruction    string
	ExpectedOutput string
	Role           *role.Role
	Prerequisites  []*Task

	// SearchQuery, when set, asks the runner to ground the task with web search results.
	SearchQuery string
}

// Validate checks that tasks can run in the order given: IDs are unique, every
// task has a role and every prerequisite appears before its dependent.
// Together these rule out cycles without a topological sort.
func Validate(tasks []*Task) error {
	if len(tasks) == 0 {
		return invalidf("", "no tasks")
	}

	seen := make(map[*Task]bool, len(tasks))
	ids := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return invalidf("", "task #%d is nil", i)
		}
		if t.ID == "" {
			return invalidf("", "task #%d has no id", i)
		}
		if ids[t.ID] {
			return invalidf(t.ID, "duplicate id")
		}
		if t.Role == nil {
			return invalidf(t.ID, "no owning role")
		}
		if t.Instruction == "" {
			return invalidf(t.ID, "empty instruction")
		}
		for _, p := range t.Prerequisites {
			if p == nil {
				return invalidf(t.ID, "nil prerequisite")
			}
			if !seen[p] {
				return invalidf(t.ID, "prerequisite %q is not declared before it", p.ID)
			}
		}
		seen[t] = true
		ids[t.ID] = true
	}
	return nil
}
