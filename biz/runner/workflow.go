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
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/pkg/errors"

	"github.com/cloudwego/eino-research-companion/biz/task"
)

// startField receives the (empty) workflow input for tasks without prerequisites.
const startField = "_start"

// runWorkflow maps every task to a lambda node whose inputs are the outputs
// of its prerequisites. eino schedules the nodes by their dependencies.
func (r *Runner) runWorkflow(ctx context.Context, tasks []*task.Task) (*Result, error) {
	var (
		mu      sync.Mutex
		outputs = make(map[string]*TaskOutput, len(tasks))
	)

	wf := compose.NewWorkflow[string, map[string]any]()
	for _, t := range tasks {
		node := wf.AddLambdaNode(t.ID, compose.InvokableLambda(func(ctx context.Context, in map[string]any) (string, error) {
			prior := make([]string, 0, len(t.Prerequisites))
			for _, p := range t.Prerequisites {
				s, _ := in[p.ID].(string)
				prior = append(prior, s)
			}

			out, err := r.execute(ctx, t, prior)
			if err != nil {
				return "", err
			}

			mu.Lock()
			outputs[t.ID] = out
			mu.Unlock()
			return out.Content, nil
		}), compose.WithNodeName(t.Title))

		if len(t.Prerequisites) == 0 {
			node.AddInput(compose.START, compose.ToField(startField))
		}
		for _, p := range t.Prerequisites {
			node.AddInput(p.ID, compose.ToField(p.ID))
		}
		wf.End().AddInput(t.ID, compose.ToField(t.ID))
	}

	run, err := wf.Compile(ctx, compose.WithGraphName(runnerName))
	if err != nil {
		return nil, errors.Wrap(err, "compile task workflow")
	}

	// Tasks are already bound to their topic, so the workflow input is empty.
	if _, err = run.Invoke(ctx, "", compose.WithCallbacks(r.handlers...)); err != nil {
		return nil, err
	}

	result := newResult()
	for _, t := range tasks {
		out, ok := outputs[t.ID]
		if !ok {
			return nil, errors.Errorf("task %s produced no output", t.ID)
		}
		result.add(out)
	}
	return result, nil
}
