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
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/pkg/errors"

	"github.com/cloudwego/eino-research-companion/biz/role"
	"github.com/cloudwego/eino-research-companion/biz/task"
	"github.com/cloudwego/eino-research-companion/internal/logs"
)

type Mode string

const (
	// ModeSequential runs tasks one by one in the order given.
	ModeSequential Mode = "sequential"
	// ModeWorkflow compiles the task graph into an eino workflow, letting
	// independent tasks run concurrently.
	ModeWorkflow Mode = "workflow"
)

const (
	runnerName = "ResearchCompanion"
	taskType   = "ResearchTask"

	componentOfRunner components.Component = "TaskRunner"

	previewChars = 200
)

type Config struct {
	Mode Mode
	// ModelOptions are passed to every Generate call, typically model name and temperature.
	ModelOptions []model.Option
	// Search grounds tasks that carry a SearchQuery. Optional.
	Search tool.InvokableTool
	// Handlers receive callbacks for the run in addition to the global handlers.
	Handlers []callbacks.Handler
}

// Runner executes a list of tasks, feeding each task the outputs of its
// prerequisites. The first failing model call aborts the run.
type Runner struct {
	mode      Mode
	modelOpts []model.Option
	search    tool.InvokableTool
	handlers  []callbacks.Handler
}

func New(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeSequential
	}
	return &Runner{
		mode:      mode,
		modelOpts: cfg.ModelOptions,
		search:    cfg.Search,
		handlers:  cfg.Handlers,
	}
}

// Run executes tasks once each and returns their outputs. roles lists the
// roles allowed to own tasks.
func (r *Runner) Run(ctx context.Context, roles []*role.Role, tasks []*task.Task) (*Result, error) {
	if err := check(roles, tasks); err != nil {
		return nil, err
	}

	logs.Infof("executing %d tasks in %s mode", len(tasks), r.mode)
	switch r.mode {
	case ModeSequential:
		return r.runSequential(ctx, tasks)
	case ModeWorkflow:
		return r.runWorkflow(ctx, tasks)
	default:
		return nil, errors.Errorf("unknown runner mode %q", r.mode)
	}
}

func (r *Runner) runSequential(ctx context.Context, tasks []*task.Task) (*Result, error) {
	ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
		Name:      runnerName,
		Type:      string(ModeSequential),
		Component: componentOfRunner,
	}, r.handlers...)

	result := newResult()
	for i, t := range tasks {
		logs.Infof("task %d/%d: %s [%s]", i+1, len(tasks), t.Title, t.Role.Label)

		prior := make([]string, 0, len(t.Prerequisites))
		for _, p := range t.Prerequisites {
			prior = append(prior, result.Output(p.ID).Content)
		}

		out, err := r.execute(ctx, t, prior)
		if err != nil {
			return nil, err
		}
		result.add(out)
	}
	return result, nil
}

// execute renders the prompt of t and makes exactly one model call.
func (r *Runner) execute(ctx context.Context, t *task.Task, prior []string) (*TaskOutput, error) {
	ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      t.Title,
		Type:      taskType,
		Component: components.ComponentOfChatModel,
	})

	grounding := r.ground(ctx, t)
	msgs, err := renderPrompt(ctx, t, prior, grounding)
	if err != nil {
		return nil, errors.Wrapf(err, "render prompt of task %s", t.ID)
	}
	if t.Role.Verbose {
		logs.Infof("[%s] prompt for %q: %d messages, %d chars", t.Role.Label, t.Title, len(msgs), promptSize(msgs))
	}

	start := time.Now()
	msg, err := t.Role.Model.Generate(ctx, msgs, r.modelOpts...)
	if err != nil {
		logs.Errorf("task %s failed: %v", t.ID, err)
		return nil, errors.Wrapf(err, "task %s (%s)", t.ID, t.Role.Label)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return nil, errors.Errorf("task %s (%s): model returned an empty answer", t.ID, t.Role.Label)
	}

	out := &TaskOutput{
		TaskID:   t.ID,
		Title:    t.Title,
		Role:     t.Role.Label,
		Content:  msg.Content,
		Elapsed:  time.Since(start),
		Grounded: grounding != "",
	}
	if t.Role.Verbose {
		logs.Infof("[%s] finished %q in %s: %s", t.Role.Label, t.Title, out.Elapsed.Round(time.Millisecond), preview(out.Content))
	}
	return out, nil
}

type searchRequest struct {
	Query string `json:"query"`
}

// ground runs the search tool for tasks that ask for it. Search is best
// effort: a failure is logged and the task runs without results.
func (r *Runner) ground(ctx context.Context, t *task.Task) string {
	if r.search == nil || t.SearchQuery == "" {
		return ""
	}

	args, err := sonic.MarshalString(&searchRequest{Query: t.SearchQuery})
	if err != nil {
		logs.Warnf("encode search request for task %s: %v", t.ID, err)
		return ""
	}
	res, err := r.search.InvokableRun(ctx, args)
	if err != nil {
		logs.Warnf("search for task %s failed, continuing without it: %v", t.ID, err)
		return ""
	}
	return strings.TrimSpace(res)
}

func check(roles []*role.Role, tasks []*task.Task) error {
	if err := task.Validate(tasks); err != nil {
		return err
	}

	known := make(map[*role.Role]bool, len(roles))
	for _, rl := range roles {
		if rl == nil {
			return errors.New("nil role")
		}
		if rl.AllowDelegation {
			return errors.Errorf("role %q allows delegation, which is not supported", rl.Label)
		}
		known[rl] = true
	}
	for _, t := range tasks {
		if !known[t.Role] {
			return errors.Errorf("task %s is owned by unknown role %q", t.ID, t.Role.Label)
		}
	}
	return nil
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > previewChars {
		return string(r[:previewChars]) + "..."
	}
	return s
}
