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

package companion

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/pkg/errors"

	"github.com/cloudwego/eino-research-companion/biz/infra"
	"github.com/cloudwego/eino-research-companion/biz/role"
	"github.com/cloudwego/eino-research-companion/biz/runner"
	"github.com/cloudwego/eino-research-companion/biz/task"
	"github.com/cloudwego/eino-research-companion/conf"
	"github.com/cloudwego/eino-research-companion/internal/logs"
)

// Companion owns the research roles and turns a topic into a report.
type Companion struct {
	cfg    *conf.Config
	roster *role.Roster
	runner *runner.Runner
	now    func() time.Time
}

type options struct {
	chatModel model.BaseChatModel
	search    tool.InvokableTool
	now       func() time.Time
}

type Option func(o *options)

// WithChatModel replaces the provider client built from the configuration.
func WithChatModel(cm model.BaseChatModel) Option {
	return func(o *options) { o.chatModel = cm }
}

// WithSearchTool replaces the search tool built from the configuration.
func WithSearchTool(t tool.InvokableTool) Option {
	return func(o *options) { o.search = t }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the chat model client and the three research roles. An error
// here is an initialization failure.
func New(ctx context.Context, cfg *conf.Config, opts ...Option) (*Companion, error) {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	cm := o.chatModel
	if cm == nil {
		var err error
		if cm, err = infra.NewChatModel(ctx, cfg); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	logs.Infof("language model initialized: %s/%s", cfg.Model.Provider, cfg.Model.Name)

	search := o.search
	if search == nil && cfg.Search.Enabled {
		var err error
		if search, err = infra.NewSearchTool(ctx, cfg); err != nil {
			return nil, errors.Wrap(err, "create search tool")
		}
	}

	roster, err := role.NewRoster(cm, cfg.Log.Verbose)
	if err != nil {
		return nil, errors.Wrap(err, "set up research roles")
	}
	for _, r := range roster.All() {
		logs.Infof("role ready: %s", r.Label)
	}

	return &Companion{
		cfg:    cfg,
		roster: roster,
		runner: runner.New(&runner.Config{
			Mode:         runner.Mode(cfg.Runner.Mode),
			ModelOptions: infra.ModelOptions(cfg),
			Search:       search,
		}),
		now: o.now,
	}, nil
}

func (c *Companion) Roster() *role.Roster {
	return c.roster
}

// Analyze runs the explanation, literature review and gap analysis tasks for
// topic. Runner errors are returned as they are.
func (c *Companion) Analyze(ctx context.Context, topic string) (*runner.Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("research topic is empty")
	}

	logs.Infof("starting analysis of research topic: %s", topic)
	tasks := task.Build(topic, c.roster)

	res, err := c.runner.Run(ctx, c.roster.All(), tasks)
	if err != nil {
		return nil, err
	}
	res.Topic = topic
	return res, nil
}

// Persist writes report to path, replacing any previous content.
func (c *Companion) Persist(report, path string) error {
	if err := WriteReport(path, report, c.now()); err != nil {
		return err
	}
	logs.Infof("results saved to %s", path)
	return nil
}

// SaveTranscript writes the JSON transcript of res to path.
func (c *Companion) SaveTranscript(res *runner.Result, path string) error {
	t := newTranscript(res, c.cfg, c.now())
	if err := t.write(path); err != nil {
		return err
	}
	logs.Infof("transcript saved to %s", path)
	return nil
}
