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
	"bufio"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/cloudwego/eino-research-companion/biz/runner"
	"github.com/cloudwego/eino-research-companion/conf"
)

const (
	reportTitle     = "# AI Research Paper Companion Analysis"
	timestampLayout = "2006-01-02 15:04:05"
)

// WriteReport overwrites path with the report header followed by report
// verbatim. The file is closed before WriteReport returns.
func WriteReport(path, report string, at time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close report %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	_, _ = w.WriteString(reportTitle + "\n\n")
	_, _ = w.WriteString("Generated on: " + at.Format(timestampLayout) + "\n\n")
	_, _ = w.WriteString(report)
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}

type transcript struct {
	Topic       string               `json:"topic"`
	Provider    string               `json:"provider"`
	Model       string               `json:"model"`
	Temperature float64              `json:"temperature"`
	RunnerMode  string               `json:"runner_mode"`
	GeneratedAt string               `json:"generated_at"`
	Tasks       []*runner.TaskOutput `json:"tasks"`
}

func newTranscript(res *runner.Result, cfg *conf.Config, at time.Time) *transcript {
	return &transcript{
		Topic:       res.Topic,
		Provider:    cfg.Model.Provider,
		Model:       cfg.Model.Name,
		Temperature: cfg.Model.Temperature,
		RunnerMode:  cfg.Runner.Mode,
		GeneratedAt: at.Format(time.RFC3339),
		Tasks:       res.List(),
	}
}

func (t *transcript) write(path string) error {
	data, err := sonic.ConfigStd.MarshalIndent(t, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode transcript")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write transcript %s", path)
	}
	return nil
}
