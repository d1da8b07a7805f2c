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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloudwego/eino-research-companion/biz/companion"
	"github.com/cloudwego/eino-research-companion/biz/infra"
	"github.com/cloudwego/eino-research-companion/biz/task"
	"github.com/cloudwego/eino-research-companion/conf"
	"github.com/cloudwego/eino-research-companion/internal/logs"
)

var rule = strings.Repeat("=", 80)

type (
	loadFunc  func() (*conf.Config, error)
	buildFunc func(ctx context.Context, cfg *conf.Config) (*companion.Companion, error)
)

func main() {
	load := func() (*conf.Config, error) {
		return conf.Load(conf.PathFromEnv())
	}
	build := func(ctx context.Context, cfg *conf.Config) (*companion.Companion, error) {
		return companion.New(ctx, cfg)
	}
	os.Exit(run(context.Background(), os.Stdin, os.Stdout, load, build))
}

// run drives one interactive analysis and returns the process exit code.
func run(ctx context.Context, in io.Reader, out io.Writer, load loadFunc, build buildFunc) int {
	defer logs.Sync()

	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "🎯 AI RESEARCH PAPER COMPANION")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "🚀 Starting AI Research Paper Companion...")

	cfg, err := load()
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to initialize: %v\n", err)
		return 1
	}
	if err := logs.SetLevel(cfg.Log.Level); err != nil {
		logs.Warnf("invalid log level %q, keeping info: %v", cfg.Log.Level, err)
	}

	shutdown := infra.InitTracing(ctx, cfg.Log.Verbose)
	defer shutdown(ctx)

	c, err := build(ctx, cfg)
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to initialize: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, "✅ Research companion initialized successfully!")

	printMenu(out)
	choice, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && choice == "" {
		logs.Debugf("no menu answer read: %v", err)
	}
	topic := selectTopic(choice)

	fmt.Fprintf(out, "\n📋 Selected topic: %s\n", topic)
	fmt.Fprintln(out, "⏳ This analysis will take 3-5 minutes...")
	fmt.Fprintln(out, rule)

	code := 0
	if err := analyze(ctx, out, c, cfg, topic); err != nil {
		fmt.Fprintf(out, "\n❌ Analysis failed: %v\n", err)
		fmt.Fprintln(out, "💡 Common issues:")
		fmt.Fprintln(out, "  - Check your API key")
		fmt.Fprintln(out, "  - Ensure you have sufficient API credits")
		fmt.Fprintln(out, "  - Check your internet connection")
		fmt.Fprintln(out, "\n🔍 Detailed error:")
		fmt.Fprintf(out, "%+v\n", err)
		code = cfg.CLI.ExitCodeOnFailure
	}

	fmt.Fprintln(out, "\n🏁 Program finished.")
	return code
}

// analyze runs the analysis and persists it. Failures of either step are
// returned to run, which reports them the same way.
func analyze(ctx context.Context, out io.Writer, c *companion.Companion, cfg *conf.Config, topic string) error {
	fmt.Fprintf(out, "\n🚀 Executing analysis with %d tasks...\n", task.ResearchTaskCount)
	res, err := c.Analyze(ctx, topic)
	if err != nil {
		return err
	}

	report := res.String()
	if err := c.Persist(report, cfg.Output.Path); err != nil {
		return err
	}
	fmt.Fprintf(out, "📄 Results saved to %s\n", cfg.Output.Path)

	if cfg.Output.TranscriptPath != "" {
		if err := c.SaveTranscript(res, cfg.Output.TranscriptPath); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "✅ ANALYSIS COMPLETED SUCCESSFULLY!")
	fmt.Fprintf(out, "📄 Check '%s' for detailed results.\n", cfg.Output.Path)
	fmt.Fprintln(out, rule)

	if cfg.Output.PreviewChars > 0 {
		fmt.Fprintln(out, "\n📖 Preview of results:")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintln(out, preview(report, cfg.Output.PreviewChars)+"...")
		fmt.Fprintln(out, strings.Repeat("-", 40))
	}
	if estimate, ok := costEstimate(cfg); ok {
		fmt.Fprintf(out, "💰 Estimated cost: %s\n", estimate)
	}
	return nil
}

// costEstimate is only known for the default OpenAI model.
func costEstimate(cfg *conf.Config) (string, bool) {
	if cfg.Model.Provider == conf.ProviderOpenAI && cfg.Model.Name == "gpt-3.5-turbo" {
		return "~$0.50-2.00 (using GPT-3.5-turbo)", true
	}
	return "", false
}
