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

package infra

import (
	"context"
	"os"

	clc "github.com/cloudwego/eino-ext/callbacks/cozeloop"
	"github.com/cloudwego/eino-ext/devops"
	"github.com/cloudwego/eino/callbacks"
	"github.com/coze-dev/cozeloop-go"

	"github.com/cloudwego/eino-research-companion/internal/logs"
)

// InitTracing registers the optional global callback handlers and returns a
// shutdown func that flushes them. It never returns nil.
//
// CozeLoop tracing is enabled by COZELOOP_API_TOKEN and COZELOOP_WORKSPACE_ID,
// see https://loop.coze.cn/open/docs/cozeloop/go-sdk. EINO_DEVOPS=true starts
// the eino visual debugging server.
func InitTracing(ctx context.Context, verbose bool) func(ctx context.Context) {
	var (
		handlers []callbacks.Handler
		closers  []func(ctx context.Context)
	)

	cozeloopApiToken := os.Getenv("COZELOOP_API_TOKEN")
	cozeloopWorkspaceID := os.Getenv("COZELOOP_WORKSPACE_ID")
	if cozeloopApiToken != "" && cozeloopWorkspaceID != "" {
		client, err := cozeloop.NewClient(
			cozeloop.WithAPIToken(cozeloopApiToken),
			cozeloop.WithWorkspaceID(cozeloopWorkspaceID),
		)
		if err != nil {
			logs.Warnf("init cozeloop client failed, tracing disabled: %v", err)
		} else {
			logs.Infof("cozeloop tracing enabled")
			handlers = append(handlers, clc.NewLoopHandler(client))
			closers = append(closers, func(ctx context.Context) { client.Close(ctx) })
		}
	}

	if os.Getenv("EINO_DEVOPS") == "true" {
		if err := devops.Init(ctx); err != nil {
			logs.Warnf("[eino dev] init failed: %v", err)
		}
	}

	if verbose {
		handlers = append(handlers, NewLogHandler())
	}
	if len(handlers) > 0 {
		callbacks.AppendGlobalHandlers(handlers...)
	}

	return func(ctx context.Context) {
		for _, c := range closers {
			c(ctx)
		}
	}
}
