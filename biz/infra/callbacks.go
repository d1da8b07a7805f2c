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

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/cloudwego/eino-research-companion/internal/logs"
)

// NewLogHandler logs the start, end and failure of model calls and runs at
// info level, so it is visible with the default log configuration.
func NewLogHandler() callbacks.Handler {
	return callbacks.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
			if info.Component == components.ComponentOfChatModel {
				if in := model.ConvCallbackInput(input); in != nil {
					logs.Infof("[callback] start [%s:%s:%s] %d messages", info.Component, info.Type, info.Name, len(in.Messages))
					return ctx
				}
			}
			logs.Infof("[callback] start [%s:%s:%s]", info.Component, info.Type, info.Name)
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
			if info.Component == components.ComponentOfChatModel {
				if out := model.ConvCallbackOutput(output); out != nil && out.Message != nil {
					logs.Infof("[callback] end [%s:%s:%s] %d chars", info.Component, info.Type, info.Name, len(out.Message.Content))
					return ctx
				}
			}
			logs.Infof("[callback] end [%s:%s:%s]", info.Component, info.Type, info.Name)
			return ctx
		}).
		OnEndWithStreamOutputFn(func(ctx context.Context, info *callbacks.RunInfo, output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
			output.Close()
			return ctx
		}).
		OnStartWithStreamInputFn(func(ctx context.Context, info *callbacks.RunInfo, input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
			input.Close()
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			logs.Warnf("[callback] error [%s:%s:%s] %v", info.Component, info.Type, info.Name, err)
			return ctx
		}).
		Build()
}
