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

	duckduckgo "github.com/cloudwego/eino-ext/components/tool/duckduckgo/v2"
	"github.com/cloudwego/eino/components/tool"

	"github.com/cloudwego/eino-research-companion/conf"
)

// NewSearchTool returns the web search tool used to ground the literature
// review, or nil when search is disabled.
func NewSearchTool(ctx context.Context, cfg *conf.Config) (tool.InvokableTool, error) {
	if !cfg.Search.Enabled {
		return nil, nil
	}
	t, err := duckduckgo.NewTextSearchTool(ctx, &duckduckgo.Config{
		MaxResults: cfg.Search.MaxResults,
		Timeout:    cfg.Search.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
