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
	"errors"
	"fmt"
)

var ErrInvalidGraph = errors.New("invalid task graph")

// GraphError reports why a task list cannot be executed in declaration order.
type GraphError struct {
	Task string
	Msg  string
}

func (e *GraphError) Error() string {
	if e.Task == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidGraph, e.Msg)
	}
	return fmt.Sprintf("%s: task %q: %s", ErrInvalidGraph, e.Task, e.Msg)
}

func (e *GraphError) Unwrap() error { return ErrInvalidGraph }

func invalidf(task, format string, args ...any) error {
	return &GraphError{Task: task, Msg: fmt.Sprintf(format, args...)}
}
