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

package role

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
)

// Role is a named persona that frames every prompt sent on its behalf.
// A Role is immutable once built.
type Role struct {
	Label     string
	Objective string
	Persona   string
	Model     model.BaseChatModel

	// Verbose makes the runner log the prompt and output of this role's tasks.
	Verbose bool
	// AllowDelegation is carried for completeness. Delegation between roles
	// is not supported and the runner rejects roles that ask for it.
	AllowDelegation bool
}

type Option func(r *Role)

func WithVerbose(v bool) Option {
	return func(r *Role) { r.Verbose = v }
}

func WithDelegation(v bool) Option {
	return func(r *Role) { r.AllowDelegation = v }
}

func New(label, objective, persona string, cm model.BaseChatModel, opts ...Option) (*Role, error) {
	r := &Role{
		Label:     strings.TrimSpace(label),
		Objective: strings.TrimSpace(objective),
		Persona:   normalize(persona),
		Model:     cm,
	}
	for _, opt := range opts {
		opt(r)
	}

	switch {
	case r.Label == "":
		return nil, fmt.Errorf("role label is empty")
	case r.Objective == "":
		return nil, fmt.Errorf("role %q: objective is empty", r.Label)
	case r.Persona == "":
		return nil, fmt.Errorf("role %q: persona is empty", r.Label)
	case r.Model == nil:
		return nil, fmt.Errorf("role %q: chat model is nil", r.Label)
	}
	return r, nil
}

func (r *Role) String() string {
	return r.Label
}

// normalize collapses the indentation of multi-line persona text into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
