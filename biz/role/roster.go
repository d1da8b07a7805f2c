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
	"github.com/cloudwego/eino/components/model"
)

const (
	explainerLabel = "Research Topic Explainer"
	explainerGoal  = "Break down complex research topics into understandable components and provide comprehensive explanations"
	explainerBio   = `You are an expert academic researcher with a PhD in multiple disciplines.
You excel at taking complex research topics and breaking them down into digestible pieces.
You can explain technical concepts clearly, identify key terminology, and provide context
about how topics fit into broader research landscapes.`

	literatureLabel = "Academic Literature Researcher"
	literatureGoal  = "Find, evaluate, and summarize relevant academic papers and research materials"
	literatureBio   = `You are a skilled research librarian and academic researcher with expertise
in finding high-quality academic sources. You know how to search academic databases,
evaluate paper quality, identify seminal works, and find recent developments in any field.
You're excellent at determining which papers are most relevant and impactful.`

	gapLabel = "Research Gap Analyst"
	gapGoal  = "Identify research gaps, limitations, and future research directions from literature analysis"
	gapBio   = `You are a senior research strategist with extensive experience in identifying
research opportunities. You excel at analyzing existing literature to find what's missing,
what questions remain unanswered, and what methodological improvements could be made.
You're skilled at synthesizing findings and suggesting novel research directions.`
)

// Roster holds the three research roles, built once per process.
type Roster struct {
	Explainer        *Role
	LiteratureFinder *Role
	GapAnalyzer      *Role
}

// NewRoster builds the research roles on top of one shared chat model.
func NewRoster(cm model.BaseChatModel, verbose bool) (*Roster, error) {
	explainer, err := New(explainerLabel, explainerGoal, explainerBio, cm, WithVerbose(verbose))
	if err != nil {
		return nil, err
	}
	finder, err := New(literatureLabel, literatureGoal, literatureBio, cm, WithVerbose(verbose))
	if err != nil {
		return nil, err
	}
	analyzer, err := New(gapLabel, gapGoal, gapBio, cm, WithVerbose(verbose))
	if err != nil {
		return nil, err
	}
	return &Roster{
		Explainer:        explainer,
		LiteratureFinder: finder,
		GapAnalyzer:      analyzer,
	}, nil
}

func (r *Roster) All() []*Role {
	return []*Role{r.Explainer, r.LiteratureFinder, r.GapAnalyzer}
}
