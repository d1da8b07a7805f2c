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
	"fmt"

	"github.com/cloudwego/eino-research-companion/biz/role"
)

const (
	IDExplanation = "explanation"
	IDLiterature  = "literature"
	IDGapAnalysis = "gap_analysis"

	// ResearchTaskCount is the number of tasks Build returns.
	ResearchTaskCount = 3
)

const explanationInstruction = `Analyze and explain the research topic: "%s"

Your task is to:
1. Break down the topic into key components and concepts
2. Explain technical terminology in accessible language
3. Provide background context and historical development
4. Identify the main research areas and subdisciplines involved
5. Explain why this topic is important and relevant
6. Identify key researchers, institutions, or landmark studies in this area

Provide a comprehensive yet accessible explanation that would help someone
new to the field understand the topic thoroughly.`

const literatureInstruction = `Based on your knowledge, provide an analysis of relevant academic literature for: "%s"

Your task is to:
1. Identify 10-15 most important and influential papers in this field
2. For each significant paper/study, provide:
   - Title and authors (if known)
   - Publication venue and approximate year
   - Key findings and contributions
   - Methodology approach
   - Impact on the field
3. Categorize papers by subtopic or methodological approach
4. Identify seminal/foundational works vs recent developments
5. Note highly cited or breakthrough papers
6. Discuss major research groups or institutions leading this field

Focus on the most impactful academic sources and landmark studies.
Use your knowledge of the field to provide authoritative information.`

const gapInstruction = `Based on the topic explanation and literature review, identify research gaps and opportunities for: "%s"

Your task is to:
1. Analyze the current state of research in this field
2. Identify gaps in knowledge, methodology, or application
3. Note areas with conflicting findings or unresolved debates
4. Identify underexplored subtopics, populations, or use cases
5. Suggest methodological improvements or novel approaches
6. Propose 5-7 specific research questions that could address these gaps
7. Create a detailed research outline for a potential paper addressing one major gap
8. Suggest potential collaboration opportunities or interdisciplinary approaches
9. Identify practical applications or real-world implementations needed

Be specific and actionable in your recommendations.
Focus on feasible research directions that could make significant contributions.`

// Build returns the three research tasks for topic, in execution order:
// explanation, literature review (after explanation) and gap analysis
// (after both).
func Build(topic string, roster *role.Roster) []*Task {
	explanation := &Task{
		ID:             IDExplanation,
		Title:          "Topic Explanation",
		Instruction:    fmt.Sprintf(explanationInstruction, topic),
		ExpectedOutput: "A detailed explanation document with clear sections covering all requested aspects of the research topic",
		Role:           roster.Explainer,
	}

	literature := &Task{
		ID:             IDLiterature,
		Title:          "Literature Review",
		Instruction:    fmt.Sprintf(literatureInstruction, topic),
		ExpectedOutput: "A comprehensive literature review with categorized paper summaries and analysis",
		Role:           roster.LiteratureFinder,
		Prerequisites:  []*Task{explanation},
		SearchQuery:    topic + " survey paper",
	}

	gapAnalysis := &Task{
		ID:             IDGapAnalysis,
		Title:          "Research Gap Analysis",
		Instruction:    fmt.Sprintf(gapInstruction, topic),
		ExpectedOutput: "A detailed gap analysis with specific research recommendations and a sample research outline",
		Role:           roster.GapAnalyzer,
		Prerequisites:  []*Task{explanation, literature},
	}

	return []*Task{explanation, literature, gapAnalysis}
}
