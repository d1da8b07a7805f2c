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
	"fmt"
	"io"
	"strconv"
	"strings"
)

var exampleTopics = []string{
	"Transformer architectures in natural language processing",
	"Federated learning for healthcare applications",
	"Explainable AI in financial decision making",
	"Graph neural networks for drug discovery",
	"Reinforcement learning for autonomous vehicle navigation",
}

func printMenu(w io.Writer) {
	fmt.Fprintln(w, "\nAvailable research topics:")
	for i, topic := range exampleTopics {
		fmt.Fprintf(w, "%d. %s\n", i+1, topic)
	}
	fmt.Fprintf(w, "\nEnter topic number (1-%d) or type your own topic: ", len(exampleTopics))
}

// selectTopic maps a menu answer to a topic. A plain decimal number in range
// picks that example, any other text is taken as a custom topic and an empty
// answer falls back to the first example.
func selectTopic(choice string) string {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return exampleTopics[0]
	}
	if !isDigits(choice) {
		return choice
	}
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(exampleTopics) {
		return exampleTopics[n-1]
	}
	return choice
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// preview returns at most n runes of s.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
