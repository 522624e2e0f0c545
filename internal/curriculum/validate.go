package curriculum

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the given topic set.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var errs []string

	if len(topics) == 0 {
		return fmt.Errorf("curriculum validation failed: no topics")
	}

	idSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		if strings.TrimSpace(t.ID) == "" {
			errs = append(errs, fmt.Sprintf("topic %q has an empty ID", t.Name))
			continue
		}
		if idSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		idSet[t.ID] = true

		if strings.TrimSpace(t.Subject) == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no subject", t.ID))
		}
		if t.Grade < 0 {
			errs = append(errs, fmt.Sprintf("topic %q: grade must be >= 0, got %d", t.ID, t.Grade))
		}
	}

	// Dangling and cross-subject prerequisites
	bySubject := make(map[string]string, len(topics))
	for _, t := range topics {
		bySubject[t.ID] = t.Subject
	}
	for _, t := range topics {
		for _, prereqID := range t.Prerequisites {
			subj, ok := bySubject[prereqID]
			if !ok {
				errs = append(errs, fmt.Sprintf("topic %q references nonexistent prerequisite %q", t.ID, prereqID))
				continue
			}
			if subj != t.Subject {
				errs = append(errs, fmt.Sprintf("topic %q (%s) depends on %q from another subject (%s)", t.ID, t.Subject, prereqID, subj))
			}
		}
	}

	// Cycles, via Kahn's algorithm
	inDegree := make(map[string]int, len(topics))
	adjList := make(map[string][]string)
	for _, t := range topics {
		inDegree[t.ID] = len(t.Prerequisites)
		for _, prereqID := range t.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], t.ID)
		}
	}

	var queue []string
	for _, t := range topics {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(topics) {
		var cycleNodes []string
		for _, t := range topics {
			if inDegree[t.ID] > 0 {
				cycleNodes = append(cycleNodes, t.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving topics: %s", strings.Join(cycleNodes, ", ")))
	}

	// Every subject needs a starting point
	rooted := make(map[string]bool)
	for _, t := range topics {
		if _, ok := rooted[t.Subject]; !ok {
			rooted[t.Subject] = false
		}
		if t.IsRoot() {
			rooted[t.Subject] = true
		}
	}
	for subj, ok := range rooted {
		if !ok {
			errs = append(errs, fmt.Sprintf("subject %q has no root topic", subj))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
