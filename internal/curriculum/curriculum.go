package curriculum

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/adaptive/internal/adaptive"
)

// Map holds a validated topic DAG with precomputed indices.
type Map struct {
	topics     []Topic
	byID       map[string]*Topic
	bySubject  map[string][]Topic
	dependents map[string][]string
	position   map[string]int
}

// builtin is the seed curriculum, built once at init.
var builtin *Map

func init() {
	m, err := New(seedTopics())
	if err != nil {
		panic(fmt.Sprintf("curriculum: invalid seed: %v", err))
	}
	builtin = m
}

// Default returns the built-in curriculum.
func Default() *Map {
	return builtin
}

// New validates topics and builds a Map.
func New(topics []Topic) (*Map, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	m := &Map{
		topics:     slices.Clone(topics),
		byID:       make(map[string]*Topic, len(topics)),
		bySubject:  make(map[string][]Topic),
		dependents: make(map[string][]string),
		position:   make(map[string]int, len(topics)),
	}

	for i := range m.topics {
		m.byID[m.topics[i].ID] = &m.topics[i]
	}
	for i := range m.topics {
		for _, prereqID := range m.topics[i].Prerequisites {
			m.dependents[prereqID] = append(m.dependents[prereqID], m.topics[i].ID)
		}
	}

	grouped := make(map[string][]Topic)
	for _, t := range m.topics {
		grouped[t.Subject] = append(grouped[t.Subject], t)
	}
	for subj, ts := range grouped {
		ordered := m.order(ts)
		m.bySubject[subj] = ordered
		for i, t := range ordered {
			m.position[t.ID] = i
		}
	}

	return m, nil
}

// order returns a topological order of ts. Among topics whose
// prerequisites are all placed, the lowest grade goes first, then ID.
func (m *Map) order(ts []Topic) []Topic {
	inDegree := make(map[string]int, len(ts))
	for _, t := range ts {
		inDegree[t.ID] = len(t.Prerequisites)
	}

	var ready []Topic
	for _, t := range ts {
		if inDegree[t.ID] == 0 {
			ready = append(ready, t)
		}
	}

	result := make([]Topic, 0, len(ts))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			if ready[i].Grade != ready[j].Grade {
				return ready[i].Grade < ready[j].Grade
			}
			return ready[i].ID < ready[j].ID
		})
		next := ready[0]
		ready = ready[1:]
		result = append(result, next)

		for _, depID := range m.dependents[next.ID] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				ready = append(ready, *m.byID[depID])
			}
		}
	}
	return result
}

// fileFormat is the on-disk YAML layout of a curriculum file.
type fileFormat struct {
	IncludeBuiltin bool    `yaml:"include_builtin"`
	Topics         []Topic `yaml:"topics"`
}

// Load reads a YAML curriculum file. When the file sets include_builtin,
// its topics are added to the seed curriculum.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse curriculum %s: %w", path, err)
	}

	topics := f.Topics
	if f.IncludeBuiltin {
		topics = append(seedTopics(), topics...)
	}

	m, err := New(topics)
	if err != nil {
		return nil, fmt.Errorf("load curriculum %s: %w", path, err)
	}
	return m, nil
}

// Get returns the topic with the given ID.
func (m *Map) Get(id string) (Topic, error) {
	t, ok := m.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return *t, nil
}

// Subjects returns all subjects in alphabetical order.
func (m *Map) Subjects() []string {
	subjects := make([]string, 0, len(m.bySubject))
	for s := range m.bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// Topics returns a subject's topics in teaching order.
func (m *Map) Topics(subject string) []Topic {
	return slices.Clone(m.bySubject[subject])
}

// AllTopics returns every topic in the order they were defined.
func (m *Map) AllTopics() []Topic {
	return slices.Clone(m.topics)
}

// Prerequisites returns the direct prerequisite topics for a given topic ID.
func (m *Map) Prerequisites(id string) []Topic {
	t, ok := m.byID[id]
	if !ok {
		return nil
	}
	result := make([]Topic, 0, len(t.Prerequisites))
	for _, prereqID := range t.Prerequisites {
		if p, ok := m.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns topics that directly depend on the given topic ID.
func (m *Map) Dependents(id string) []Topic {
	depIDs := m.dependents[id]
	result := make([]Topic, 0, len(depIDs))
	for _, depID := range depIDs {
		if t, ok := m.byID[depID]; ok {
			result = append(result, *t)
		}
	}
	return result
}

// Next returns the topic that follows topicID in its subject's teaching
// order. An empty subject means the topic's own subject. Returns false if
// the topic is unknown, belongs to a different subject, or is the last.
func (m *Map) Next(subject, topicID string) (Topic, bool) {
	t, ok := m.byID[topicID]
	if !ok {
		return Topic{}, false
	}
	if subject != "" && subject != t.Subject {
		return Topic{}, false
	}

	ordered := m.bySubject[t.Subject]
	i := m.position[t.ID]
	if i+1 >= len(ordered) {
		return Topic{}, false
	}
	return ordered[i+1], true
}

// Resolve replaces the advance sentinel in d with the topic after the most
// recent attempt's topic. When no next topic exists the learner stays on
// the current topic and the second result is false. Decisions without the
// sentinel are returned unchanged with true.
func (m *Map) Resolve(subject string, attempts []adaptive.Attempt, d adaptive.Decision) (adaptive.Decision, bool) {
	if !d.NeedsNextTopic() {
		return d, true
	}
	if len(attempts) == 0 {
		return d, false
	}

	current := attempts[len(attempts)-1].Topic
	next, ok := m.Next(subject, current)
	if !ok {
		d.NextTopic = current
		return d, false
	}
	d.NextTopic = next.ID
	return d, true
}
