package curriculum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/adaptive/internal/adaptive"
)

func topicIDs(ts []Topic) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func TestDefault_Subjects(t *testing.T) {
	got := Default().Subjects()
	want := []string{SubjectEnglish, SubjectMath, SubjectScience}
	if len(got) != len(want) {
		t.Fatalf("Subjects() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Subjects()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopics_MathOrder(t *testing.T) {
	got := topicIDs(Default().Topics(SubjectMath))
	want := []string{
		"numbers", "addition", "subtraction", "place-value",
		"multiplication", "division", "fractions", "decimals",
	}
	if len(got) != len(want) {
		t.Fatalf("Topics(math) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Topics(math)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopics_PrerequisitesComeFirst(t *testing.T) {
	m := Default()
	for _, subj := range m.Subjects() {
		seen := make(map[string]bool)
		for _, topic := range m.Topics(subj) {
			for _, p := range topic.Prerequisites {
				if !seen[p] {
					t.Errorf("%s: topic %q appears before prerequisite %q", subj, topic.ID, p)
				}
			}
			seen[topic.ID] = true
		}
	}
}

func TestNext(t *testing.T) {
	m := Default()
	tests := []struct {
		subject string
		topic   string
		want    string
		wantOK  bool
	}{
		{SubjectMath, "numbers", "addition", true},
		{SubjectMath, "addition", "subtraction", true},
		{"", "fractions", "decimals", true},
		{SubjectMath, "decimals", "", false},
		{SubjectMath, "unknown", "", false},
		{SubjectScience, "addition", "", false},
	}

	for _, tt := range tests {
		got, ok := m.Next(tt.subject, tt.topic)
		if ok != tt.wantOK {
			t.Errorf("Next(%q, %q) ok = %v, want %v", tt.subject, tt.topic, ok, tt.wantOK)
			continue
		}
		if got.ID != tt.want {
			t.Errorf("Next(%q, %q) = %q, want %q", tt.subject, tt.topic, got.ID, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	m := Default()
	attempts := []adaptive.Attempt{
		{Topic: "addition", Difficulty: adaptive.DifficultyEasy, IsCorrect: true},
		{Topic: "addition", Difficulty: adaptive.DifficultyEasy, IsCorrect: true},
	}
	d, err := adaptive.DefaultEngine().Evaluate(attempts)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	resolved, ok := m.Resolve(SubjectMath, attempts, d)
	if !ok {
		t.Fatal("Resolve ok = false")
	}
	if resolved.NextTopic != "subtraction" {
		t.Errorf("NextTopic = %q, want subtraction", resolved.NextTopic)
	}
	if resolved.Strategy != d.Strategy || resolved.NextDifficulty != d.NextDifficulty {
		t.Error("Resolve changed fields other than NextTopic")
	}
}

func TestResolve_LastTopicStays(t *testing.T) {
	attempts := []adaptive.Attempt{
		{Topic: "decimals", Difficulty: adaptive.DifficultyHard, IsCorrect: true},
		{Topic: "decimals", Difficulty: adaptive.DifficultyHard, IsCorrect: true},
	}
	d := adaptive.Decide(attempts, adaptive.Accumulate(attempts))

	resolved, ok := Default().Resolve(SubjectMath, attempts, d)
	if ok {
		t.Error("Resolve ok = true for last topic")
	}
	if resolved.NextTopic != "decimals" {
		t.Errorf("NextTopic = %q, want decimals", resolved.NextTopic)
	}
}

func TestResolve_NonAdvanceUntouched(t *testing.T) {
	attempts := []adaptive.Attempt{
		{Topic: "plants", Difficulty: adaptive.DifficultyMedium, IsCorrect: false},
		{Topic: "plants", Difficulty: adaptive.DifficultyMedium, IsCorrect: false},
	}
	d := adaptive.Decide(attempts, adaptive.Accumulate(attempts))

	resolved, ok := Default().Resolve(SubjectScience, attempts, d)
	if !ok || resolved != d {
		t.Errorf("Resolve() = %+v, %v; want unchanged decision", resolved, ok)
	}
}

func TestPrerequisitesAndDependents(t *testing.T) {
	m := Default()
	prereqs := topicIDs(m.Prerequisites("multiplication"))
	if len(prereqs) != 2 || prereqs[0] != "addition" || prereqs[1] != "place-value" {
		t.Errorf("Prerequisites(multiplication) = %v", prereqs)
	}
	deps := topicIDs(m.Dependents("living-things"))
	if len(deps) != 2 {
		t.Errorf("Dependents(living-things) = %v, want 2 topics", deps)
	}
	if m.Prerequisites("nope") != nil {
		t.Error("Prerequisites(unknown) should be nil")
	}
}

func TestGet(t *testing.T) {
	topic, err := Default().Get("fractions")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if topic.Subject != SubjectMath || topic.Grade != 3 {
		t.Errorf("Get(fractions) = %+v", topic)
	}
	if _, err := Default().Get("nope"); err == nil {
		t.Error("expected error for unknown topic")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curriculum.yaml")
	content := `include_builtin: true
topics:
  - id: shapes
    name: Shapes
    subject: geometry
    grade: 1
  - id: angles
    name: Angles
    subject: geometry
    grade: 3
    prerequisites: [shapes]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	next, ok := m.Next("geometry", "shapes")
	if !ok || next.ID != "angles" {
		t.Errorf("Next(geometry, shapes) = %q, %v", next.ID, ok)
	}
	if _, err := m.Get("addition"); err != nil {
		t.Errorf("builtin topics missing: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `topics:
  - id: a
    name: A
    subject: x
    prerequisites: [b]
  - id: b
    name: B
    subject: x
    prerequisites: [a]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for cyclic curriculum")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
