package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const candidatesJSON = `[
  {"name": "charmander", "type": {"fire": 1.0}, "color": {"red": 1.0}},
  {"name": "squirtle", "type": {"water": 1.0}, "color": {"blue": 1.0}, "other": {"monotype": 1.0}}
]`

const questionsJSON = `[
  {"id": "q-fire", "text": "Is it a fire type?", "category": "type", "targetAttribute": "fire"},
  {"id": "q-red", "text": "Is it red?", "category": "color", "targetAttribute": "red", "importance": 2.0}
]`

const questionsYAML = `- id: q-fire
  text: Is it a fire type?
  category: type
  targetAttribute: fire
- id: q-red
  text: Is it red?
  category: color
  targetAttribute: red
`

func TestLoad_JSON(t *testing.T) {
	cat, err := Load(
		writeFile(t, "pokemon.json", candidatesJSON),
		writeFile(t, "questions.json", questionsJSON),
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cat.CandidateCount(); got != 2 {
		t.Fatalf("CandidateCount() = %d, want 2", got)
	}

	squirtle, ok := cat.Candidate("squirtle")
	if !ok {
		t.Fatal("Candidate(squirtle) not found")
	}
	if got := squirtle.Degree("other", "monotype"); got != 1.0 {
		t.Errorf("squirtle monotype degree = %v, want 1.0", got)
	}

	q, _ := cat.Question("q-red")
	if q.Importance != 2.0 {
		t.Errorf("q-red importance = %v, want 2.0", q.Importance)
	}
}

func TestLoad_YAMLQuestions(t *testing.T) {
	cat, err := Load(
		writeFile(t, "pokemon.json", candidatesJSON),
		writeFile(t, "questions.yaml", questionsYAML),
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	q, ok := cat.Question("q-fire")
	if !ok {
		t.Fatal("Question(q-fire) not found")
	}
	if q.TargetAttribute != "fire" {
		t.Errorf("q-fire target attribute = %q, want %q", q.TargetAttribute, "fire")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(
		filepath.Join(t.TempDir(), "nope.json"),
		writeFile(t, "questions.json", questionsJSON),
	)
	if err == nil {
		t.Error("Load succeeded with a missing candidates file")
	}
}

func TestLoad_RejectsOutOfRangeDegrees(t *testing.T) {
	_, err := Load(
		writeFile(t, "pokemon.json", `[{"name": "glitch", "type": {"fire": -0.5}}]`),
		writeFile(t, "questions.json", questionsJSON),
	)
	if err == nil {
		t.Error("Load accepted a hand-edited catalog with a negative degree")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(
		writeFile(t, "pokemon.json", `{"not": "a list"`),
		writeFile(t, "questions.json", questionsJSON),
	)
	if err == nil {
		t.Error("Load succeeded on malformed JSON")
	}
}

func TestLoadQuestions(t *testing.T) {
	questions, err := LoadQuestions(writeFile(t, "questions.json", questionsJSON))
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("LoadQuestions returned %d questions, want 2", len(questions))
	}
	if questions[0].Importance != 1.0 {
		t.Errorf("default importance = %v, want 1.0", questions[0].Importance)
	}
}

func TestLoadQuestions_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty list", `[]`},
		{"duplicate id", `[
			{"id": "q1", "category": "type", "targetAttribute": "fire"},
			{"id": "q1", "category": "type", "targetAttribute": "water"}
		]`},
		{"bad category", `[{"id": "q1", "category": "habitat", "targetAttribute": "cave"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadQuestions(writeFile(t, "questions.json", tc.content)); err == nil {
				t.Error("LoadQuestions accepted invalid input")
			}
		})
	}
}
