package curriculum

// Topic is a single node in a subject's curriculum. Its ID is the topic
// label carried on attempts.
type Topic struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Subject       string   `yaml:"subject" json:"subject"`
	Grade         int      `yaml:"grade" json:"grade"`
	Prerequisites []string `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
}

// IsRoot reports whether the topic has no prerequisites.
func (t Topic) IsRoot() bool {
	return len(t.Prerequisites) == 0
}
