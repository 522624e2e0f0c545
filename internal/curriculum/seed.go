package curriculum

// Subjects shipped with the built-in curriculum.
const (
	SubjectMath    = "math"
	SubjectScience = "science"
	SubjectEnglish = "english"
)

func seedTopics() []Topic {
	return []Topic{
		// Math
		{ID: "numbers", Name: "Numbers to 100", Subject: SubjectMath, Grade: 1},
		{ID: "addition", Name: "Addition", Subject: SubjectMath, Grade: 1, Prerequisites: []string{"numbers"}},
		{ID: "subtraction", Name: "Subtraction", Subject: SubjectMath, Grade: 1, Prerequisites: []string{"addition"}},
		{ID: "place-value", Name: "Place Value", Subject: SubjectMath, Grade: 2, Prerequisites: []string{"numbers"}},
		{ID: "multiplication", Name: "Multiplication", Subject: SubjectMath, Grade: 2, Prerequisites: []string{"addition", "place-value"}},
		{ID: "division", Name: "Division", Subject: SubjectMath, Grade: 3, Prerequisites: []string{"multiplication", "subtraction"}},
		{ID: "fractions", Name: "Fractions", Subject: SubjectMath, Grade: 3, Prerequisites: []string{"division"}},
		{ID: "decimals", Name: "Decimals", Subject: SubjectMath, Grade: 4, Prerequisites: []string{"fractions", "place-value"}},

		// Science
		{ID: "living-things", Name: "Living and Non-living Things", Subject: SubjectScience, Grade: 1},
		{ID: "plants", Name: "Plants", Subject: SubjectScience, Grade: 1, Prerequisites: []string{"living-things"}},
		{ID: "animals", Name: "Animals", Subject: SubjectScience, Grade: 1, Prerequisites: []string{"living-things"}},
		{ID: "food-chains", Name: "Food Chains", Subject: SubjectScience, Grade: 2, Prerequisites: []string{"plants", "animals"}},
		{ID: "weather", Name: "Weather and Seasons", Subject: SubjectScience, Grade: 2},

		// English
		{ID: "phonics", Name: "Phonics", Subject: SubjectEnglish, Grade: 1},
		{ID: "sight-words", Name: "Sight Words", Subject: SubjectEnglish, Grade: 1, Prerequisites: []string{"phonics"}},
		{ID: "nouns-verbs", Name: "Nouns and Verbs", Subject: SubjectEnglish, Grade: 2, Prerequisites: []string{"sight-words"}},
		{ID: "sentences", Name: "Building Sentences", Subject: SubjectEnglish, Grade: 2, Prerequisites: []string{"nouns-verbs"}},
		{ID: "reading-comprehension", Name: "Reading Comprehension", Subject: SubjectEnglish, Grade: 3, Prerequisites: []string{"sentences"}},
	}
}
