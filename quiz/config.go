package quiz

import (
	"fmt"
	"slices"
)

const OptionsPerQuestion = 4

// NoMatchMessage is shown when the answers map to no result.
const NoMatchMessage = "No song matched your answers this time. Take the quiz again!"

type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

type Result struct {
	Song    string `json:"song"`
	Artist  string `json:"artist"`
	Message string `json:"message"`
}

// Mapping ties one ordered tuple of option indices, one per question, to a result.
type Mapping struct {
	Answers []int
	Result  Result
}

type Config struct {
	Questions []Question
	Results   []Mapping
}

func DefaultConfig() Config {
	return Config{
		Questions: []Question{
			{
				Prompt:  "What’s your ideal date night?",
				Options: []string{"Candlelit dinner", "Movie night", "Stargazing", "Adventure sports"},
			},
			{
				Prompt:  "Which color describes your mood today?",
				Options: []string{"Pink", "Gold", "Purple", "Blue"},
			},
			{
				Prompt:  "What’s your favorite way to relax?",
				Options: []string{"Music", "Reading", "Long walks", "Cooking"},
			},
		},
		Results: []Mapping{
			{
				Answers: []int{0, 0, 0},
				Result: Result{
					Song:    "Perfect",
					Artist:  "Ed Sheeran",
					Message: "Your song is 'Perfect' by Ed Sheeran—just like you, it's timeless and romantic.",
				},
			},
			{
				Answers: []int{1, 1, 1},
				Result: Result{
					Song:    "All of Me",
					Artist:  "John Legend",
					Message: "Your song is 'All of Me' by John Legend—deep and heartfelt, just like your bond.",
				},
			},
			{
				Answers: []int{2, 2, 2},
				Result: Result{
					Song:    "Yellow",
					Artist:  "Coldplay",
					Message: "Your song is 'Yellow' by Coldplay—a perfect blend of calm and beauty.",
				},
			},
			{
				Answers: []int{3, 3, 3},
				Result: Result{
					Song:    "Uptown Funk",
					Artist:  "Mark Ronson ft. Bruno Mars",
					Message: "Your song is 'Uptown Funk'—fun, vibrant, and full of energy, just like you!",
				},
			},
		},
	}
}

func (c Config) Validate() error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, q := range c.Questions {
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("question %d has %d options, want %d", i, len(q.Options), OptionsPerQuestion)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, option := range q.Options {
			key := Normalize(option)
			if key == "" {
				return fmt.Errorf("question %d has an empty option", i)
			}
			if seen[key] {
				return fmt.Errorf("question %d has duplicate option %q", i, option)
			}
			seen[key] = true
		}
	}
	for i, m := range c.Results {
		if len(m.Answers) != len(c.Questions) {
			return fmt.Errorf("result %d has %d answers, want %d", i, len(m.Answers), len(c.Questions))
		}
		for q, idx := range m.Answers {
			if idx < 0 || idx >= len(c.Questions[q].Options) {
				return fmt.Errorf("result %d answer %d out of range: %d", i, q, idx)
			}
		}
		for j := 0; j < i; j++ {
			if slices.Equal(c.Results[j].Answers, m.Answers) {
				return fmt.Errorf("results %d and %d share answers %v", j, i, m.Answers)
			}
		}
	}
	return nil
}

// lookup returns the result whose tuple equals indices exactly.
func (c Config) lookup(indices []int) *Result {
	for i := range c.Results {
		if slices.Equal(c.Results[i].Answers, indices) {
			result := c.Results[i].Result
			return &result
		}
	}
	return nil
}
