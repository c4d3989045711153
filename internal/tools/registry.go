// Package tools maps tool intents to their request validation, prompt
// building, and structured response schemas. The registry is built once at
// startup; an intent missing from it is an explicit error, never an implicit
// nil-shape failure.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"scriptura-api/internal/shared"
)

var validAgeGroups = map[string]bool{
	"children":  true,
	"teenagers": true,
	"adults":    true,
}

// Entry describes one generation capability keyed by intent.
type Entry struct {
	Intent         string
	SchemaName     string
	ResponseSchema json.RawMessage
	Temperature    float32

	// DefaultSystemPrompt applies when the catalog row carries none.
	DefaultSystemPrompt string

	// Validate normalizes and checks the tool specific request fields.
	// It returns the validated field set or a field error.
	Validate func(fields map[string]string) (map[string]string, error)

	// BuildPrompt renders the user prompt from validated fields.
	BuildPrompt func(fields map[string]string) string
}

type Registry struct {
	entries map[string]*Entry
}

// NewRegistry builds the registry of all known intents.
func NewRegistry() *Registry {
	r := &Registry{entries: map[string]*Entry{}}
	r.register(storyEntry())
	r.register(verseEntry())
	return r
}

func (r *Registry) register(e *Entry) {
	if _, ok := r.entries[e.Intent]; ok {
		panic(fmt.Sprintf("duplicate tool intent: %s", e.Intent))
	}
	r.entries[e.Intent] = e
}

// Lookup resolves an intent to its registry entry.
func (r *Registry) Lookup(intent string) (*Entry, error) {
	e, ok := r.entries[intent]
	if !ok {
		return nil, errors.Join(fmt.Errorf("intent %q not registered", intent), shared.ErrUnknownIntent)
	}
	return e, nil
}

// Intents lists all registered intents, sorted for stable output.
func (r *Registry) Intents() []string {
	intents := make([]string, 0, len(r.entries))
	for intent := range r.entries {
		intents = append(intents, intent)
	}
	sort.Strings(intents)
	return intents
}

func storyEntry() *Entry {
	return &Entry{
		Intent:              shared.IntentSimplifyBibleStory,
		SchemaName:          "simplified_bible_story",
		ResponseSchema:      storyResponseSchema,
		DefaultSystemPrompt: SimplifyBibleStorySystemPrompt,
		Validate: func(fields map[string]string) (map[string]string, error) {
			title := strings.TrimSpace(fields["title"])
			if title == "" {
				return nil, errors.Join(errors.New("title is required"), shared.ErrInvalidFields)
			}
			ageGroup := strings.TrimSpace(fields["ageGroup"])
			if !validAgeGroups[ageGroup] {
				return nil, errors.Join(fmt.Errorf("invalid age group %q", ageGroup), shared.ErrInvalidFields)
			}
			validated := map[string]string{
				"title":    title,
				"ageGroup": ageGroup,
			}
			if refs := strings.TrimSpace(fields["originalReferences"]); refs != "" {
				validated["originalReferences"] = refs
			}
			return validated, nil
		},
		BuildPrompt: func(fields map[string]string) string {
			return fmt.Sprintf(`Transform the biblical story of %q into a version appropriate for %s aged person.
Include the key events, characters, and lessons while maintaining biblical accuracy.
Simplify complex theological concepts and use age-appropriate language.`,
				fields["title"], fields["ageGroup"])
		},
	}
}

func verseEntry() *Entry {
	return &Entry{
		Intent:              shared.IntentSimplifyBibleVerse,
		SchemaName:          "simplified_bible_verses",
		ResponseSchema:      verseResponseSchema,
		DefaultSystemPrompt: SimplifyBibleVerseSystemPrompt,
		Validate: func(fields map[string]string) (map[string]string, error) {
			feeling := strings.TrimSpace(fields["feeling"])
			if feeling == "" {
				return nil, errors.Join(errors.New("feeling is required"), shared.ErrInvalidFields)
			}
			validated := map[string]string{
				"feeling": feeling,
			}
			if ref := strings.TrimSpace(fields["bibleVerseReference"]); ref != "" {
				validated["bibleVerseReference"] = ref
			}
			return validated, nil
		},
		BuildPrompt: func(fields map[string]string) string {
			prompt := fmt.Sprintf("The user is feeling: %q.\n", fields["feeling"])
			if ref := fields["bibleVerseReference"]; ref != "" {
				prompt += fmt.Sprintf("They have provided this verse reference: %q.\n", ref)
			}
			prompt += "Generate 1-3 Bible verses that are relevant to this feeling, with simplified explanations."
			return prompt
		},
	}
}
