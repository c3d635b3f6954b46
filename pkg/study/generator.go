// Package study generates AI study content for a chapter: the deep dive
// guide and the five enrichment categories. Responses are schema-constrained
// JSON, then normalized so callers never see nil containers.
package study

import (
	"context"
	"fmt"
	"strings"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/pkg/gemini"
)

// Generator produces study content for one chapter of text.
type Generator interface {
	GenerateDeepDive(ctx context.Context, book string, chapter int, verses []entity.Verse) (*entity.DeepDiveData, error)
	GenerateEnrichments(ctx context.Context, book string, chapter int, verses []entity.Verse) (*entity.AllEnrichmentData, error)
}

type geminiGenerator struct {
	client *gemini.Client
}

func NewGeminiGenerator(client *gemini.Client) Generator {
	return &geminiGenerator{client: client}
}

func (g *geminiGenerator) GenerateDeepDive(ctx context.Context, book string, chapter int, verses []entity.Verse) (*entity.DeepDiveData, error) {
	prompt := fmt.Sprintf(constant.DeepDivePromptV1, book, chapter, FormatVerses(verses))

	var out entity.DeepDiveData
	if err := g.client.GenerateJSON(ctx, prompt, deepDiveSchema(), &out); err != nil {
		return nil, err
	}

	if out.VerseAnalysis == nil {
		out.VerseAnalysis = []entity.VerseAnalysis{}
	}
	if out.ReflectionQuestions == nil {
		out.ReflectionQuestions = []string{}
	}
	return &out, nil
}

func (g *geminiGenerator) GenerateEnrichments(ctx context.Context, book string, chapter int, verses []entity.Verse) (*entity.AllEnrichmentData, error) {
	prompt := fmt.Sprintf(constant.EnrichmentPromptV1, book, chapter, FormatVerses(verses))

	var out entity.AllEnrichmentData
	if err := g.client.GenerateJSON(ctx, prompt, enrichmentSchema(), &out); err != nil {
		return nil, err
	}

	if out.CrossReferences == nil {
		out.CrossReferences = []entity.CrossReference{}
	}
	if out.WordStudies == nil {
		out.WordStudies = []entity.WordStudy{}
	}
	if out.Interpretations == nil {
		out.Interpretations = []entity.Interpretation{}
	}
	if out.HistoricalContext.Points == nil {
		out.HistoricalContext.Points = []string{}
	}
	if out.LiteraryAnalysis.Points == nil {
		out.LiteraryAnalysis.Points = []string{}
	}
	return &out, nil
}

// FormatVerses renders verses as numbered lines for a prompt.
func FormatVerses(verses []entity.Verse) string {
	var b strings.Builder
	for _, v := range verses {
		fmt.Fprintf(&b, "%d. %s\n", v.Verse, strings.TrimSpace(v.Text))
	}
	return b.String()
}

func deepDiveSchema() *gemini.Schema {
	verseAnalysis := gemini.ObjectSchema(map[string]*gemini.Schema{
		"verse":    gemini.StringSchema(),
		"analysis": gemini.StringSchema(),
	}, "verse", "analysis")

	return gemini.ObjectSchema(map[string]*gemini.Schema{
		"summary":              gemini.StringSchema(),
		"historical_context":   gemini.StringSchema(),
		"verse_analysis":       gemini.ArraySchema(verseAnalysis),
		"reflection_questions": gemini.ArraySchema(gemini.StringSchema()),
	}, "summary", "historical_context", "verse_analysis", "reflection_questions")
}

func enrichmentSchema() *gemini.Schema {
	crossReference := gemini.ObjectSchema(map[string]*gemini.Schema{
		"verse":      gemini.IntegerSchema(),
		"reference":  gemini.StringSchema(),
		"text":       gemini.StringSchema(),
		"connection": gemini.StringSchema(),
	}, "verse", "reference", "text", "connection")

	wordStudy := gemini.ObjectSchema(map[string]*gemini.Schema{
		"verse":           gemini.IntegerSchema(),
		"word":            gemini.StringSchema(),
		"original":        gemini.StringSchema(),
		"transliteration": gemini.StringSchema(),
		"meaning":         gemini.StringSchema(),
	}, "verse", "word", "original", "transliteration", "meaning")

	interpretation := gemini.ObjectSchema(map[string]*gemini.Schema{
		"verse":   gemini.IntegerSchema(),
		"topic":   gemini.StringSchema(),
		"summary": gemini.StringSchema(),
	}, "verse", "topic", "summary")

	section := gemini.ObjectSchema(map[string]*gemini.Schema{
		"title":   gemini.StringSchema(),
		"content": gemini.StringSchema(),
		"points":  gemini.ArraySchema(gemini.StringSchema()),
	}, "title", "content")

	return gemini.ObjectSchema(map[string]*gemini.Schema{
		"cross_references":   gemini.ArraySchema(crossReference),
		"word_studies":       gemini.ArraySchema(wordStudy),
		"interpretations":    gemini.ArraySchema(interpretation),
		"historical_context": section,
		"literary_analysis":  section,
	}, "cross_references", "word_studies", "interpretations", "historical_context", "literary_analysis")
}
