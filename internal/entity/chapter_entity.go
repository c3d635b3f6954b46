package entity

// Verse is a single verse as returned by the text API. Verse number 0 is the
// sentinel used for synthesized error placeholders.
type Verse struct {
	BookId   string `json:"book_id"`
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

// VerseAnalysis pairs a quoted verse with its commentary.
type VerseAnalysis struct {
	Verse    string `json:"verse"`
	Analysis string `json:"analysis"`
}

// DeepDiveData is the AI-generated long-form study guide for a chapter.
type DeepDiveData struct {
	Summary             string          `json:"summary"`
	HistoricalContext   string          `json:"historical_context"`
	VerseAnalysis       []VerseAnalysis `json:"verse_analysis"`
	ReflectionQuestions []string        `json:"reflection_questions"`
}

// CrossReference links a verse in the chapter to a related passage.
type CrossReference struct {
	Verse      int    `json:"verse"`
	Reference  string `json:"reference"`
	Text       string `json:"text"`
	Connection string `json:"connection"`
}

// WordStudy explains a significant original-language word in a verse.
type WordStudy struct {
	Verse           int    `json:"verse"`
	Word            string `json:"word"`
	Original        string `json:"original"`
	Transliteration string `json:"transliteration"`
	Meaning         string `json:"meaning"`
}

// Interpretation summarizes how a verse has been understood.
type Interpretation struct {
	Verse   int    `json:"verse"`
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// EnrichmentSection is a chapter-level block of supplementary content.
type EnrichmentSection struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Points  []string `json:"points"`
}

// AllEnrichmentData groups the five enrichment categories for a chapter.
type AllEnrichmentData struct {
	CrossReferences   []CrossReference  `json:"cross_references"`
	WordStudies       []WordStudy       `json:"word_studies"`
	Interpretations   []Interpretation  `json:"interpretations"`
	HistoricalContext EnrichmentSection `json:"historical_context"`
	LiteraryAnalysis  EnrichmentSection `json:"literary_analysis"`
}

// EmptyEnrichments returns an AllEnrichmentData with every container present
// and empty, for fallback rendering.
func EmptyEnrichments() *AllEnrichmentData {
	return &AllEnrichmentData{
		CrossReferences:   []CrossReference{},
		WordStudies:       []WordStudy{},
		Interpretations:   []Interpretation{},
		HistoricalContext: EnrichmentSection{Points: []string{}},
		LiteraryAnalysis:  EnrichmentSection{Points: []string{}},
	}
}

// ChapterContentBundle is the cached unit of per-chapter content, one per
// chapter and translation.
type ChapterContentBundle struct {
	Verses      []Verse            `json:"verses"`
	DeepDive    *DeepDiveData      `json:"deep_dive,omitempty"`
	Enrichments *AllEnrichmentData `json:"enrichments"`
}
