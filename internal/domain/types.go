package domain

import "time"

// User mirrors the identity provider's subject. UID is the external subject
// id and the node key; the app never deletes users.
type User struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Emotion is a catalog entry referenced by name from records.
type Emotion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Symptom is keyed by its normalized name (trimmed, lower-cased).
type Symptom struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ThoughtRecord is a CBT thought-record entry: the situation, the felt
// emotion, the underlying belief, and any associated symptoms.
type ThoughtRecord struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Timestamp            time.Time `json:"timestamp"`
	Title                *string   `json:"title,omitempty"`
	SituationDescription *string   `json:"situation_description,omitempty"`
	Emotion              string    `json:"emotion"`
	UnderlyingBelief     *string   `json:"underlying_belief,omitempty"`
	Symptoms             []string  `json:"symptoms"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// EmotionRecord is the lighter record family without symptoms.
type EmotionRecord struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Timestamp            time.Time `json:"timestamp"`
	Title                *string   `json:"title,omitempty"`
	SituationDescription *string   `json:"situation_description,omitempty"`
	Emotion              string    `json:"emotion"`
	UnderlyingBelief     *string   `json:"underlying_belief,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// RecordFilter holds the optional list predicates. Zero values mean
// "no constraint".
type RecordFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Emotion   string
	Symptom   string
}

// RecordUpdate carries the mutable fields of a record. Nil fields are left
// untouched; identity and bookkeeping fields are never client-settable.
type RecordUpdate struct {
	Timestamp            *time.Time
	Title                *string
	SituationDescription *string
	Emotion              *string
	UnderlyingBelief     *string
	Symptoms             []string
}

// EmotionCount is one row of a frequency aggregate.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int64  `json:"count"`
}

// SymptomTimePattern correlates a symptom with a time-of-day bucket.
type SymptomTimePattern struct {
	Symptom string `json:"symptom"`
	Period  string `json:"period"`
	Count   int64  `json:"count"`
}

// KeywordCount is one row of the keyword extraction aggregate.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// InsightsSummary bundles the aggregate reads for one user.
type InsightsSummary struct {
	TopEmotions  []EmotionCount       `json:"top_emotions"`
	TimePatterns []SymptomTimePattern `json:"time_patterns"`
	Keywords     []KeywordCount       `json:"keywords"`
}
