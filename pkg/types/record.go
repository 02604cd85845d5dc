// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is one recommendation row held by the document store. Every field
// is free text; the store groups rows by an opaque job identifier.
type Record struct {
	// JobID groups the records produced by one upstream processing job.
	JobID string `json:"job_id,omitempty" yaml:"job_id,omitempty"`

	// Source names the guideline document the record came from.
	Source string `json:"source" yaml:"source"`

	// Type is the upstream element type (e.g. "recommendation", "table").
	Type string `json:"type" yaml:"type"`

	// Page is the page label inside the source document.
	Page string `json:"page" yaml:"page"`

	// Category is the upstream section or category label.
	Category string `json:"category" yaml:"category"`

	// Index is the upstream position label of the record.
	Index string `json:"index" yaml:"index"`

	// Content is the recommendation text, trimmed when read from the store.
	Content string `json:"content" yaml:"content"`
}

// FetchResult is the downloadable bundle of one job's records together
// with the guideline metadata entered by the user.
type FetchResult struct {
	JobID           string     `json:"job_id" yaml:"job_id"`
	Title           string     `json:"title" yaml:"title"`
	Stage           StringList `json:"stage" yaml:"stage"`
	Disease         StringList `json:"disease" yaml:"disease"`
	Specialty       StringList `json:"specialty" yaml:"specialty"`
	Recommendations []Record   `json:"recommendations" yaml:"recommendations"`
}
