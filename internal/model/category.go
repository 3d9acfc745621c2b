package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid category")

// Category is the descriptive category label stored on questions and topic progress
type Category string

const (
	CategoryArithmetic         Category = "arithmetic"
	CategoryLogicalReasoning   Category = "logical-reasoning"
	CategoryVerbalReasoning    Category = "verbal-reasoning"
	CategoryNonverbalReasoning Category = "nonverbal-reasoning"
)

// SummaryKey is the concise category name used in progress summaries
type SummaryKey string

const (
	SummaryQuantitative SummaryKey = "quantitative"
	SummaryLogical      SummaryKey = "logical"
	SummaryVerbal       SummaryKey = "verbal"
	SummaryNonverbal    SummaryKey = "nonverbal"
)

// Categories lists the descriptive categories in display order
var Categories = []Category{
	CategoryArithmetic,
	CategoryLogicalReasoning,
	CategoryVerbalReasoning,
	CategoryNonverbalReasoning,
}

// SummaryKeys lists the concise keys in display order
var SummaryKeys = []SummaryKey{
	SummaryQuantitative,
	SummaryLogical,
	SummaryVerbal,
	SummaryNonverbal,
}

var categoryToKey = map[Category]SummaryKey{
	CategoryArithmetic:         SummaryQuantitative,
	CategoryLogicalReasoning:   SummaryLogical,
	CategoryVerbalReasoning:    SummaryVerbal,
	CategoryNonverbalReasoning: SummaryNonverbal,
}

var keyToCategory = map[SummaryKey]Category{
	SummaryQuantitative: CategoryArithmetic,
	SummaryLogical:      CategoryLogicalReasoning,
	SummaryVerbal:       CategoryVerbalReasoning,
	SummaryNonverbal:    CategoryNonverbalReasoning,
}

// NormalizeCategory maps a descriptive label (any case) to its summary key.
// Labels outside the table come back lower-cased and otherwise untouched.
func NormalizeCategory(label string) string {
	lower := strings.ToLower(label)
	if key, ok := categoryToKey[Category(lower)]; ok {
		return string(key)
	}
	return lower
}

// ParseCategory validates a descriptive label and returns its canonical form
func ParseCategory(label string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(label)))
	if _, ok := categoryToKey[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, label)
	}
	return c, nil
}

// ParseSummaryKey validates a concise summary key
func ParseSummaryKey(key string) (SummaryKey, error) {
	k := SummaryKey(strings.ToLower(strings.TrimSpace(key)))
	if _, ok := keyToCategory[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, key)
	}
	return k, nil
}

// SummaryKey returns the concise key for a descriptive category
func (c Category) SummaryKey() SummaryKey {
	return categoryToKey[c]
}

// Category returns the descriptive category for a concise key
func (k SummaryKey) Category() Category {
	return keyToCategory[k]
}
