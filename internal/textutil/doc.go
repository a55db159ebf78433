// Package textutil provides filename sanitization and the rule-based
// transcript normalization used when LLM normalization is unavailable.
package textutil
