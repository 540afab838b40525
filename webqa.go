// Package webqa answers natural language questions, optionally
// multiple-choice, by grounding an LLM on text scraped from web search
// results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, openai/, rod/).
package webqa
