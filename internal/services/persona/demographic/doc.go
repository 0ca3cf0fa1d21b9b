// Package demographic holds the rule-based model behind a persona's age,
// schooling, employment, pay, ethnicity and physique.
//
// Every weighting table lives in Rules. The defaults are heuristics; callers
// may replace any of them from a YAML file without touching the draws.
package demographic
