// Package manifest loads domain manifests: the policy documents that describe
// one knowledge domain's routing patterns, tasks, pack mapping, safety rules
// and prompt template.
//
// A loaded Set is read-only. Routing, policy, safety and prompt code receive
// *Manifest pointers and must never modify them or the slices they expose.
package manifest

import "strings"

// AreaPlaceholder is replaced by the locality code in pack templates and
// prompt templates.
const AreaPlaceholder = "<AREA>"

// DefaultProbeScoreMin is the attach threshold used when a manifest does not
// set thresholds.probe_score_min.
const DefaultProbeScoreMin = 0.33

// DefaultPromptTemplate is used when a manifest has no prompt_template.
const DefaultPromptTemplate = "You are a helper for " + AreaPlaceholder + "."

// DefaultTask is the task label used when a manifest declares neither task
// patterns nor tasks.
const DefaultTask = "general"

// Manifest is one domain policy document.
type Manifest struct {
	ID              string              `json:"id" yaml:"id"`
	Intents         Intents             `json:"intents" yaml:"intents"`
	EmbeddingSeeds  []string            `json:"embedding_seeds" yaml:"embedding_seeds"`
	TaskPatterns    PhraseGroups        `json:"task_patterns" yaml:"task_patterns"`
	Tasks           []string            `json:"tasks" yaml:"tasks"`
	RequiresSources []string            `json:"requires_sources" yaml:"requires_sources"`
	PacksByTask     map[string][]string `json:"packs_by_task" yaml:"packs_by_task"`
	SafetyRules     PhraseGroups        `json:"safety_rules" yaml:"safety_rules"`
	Thresholds      Thresholds          `json:"thresholds" yaml:"thresholds"`
	PromptTemplate  string              `json:"prompt_template" yaml:"prompt_template"`

	// Path is the file the manifest was loaded from; empty for manifests
	// built in code.
	Path string `json:"-" yaml:"-"`
}

// Intents holds the keyword patterns used by the domain router.
type Intents struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Thresholds holds per-domain tuning values. A nil field means "use the
// default"; an explicit zero is honored.
type Thresholds struct {
	ProbeScoreMin *float64 `json:"probe_score_min" yaml:"probe_score_min"`
}

// ProbeScoreMin returns the attach threshold for m.
func (m *Manifest) ProbeScoreMin() float64 {
	if m == nil || m.Thresholds.ProbeScoreMin == nil {
		return DefaultProbeScoreMin
	}
	return *m.Thresholds.ProbeScoreMin
}

// Template returns the prompt template, falling back to DefaultPromptTemplate.
func (m *Manifest) Template() string {
	if m == nil || m.PromptTemplate == "" {
		return DefaultPromptTemplate
	}
	return m.PromptTemplate
}

// DefaultTaskLabel returns the first declared task, or DefaultTask.
func (m *Manifest) DefaultTaskLabel() string {
	if m == nil || len(m.Tasks) == 0 || m.Tasks[0] == "" {
		return DefaultTask
	}
	return m.Tasks[0]
}

// RequiresSourcesFor reports whether task must always attach context.
func (m *Manifest) RequiresSourcesFor(task string) bool {
	if m == nil {
		return false
	}
	for _, t := range m.RequiresSources {
		if t == task {
			return true
		}
	}
	return false
}

// PackTemplates returns the pack templates declared for task.
func (m *Manifest) PackTemplates(task string) []string {
	if m == nil {
		return nil
	}
	return m.PacksByTask[task]
}

// LowerPatterns returns the intent patterns lowercased.
func (m *Manifest) LowerPatterns() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.Intents.Patterns))
	for i, p := range m.Intents.Patterns {
		out[i] = strings.ToLower(p)
	}
	return out
}
