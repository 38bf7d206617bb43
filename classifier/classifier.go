// Package classifier scans session evidence against the pattern catalog and
// accumulates per-category tallies. It is pure: no side effects beyond the
// returned result, no mutation of the catalog or the evidence.
package classifier

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"workflow-lab/catalog"
	"workflow-lab/domain"
	"workflow-lab/errors"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Result is the outcome of one classification pass.
type Result struct {
	Tallies  []domain.TaskTally // detected categories, best confidence first
	Apps     []domain.AppUsage  // applications seen across the evidence
	Language string             // dominant ISO 639-1 language of the text, if reliable
	Skipped  int                // malformed items dropped during the pass
	Fallback bool               // true when only the synthetic "general" tally was produced
}

// Classifier matches evidence text against one immutable catalog. Trigger
// keywords from all categories share a single Aho-Corasick automaton; a
// reverse index maps each matched trigger back to its owning categories.
//
// A Classifier is cheap to build but its automaton is not guaranteed safe
// for concurrent searches, so each analysis worker owns its own instance.
type Classifier struct {
	catalog *catalog.Catalog
	machine *goahocorasick.Machine
	owners  map[string][]int // normalized trigger -> category indexes
	log     *slog.Logger
}

func New(cat *catalog.Catalog, log *slog.Logger) (*Classifier, error) {
	if cat == nil {
		return nil, errors.ErrNilCatalog
	}

	owners := make(map[string][]int)
	for idx, category := range cat.Categories() {
		for _, trigger := range category.Triggers() {
			norm := string(normalizeRunes([]rune(trigger)))
			if norm == "" {
				continue
			}
			owners[norm] = append(owners[norm], idx)
		}
	}

	patterns := make([][]rune, 0, len(owners))
	for trigger := range owners {
		patterns = append(patterns, []rune(trigger))
	}
	// Build wants deterministic input; map iteration is not.
	sort.Slice(patterns, func(i, j int) bool {
		return string(patterns[i]) < string(patterns[j])
	})

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("building trigger automaton: %w", err)
	}

	return &Classifier{catalog: cat, machine: m, owners: owners, log: log}, nil
}

// Classify runs one pass over the evidence batch. Degenerate input (empty
// batch, zero matches) never fails: the pass degrades to a single synthetic
// "general" tally so the synthesizer can always build a valid report.
func (c *Classifier) Classify(evidence []domain.EvidenceItem) Result {
	categories := c.catalog.Categories()

	type bucket struct {
		frequency  int
		confidence float64
		contexts   map[string]struct{}
		keywordHit bool
	}
	buckets := make([]bucket, len(categories))

	type appStat struct {
		count   int
		matched int
	}
	apps := make(map[string]*appStat)

	var allText strings.Builder
	skipped := 0

	for _, item := range evidence {
		if item.Empty() {
			skipped++
			c.log.Debug("Skipping malformed evidence item", "source", item.Source)
			continue
		}

		searchable := item.Text()
		if len(item.UIElements) > 0 {
			searchable += "\n" + strings.Join(item.UIElements, "\n")
		}
		allText.WriteString(searchable)
		allText.WriteString("\n")

		if item.App != "" {
			if apps[item.App] == nil {
				apps[item.App] = &appStat{}
			}
			apps[item.App].count++
		}

		byKeyword := make(map[int]struct{})
		for _, span := range c.machine.MultiPatternSearch(normalizeRunes([]rune(searchable)), false) {
			for _, idx := range c.owners[string(span.Word)] {
				byKeyword[idx] = struct{}{}
			}
		}

		matched := make(map[int]struct{}, len(byKeyword))
		for idx := range byKeyword {
			matched[idx] = struct{}{}
		}
		for idx, category := range categories {
			if _, ok := matched[idx]; ok {
				continue
			}
			for _, re := range category.Regexps() {
				if re.MatchString(searchable) {
					matched[idx] = struct{}{}
					break
				}
			}
		}

		// One increment per category per item regardless of how many
		// triggers fired inside the same screenshot.
		for idx := range matched {
			b := &buckets[idx]
			b.frequency++
			b.confidence += categories[idx].Weight
			if _, ok := byKeyword[idx]; ok {
				b.keywordHit = true
			}
			if item.App != "" {
				if b.contexts == nil {
					b.contexts = make(map[string]struct{})
				}
				b.contexts[item.App] = struct{}{}
			}
		}
		if len(matched) > 0 && item.App != "" {
			apps[item.App].matched++
		}
	}

	result := Result{Skipped: skipped, Language: detectLanguage(allText.String())}

	for idx, b := range buckets {
		// Regex-only volume never promotes a category: an explicit,
		// named trigger is required before a workflow is reported.
		if b.frequency == 0 || !b.keywordHit {
			continue
		}
		result.Tallies = append(result.Tallies, domain.TaskTally{
			Name:          categories[idx].Name,
			Frequency:     b.frequency,
			ConfidenceSum: b.confidence,
			Contexts:      sortedKeys(b.contexts),
		})
	}

	if len(result.Tallies) == 0 {
		result.Fallback = true
		result.Tallies = []domain.TaskTally{{
			Name:      domain.GeneralWorkflow,
			Frequency: len(evidence),
		}}
	}

	sort.SliceStable(result.Tallies, func(i, j int) bool {
		a, b := result.Tallies[i], result.Tallies[j]
		if a.ConfidenceSum != b.ConfidenceSum {
			return a.ConfidenceSum > b.ConfidenceSum
		}
		return a.Name < b.Name
	})

	for name, stat := range apps {
		confidence := 0.0
		if stat.count > 0 {
			confidence = float64(stat.matched) / float64(stat.count)
		}
		result.Apps = append(result.Apps, domain.AppUsage{
			Name:       name,
			Count:      stat.count,
			Confidence: confidence,
		})
	}
	sort.SliceStable(result.Apps, func(i, j int) bool {
		a, b := result.Apps[i], result.Apps[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})

	return result
}

func detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
