package rewriting

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Bounds on the number of variations produced per request
const (
	DefaultVariationCount = 3
	MaxVariationCount     = 10
)

// summaryOpeners replace or precede the first word of the summary in variation i
var summaryOpeners = []string{
	"Results-driven", "Dynamic", "Innovative", "Strategic", "Accomplished",
	"Performance-focused", "Forward-thinking", "Detail-oriented", "Analytical",
}

// roleSuffixes mark a first summary word that is kept and prefixed rather than replaced
var roleSuffixes = []string{"professional", "engineer", "developer", "manager"}

// verbAlternatives lists the replacements for a bullet's opening verb, picked
// by variation index
var verbAlternatives = map[string][]string{
	"Developed":    {"Built", "Created", "Engineered", "Designed"},
	"Managed":      {"Led", "Directed", "Oversaw", "Supervised"},
	"Improved":     {"Enhanced", "Optimized", "Streamlined", "Advanced"},
	"Created":      {"Developed", "Built", "Designed", "Produced"},
	"Implemented":  {"Deployed", "Executed", "Established", "Launched"},
	"Led":          {"Spearheaded", "Directed", "Headed", "Championed"},
	"Collaborated": {"Partnered", "Worked", "Teamed", "Cooperated"},
}

// Variations returns count independently optimized copies of r, indexed from 1.
// The first is the plain optimization; each later one also rewords the summary
// opener and swaps bullet opening verbs. count <= 0 selects
// DefaultVariationCount and larger values are capped at MaxVariationCount.
func Variations(r *types.Resume, ks types.KeywordSet, count int) []types.Variation {
	if count <= 0 {
		count = DefaultVariationCount
	}
	count = min(count, MaxVariationCount)

	out := make([]types.Variation, 0, count)
	for i := 0; i < count; i++ {
		optimized := Optimize(r, ks)
		if i > 0 {
			vary(optimized, i)
		}
		out = append(out, types.Variation{OptimizedResume: optimized, VariationIndex: i + 1})
	}
	return out
}

// vary rewords the summary opener and the bullet verbs of an optimized résumé
// in place, recording each edit in its change log
func vary(o *types.OptimizedResume, index int) {
	if o.Summary != "" {
		if summary := varySummary(o.Summary, index); summary != o.Summary {
			o.Summary = summary
			o.Changes = append(o.Changes, types.Change{
				Type:     types.ChangeImproved,
				Section:  sectionSummary,
				Text:     fmt.Sprintf("Varied summary opener (variation %d)", index+1),
				Keywords: []string{},
			})
		}
	}

	for i := range o.Experience {
		for j, bullet := range o.Experience[i].Bullets {
			varied, verb := varyBullet(bullet, index)
			if verb == "" {
				continue
			}
			o.Experience[i].Bullets[j] = varied
			o.Changes = append(o.Changes, types.Change{
				Type:     types.ChangeImproved,
				Section:  sectionExperience,
				Text:     fmt.Sprintf("Swapped action verb for %q", verb),
				Keywords: []string{verb},
			})
		}
	}
}

func varySummary(summary string, index int) string {
	words := strings.Split(summary, " ")
	opener := summaryOpeners[index%len(summaryOpeners)]

	first := words[0]
	for _, suffix := range roleSuffixes {
		if strings.HasSuffix(first, suffix) {
			return opener + " " + summary
		}
	}
	words[0] = opener
	return strings.Join(words, " ")
}

// varyBullet swaps the opening verb when it has alternatives and returns the
// new bullet and the verb used, or the bullet unchanged and ""
func varyBullet(bullet string, index int) (string, string) {
	first, rest, found := strings.Cut(bullet, " ")
	alternatives, ok := verbAlternatives[first]
	if !ok {
		return bullet, ""
	}
	verb := alternatives[index%len(alternatives)]
	if !found {
		return verb, verb
	}
	return verb + " " + rest, verb
}
