package persona

import "strings"

// AdaptHeading rewrites a section title for the persona. The first template
// entry whose action is in the profile wins (entries are checked in the
// fixed table order, not for the globally best match); within that entry
// the template with the highest whole-word overlap is selected, earliest
// position breaking ties. Without a qualifying entry the title is wrapped
// in the persona's prefix/suffix pair, or returned unchanged for types
// that have none.
func AdaptHeading(original string, pc *Context) string {
	for _, entry := range pc.Templates {
		if !pc.HasAction(entry.Action) || len(entry.Templates) == 0 {
			continue
		}
		return bestTemplate(original, entry.Templates)
	}
	return synthesize(original, pc.Type)
}

// bestTemplate picks the template sharing the most whole words with the
// original title. The scan is stable: only a strictly better count replaces
// the current best.
func bestTemplate(original string, templates []string) string {
	originalWords := strings.Fields(strings.ToLower(original))

	best := templates[0]
	bestCount := -1
	for _, tmpl := range templates {
		tmplWords := make(map[string]bool)
		for _, w := range strings.Fields(strings.ToLower(tmpl)) {
			tmplWords[w] = true
		}
		count := 0
		for _, w := range originalWords {
			if tmplWords[w] {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = tmpl
		}
	}
	return best
}

func synthesize(original string, t Type) string {
	prefixes, ok := typePrefixes[t]
	if !ok || len(prefixes) == 0 {
		return original
	}
	suffixes := typeSuffixes[t]
	if len(suffixes) == 0 {
		return original
	}
	return prefixes[0] + " " + original + " " + suffixes[0]
}
