// Package assembly re-joins selection rows onto the canonical resume record,
// filters and caps bullets, regroups skills and regenerates the summary to
// produce the final resume record consumed by the renderer.
package assembly

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// Config carries the assembly thresholds; injected, never ambient.
type Config struct {
	// InclusionThreshold is the minimum relevance score for a bullet to be
	// eligible, independent of the selection flag.
	InclusionThreshold float64
	// MaxBulletsPerItem caps how many qualifying bullets an item keeps.
	MaxBulletsPerItem int
	// MaxHighlights is how many surviving bullets feed summary generation.
	MaxHighlights int
}

// SummaryGenerator produces the tailored summary text from the highlight
// digest. Failures fall back to the master record's original summary.
type SummaryGenerator func(ctx context.Context, highlights string, jd *types.JobDescriptionAnalysis, candidateName string) (string, error)

// Assembler builds FinalResumeRecords.
type Assembler struct {
	cfg       Config
	summarize SummaryGenerator
}

// New creates an Assembler. summarize may be nil, in which case the master
// summary is always carried over.
func New(cfg Config, summarize SummaryGenerator) *Assembler {
	return &Assembler{cfg: cfg, summarize: summarize}
}

// selectionKey is the natural-key pair used to re-identify an item's rows.
// Two items sharing an identifier within the same section would have their
// scored bullets conflated here; the source data does not guard against this.
type selectionKey struct {
	section    types.SectionTitle
	identifier string
}

// Assemble joins the selection rows back onto the master record.
func (a *Assembler) Assemble(ctx context.Context, master *types.ResumeRecord, jd *types.JobDescriptionAnalysis, selections []types.ScoredItemEntry) (*types.FinalResumeRecord, error) {
	index := make(map[selectionKey][]types.ScoredItemEntry)
	for _, entry := range selections {
		key := selectionKey{section: entry.SectionTitle, identifier: entry.ItemIdentifier}
		index[key] = append(index[key], entry)
	}

	assembled := make(map[types.SectionTitle]types.Section)
	for _, section := range master.Sections {
		switch section.Title {
		case types.SectionExperience, types.SectionLeadership, types.SectionHonors:
			assembled[section.Title] = a.assembleFlat(section, index)
		case types.SectionProjects:
			assembled[section.Title] = a.assembleGrouped(section, index)
		case types.SectionSkills:
			assembled[section.Title] = a.assembleSkills(section, selections, master)
		}
	}

	final := &types.FinalResumeRecord{
		PersonalInfo: master.PersonalInfo,
		Summary:      a.regenerateSummary(ctx, master, jd, assembled),
	}

	// Fixed emission order. A section never dynamically assembled is filled
	// from the master verbatim when non-empty; an empty section is omitted.
	for _, title := range types.FinalSectionOrder {
		if section, ok := assembled[title]; ok {
			if !section.Empty() {
				final.Sections = append(final.Sections, section)
			}
			continue
		}
		if masterSection := master.FindSection(title); masterSection != nil && !masterSection.Empty() {
			final.Sections = append(final.Sections, *masterSection)
		}
	}

	return final, nil
}

// assembleFlat rebuilds a flat section keeping, per item, only the qualifying
// bullets: score at or above the threshold AND user-selected, sorted by score
// descending, capped at MaxBulletsPerItem. Items with zero surviving bullets
// are dropped entirely, metadata and all.
func (a *Assembler) assembleFlat(section types.Section, index map[selectionKey][]types.ScoredItemEntry) types.Section {
	out := types.Section{Title: section.Title}
	for _, item := range section.Items {
		if rebuilt := a.rebuildItem(section.Title, item, index); rebuilt != nil {
			out.Items = append(out.Items, rebuilt)
		}
	}
	return out
}

// assembleGrouped applies the flat-section rules within each subsection.
func (a *Assembler) assembleGrouped(section types.Section, index map[selectionKey][]types.ScoredItemEntry) types.Section {
	out := types.Section{Title: section.Title}
	for _, sub := range section.Subsections {
		rebuilt := types.Subsection{Name: sub.Name}
		for _, item := range sub.Items {
			if r := a.rebuildItem(section.Title, item, index); r != nil {
				rebuilt.Items = append(rebuilt.Items, r)
			}
		}
		if len(rebuilt.Items) > 0 {
			out.Subsections = append(out.Subsections, rebuilt)
		}
	}
	return out
}

// rebuildItem returns the item with only its surviving bullet texts, or nil
// when no bullets survive.
func (a *Assembler) rebuildItem(title types.SectionTitle, item types.Item, index map[selectionKey][]types.ScoredItemEntry) types.Item {
	entries := index[selectionKey{section: title, identifier: item.Identifier()}]
	survivors := a.qualify(entries)
	if len(survivors) == 0 {
		return nil
	}

	texts := make([]string, len(survivors))
	for i, entry := range survivors {
		texts[i] = entry.FinalText()
	}

	return withBullets(item, texts)
}

// qualify filters entries on threshold and selection flag, sorts by score
// descending and applies the per-item cap.
func (a *Assembler) qualify(entries []types.ScoredItemEntry) []types.ScoredItemEntry {
	var survivors []types.ScoredItemEntry
	for _, entry := range entries {
		if entry.RelevanceScore >= a.cfg.InclusionThreshold && entry.UserSelected {
			survivors = append(survivors, entry)
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].RelevanceScore > survivors[j].RelevanceScore
	})

	if a.cfg.MaxBulletsPerItem > 0 && len(survivors) > a.cfg.MaxBulletsPerItem {
		survivors = survivors[:a.cfg.MaxBulletsPerItem]
	}
	return survivors
}

// withBullets clones an item with its bullet sequence replaced.
func withBullets(item types.Item, bullets []string) types.Item {
	switch v := item.(type) {
	case *types.Job:
		clone := *v
		clone.Responsibilities = bullets
		return &clone
	case *types.Project:
		clone := *v
		clone.DescriptionBullets = bullets
		return &clone
	case *types.LeadershipEntry:
		clone := *v
		clone.Responsibilities = bullets
		return &clone
	case *types.Award:
		clone := *v
		if len(bullets) > 0 {
			clone.Description = bullets[0]
		}
		return &clone
	default:
		return nil
	}
}

// assembleSkills filters the skills selection rows, re-locates each by
// identifier in the master record to recover the full original structure and
// regroups by originating category. An identifier that cannot be re-located
// degrades to a minimal skill-only structure built from the raw selection text.
func (a *Assembler) assembleSkills(section types.Section, selections []types.ScoredItemEntry, master *types.ResumeRecord) types.Section {
	out := types.Section{Title: types.SectionSkills}
	subIndex := map[string]int{}

	add := func(item *types.SkillOrCert) {
		category := item.Category
		if category == "" {
			category = "General"
		}
		idx, ok := subIndex[category]
		if !ok {
			out.Subsections = append(out.Subsections, types.Subsection{Name: category})
			idx = len(out.Subsections) - 1
			subIndex[category] = idx
		}
		out.Subsections[idx].Items = append(out.Subsections[idx].Items, item)
	}

	for _, entry := range selections {
		if entry.SectionTitle != types.SectionSkills {
			continue
		}
		if entry.RelevanceScore < a.cfg.InclusionThreshold || !entry.UserSelected {
			continue
		}

		if located := locateSkill(section, entry.ItemIdentifier); located != nil {
			add(located)
			continue
		}

		log.Printf("assembly: skill identifier %q not found in master record, using degraded structure", entry.ItemIdentifier)
		add(&types.SkillOrCert{Skill: entry.OriginalText})
	}

	return out
}

// locateSkill finds a skill or certificate by its natural key.
func locateSkill(section types.Section, identifier string) *types.SkillOrCert {
	for _, sub := range section.Subsections {
		for _, item := range sub.Items {
			skill, ok := item.(*types.SkillOrCert)
			if !ok {
				continue
			}
			if skill.Identifier() == identifier {
				clone := *skill
				return &clone
			}
		}
	}
	return nil
}

// regenerateSummary concatenates every surviving bullet text, keeps the
// longest MaxHighlights (length as a proxy for detail richness) and hands the
// digest to the summary generator. Any failure falls back verbatim to the
// master record's summary.
func (a *Assembler) regenerateSummary(ctx context.Context, master *types.ResumeRecord, jd *types.JobDescriptionAnalysis, assembled map[types.SectionTitle]types.Section) string {
	if a.summarize == nil {
		return master.Summary
	}

	var bullets []string
	for _, title := range types.FinalSectionOrder {
		section, ok := assembled[title]
		if !ok {
			continue
		}
		for _, item := range section.Items {
			bullets = append(bullets, item.Bullets()...)
		}
		for _, sub := range section.Subsections {
			for _, item := range sub.Items {
				bullets = append(bullets, item.Bullets()...)
			}
		}
	}

	if len(bullets) == 0 {
		return master.Summary
	}

	sort.SliceStable(bullets, func(i, j int) bool {
		return len(bullets[i]) > len(bullets[j])
	})
	if a.cfg.MaxHighlights > 0 && len(bullets) > a.cfg.MaxHighlights {
		bullets = bullets[:a.cfg.MaxHighlights]
	}

	highlights := strings.Join(bullets, " ")
	summary, err := a.summarize(ctx, highlights, jd, master.PersonalInfo["fullName"])
	if err != nil || strings.TrimSpace(summary) == "" {
		log.Printf("assembly: summary generation failed, keeping master summary: %v", err)
		return master.Summary
	}
	return strings.TrimSpace(summary)
}
