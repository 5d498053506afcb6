package pipeline

import (
	"fmt"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// scorableUnit is one row-to-be of the selection sheet: a single bullet or a
// single skill/certificate text, tagged with the natural key that re-joins it
// to its source item during assembly.
type scorableUnit struct {
	section    types.SectionTitle
	identifier string
	text       string
}

// collectScorableUnits walks the record in section order and flattens every
// scorable text. Education entries carry no bullets and contribute nothing;
// skills and certificates contribute their full scorable text.
func collectScorableUnits(record *types.ResumeRecord) []scorableUnit {
	var units []scorableUnit

	appendItem := func(title types.SectionTitle, item types.Item) {
		if skill, ok := item.(*types.SkillOrCert); ok {
			units = append(units, scorableUnit{
				section:    title,
				identifier: skill.Identifier(),
				text:       skill.ScorableText(),
			})
			return
		}
		for _, bullet := range item.Bullets() {
			if bullet == "" {
				continue
			}
			units = append(units, scorableUnit{
				section:    title,
				identifier: item.Identifier(),
				text:       bullet,
			})
		}
	}

	for _, section := range record.Sections {
		for _, item := range section.Items {
			appendItem(section.Title, item)
		}
		for _, sub := range section.Subsections {
			for _, item := range sub.Items {
				appendItem(section.Title, item)
			}
		}
	}
	return units
}

// unitID builds the stable per-run row identifier humans see in the sheet.
func unitID(index int) string {
	return fmt.Sprintf("ITEM-%04d", index+1)
}
