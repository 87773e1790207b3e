// Package jurisdiction defines the mechanics-lien rule record of each U.S.
// jurisdiction and the read-only rule table the deadline engine consults.
package jurisdiction

import (
	"fmt"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Notice rules
// ─────────────────────────────────────────────────────────────────────────────

// MonthDayFormula expresses "day Day of the Months-th month after the start
// month" (Texas-style deadlines).
type MonthDayFormula struct {
	Months int `yaml:"months" json:"months"`
	Day    int `yaml:"day" json:"day"`
}

// String renders the formula for warnings and listings.
func (f MonthDayFormula) String() string {
	return fmt.Sprintf("day %d of month +%d", f.Day, f.Months)
}

// NoticeRule describes one notice type (preliminary notice or lien filing).
// A period is either a flat DayOffset or a month+day Formula, never both.
type NoticeRule struct {
	Required bool `yaml:"required" json:"required"`

	// DayOffset counts calendar days from the invoice date, or business days
	// when BusinessDays is set.
	DayOffset    *int             `yaml:"day_offset,omitempty" json:"day_offset,omitempty"`
	BusinessDays bool             `yaml:"business_days,omitempty" json:"business_days,omitempty"`
	Formula      *MonthDayFormula `yaml:"formula,omitempty" json:"formula,omitempty"`

	// Residential variants apply to residential projects where the statute
	// splits on project type.
	ResidentialDayOffset *int             `yaml:"residential_day_offset,omitempty" json:"residential_day_offset,omitempty"`
	ResidentialFormula   *MonthDayFormula `yaml:"residential_formula,omitempty" json:"residential_formula,omitempty"`

	// Days after a recorded notice of completion.  The contractor value
	// applies to the contractor role where the statute distinguishes it.
	CompletionDayOffset           *int `yaml:"completion_day_offset,omitempty" json:"completion_day_offset,omitempty"`
	ContractorCompletionDayOffset *int `yaml:"contractor_completion_day_offset,omitempty" json:"contractor_completion_day_offset,omitempty"`

	Description     string `yaml:"description" json:"description"`
	StatuteCitation string `yaml:"statute_citation" json:"statute_citation"`
}

// HasPeriod reports whether the rule defines any deadline period.
func (n NoticeRule) HasPeriod() bool {
	return n.DayOffset != nil || n.Formula != nil
}

// Offset returns the day offset for the project type.  The residential value
// wins for residential projects when present.
func (n NoticeRule) Offset(residential bool) (int, bool) {
	if residential && n.ResidentialDayOffset != nil {
		return *n.ResidentialDayOffset, true
	}
	if n.DayOffset != nil {
		return *n.DayOffset, true
	}
	return 0, false
}

// MonthDay returns the month+day formula for the project type.
func (n NoticeRule) MonthDay(residential bool) (MonthDayFormula, bool) {
	if residential && n.ResidentialFormula != nil {
		return *n.ResidentialFormula, true
	}
	if n.Formula != nil {
		return *n.Formula, true
	}
	return MonthDayFormula{}, false
}

// HasResidentialSplit reports whether the rule carries residential values.
func (n NoticeRule) HasResidentialSplit() bool {
	return n.ResidentialDayOffset != nil || n.ResidentialFormula != nil
}

// CompletionOffset returns the days allowed after a notice of completion for
// the role.
func (n NoticeRule) CompletionOffset(contractor bool) (int, bool) {
	if contractor && n.ContractorCompletionDayOffset != nil {
		return *n.ContractorCompletionDayOffset, true
	}
	if n.CompletionDayOffset != nil {
		return *n.CompletionDayOffset, true
	}
	return 0, false
}

func (n NoticeRule) validate(code, kind string) error {
	if n.DayOffset != nil && n.Formula != nil {
		return errors.RuleCatalog("%s %s: day_offset and formula are mutually exclusive", code, kind)
	}
	if n.ResidentialDayOffset != nil && n.ResidentialFormula != nil {
		return errors.RuleCatalog("%s %s: residential_day_offset and residential_formula are mutually exclusive", code, kind)
	}
	if (n.ResidentialDayOffset != nil && n.Formula != nil) || (n.ResidentialFormula != nil && n.DayOffset != nil) {
		return errors.RuleCatalog("%s %s: residential period must use the same form as the base period", code, kind)
	}
	if !n.Required && (n.HasPeriod() || n.HasResidentialSplit()) {
		return errors.RuleCatalog("%s %s: a notice that is not required cannot define a period", code, kind)
	}
	if n.BusinessDays && n.DayOffset == nil {
		return errors.RuleCatalog("%s %s: business_days requires day_offset", code, kind)
	}
	for _, v := range []*int{n.DayOffset, n.ResidentialDayOffset, n.CompletionDayOffset, n.ContractorCompletionDayOffset} {
		if v != nil && *v < 0 {
			return errors.RuleCatalog("%s %s: offsets must not be negative", code, kind)
		}
	}
	for _, f := range []*MonthDayFormula{n.Formula, n.ResidentialFormula} {
		if f != nil && (f.Months < 0 || f.Day < 1 || f.Day > 31) {
			return errors.RuleCatalog("%s %s: invalid formula %s", code, kind, f)
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Policy flags and the rule record
// ─────────────────────────────────────────────────────────────────────────────

// PolicyFlags are the statutory switches of a jurisdiction.
type PolicyFlags struct {
	WeekendExtension          bool `yaml:"weekend_extension" json:"weekend_extension"`
	HolidayExtension          bool `yaml:"holiday_extension" json:"holiday_extension"`
	ResidentialVsCommercial   bool `yaml:"residential_vs_commercial" json:"residential_vs_commercial"`
	NoticeOfCompletionTrigger bool `yaml:"notice_of_completion_trigger" json:"notice_of_completion_trigger"`
}

// Extension converts the flags into a calendar roll-forward policy.
func (p PolicyFlags) Extension() calendar.ExtensionPolicy {
	return calendar.ExtensionPolicy{Weekends: p.WeekendExtension, Holidays: p.HolidayExtension}
}

// Rule is the complete lien rule set of one jurisdiction.  Rules are values
// owned by a Table and are never modified after it is built.
type Rule struct {
	Code              string      `yaml:"code" json:"code"`
	Name              string      `yaml:"name" json:"name"`
	Aliases           []string    `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	PreliminaryNotice NoticeRule  `yaml:"preliminary_notice" json:"preliminary_notice"`
	LienFiling        NoticeRule  `yaml:"lien_filing" json:"lien_filing"`
	PolicyFlags       PolicyFlags `yaml:"policy_flags" json:"policy_flags"`
	Notes             string      `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Validate checks the rule record invariants.
func (r Rule) Validate() error {
	if len(r.Code) != 2 {
		return errors.RuleCatalog("code %q must have two letters", r.Code)
	}
	for _, c := range r.Code {
		if c < 'A' || c > 'Z' {
			return errors.RuleCatalog("code %q must be upper case letters", r.Code)
		}
	}
	if r.Name == "" {
		return errors.RuleCatalog("%s: name is required", r.Code)
	}
	if err := r.PreliminaryNotice.validate(r.Code, "preliminary_notice"); err != nil {
		return err
	}
	if !r.LienFiling.Required {
		return errors.RuleCatalog("%s lien_filing: lien filing is always required", r.Code)
	}
	return r.LienFiling.validate(r.Code, "lien_filing")
}
