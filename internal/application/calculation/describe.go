package calculation

import (
	"fmt"
	"strings"

	"github.com/turtacn/LienDeadline/internal/domain/jurisdiction"
)

// DescribePeriod renders a notice period for listings, e.g. "90 days",
// "8 business days", "day 15 of month +3 (residential: day 15 of month +2)"
// or "not required".
func DescribePeriod(n jurisdiction.NoticeRule) string {
	if !n.Required {
		return "not required"
	}
	if !n.HasPeriod() {
		return "unspecified"
	}

	var b strings.Builder
	b.WriteString(describeBase(n, false))
	if n.HasResidentialSplit() {
		fmt.Fprintf(&b, " (residential: %s)", describeBase(n, true))
	}
	if days, ok := n.CompletionOffset(false); ok {
		fmt.Fprintf(&b, "; %d days after completion", days)
		if c, ok := n.CompletionOffset(true); ok && c != days {
			fmt.Fprintf(&b, " (contractor: %d)", c)
		}
	}
	return b.String()
}

func describeBase(n jurisdiction.NoticeRule, residential bool) string {
	if f, ok := n.MonthDay(residential); ok {
		return f.String()
	}
	days, _ := n.Offset(residential)
	if n.BusinessDays {
		return fmt.Sprintf("%d business days", days)
	}
	return fmt.Sprintf("%d days", days)
}
