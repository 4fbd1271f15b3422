package services

import (
	"fmt"
	"sort"

	"github.com/kahgin/fika-core/pkg/config"
	"github.com/kahgin/fika-core/pkg/utils"
)

// overrunToleranceMin is how far past the day budget a schedule may run
// before the audit flags it.
const overrunToleranceMin = 60

// AuditItinerary checks a finished plan for schedule smells: back-to-back
// meals, meals outside their window, visits outside opening hours, days that
// blow the time budget, days without a meal, and a theme dominating the
// trip. Violations are advisory; the plan is still returned.
func AuditItinerary(days []*DayRoute, cfg *config.PlannerConfig, pacing string) []string {
	var violations []string
	dayEnd := cfg.DayStartMin + cfg.DayBudgetMin[pacing]

	for _, day := range days {
		label := day.Date.Format("2006-01-02")

		for i := range day.Stops {
			s := &day.Stops[i]
			if s.Role == RoleMeal {
				if i > 0 && day.Stops[i-1].Role == RoleMeal {
					violations = append(violations,
						fmt.Sprintf("day %s: consecutive meals (%s after %s)", label, s.Place.Name, day.Stops[i-1].Place.Name))
				}
				if s.ServiceStartMin < s.Slot.Open || s.ServiceStartMin > s.Slot.Close {
					violations = append(violations,
						fmt.Sprintf("day %s: meal %s starts at %s outside its window", label, s.Place.Name, utils.FormatHHMM(s.ServiceStartMin)))
				}
			}
			if !fitsPlaceWindows(&s.Place, utils.WeekdayName(day.Date), s.ServiceStartMin, s.ServiceMin) {
				violations = append(violations,
					fmt.Sprintf("day %s: %s visited outside opening hours", label, s.Place.Name))
			}
		}

		if n := len(day.Stops); n > 0 {
			last := day.Stops[n-1]
			if last.DepartMin > dayEnd+overrunToleranceMin {
				violations = append(violations,
					fmt.Sprintf("day %s: schedule runs to %s, past the day budget", label, utils.FormatHHMM(last.DepartMin)))
			}
			if day.MealCount() == 0 {
				violations = append(violations,
					fmt.Sprintf("day %s: no meal scheduled", label))
			}
		}
	}

	violations = append(violations, themeImbalance(days, cfg.ThemeShareCap)...)
	return violations
}

// themeImbalance flags any theme covering more than the share cap of the
// trip's attraction stops.
func themeImbalance(days []*DayRoute, shareCap float64) []string {
	counts := make(map[string]int)
	total := 0
	for _, day := range days {
		for i := range day.Stops {
			s := &day.Stops[i]
			if s.Role != RoleAttraction || len(s.Place.Themes) == 0 {
				continue
			}
			counts[s.Place.Themes[0]]++
			total++
		}
	}
	if total < 4 {
		return nil
	}

	var out []string
	for _, theme := range sortedKeys(counts) {
		if share := float64(counts[theme]) / float64(total); share > shareCap {
			out = append(out, fmt.Sprintf("theme %s covers %.0f%% of attraction stops", theme, share*100))
		}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
