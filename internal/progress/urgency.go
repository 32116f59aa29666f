package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/now"

	"lerntracker/internal/models"
)

// ShortDateLayout entspricht "MMM d", z.B. "Feb 10"
const ShortDateLayout = "Jan 2"

// Rules steuert die Einstufung von Abgabeterminen
type Rules struct {
	DueSoonDays int // bis hierhin "Due in N days", danach das Datum
	WarningDays int // offene Aufgaben bis hierhin gelten als dringend
	Location    *time.Location
}

// DefaultRules entspricht der Anzeige der Weboberfläche
func DefaultRules() Rules {
	return Rules{DueSoonDays: 7, WarningDays: 3, Location: time.Local}
}

// Urgency beschreibt, wie dringend eine Aufgabe ist
type Urgency struct {
	DaysUntilDue int    `json:"days_until_due"`
	Overdue      bool   `json:"overdue"`
	Message      string `json:"message"`
	Tier         Tier   `json:"tier"`
}

// AssignmentView ist eine Aufgabe mit ihrer Dringlichkeit
type AssignmentView struct {
	models.Assignment
	Urgency Urgency `json:"urgency"`
}

func (r Rules) loc() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// DaysBetween zählt Kalendertage von from bis to; negativ, wenn to davor liegt
func (r Rules) DaysBetween(to, from time.Time) int {
	loc := r.loc()
	a := now.With(to.In(loc)).BeginningOfDay()
	b := now.With(from.In(loc)).BeginningOfDay()
	// Sommerzeit macht Tage 23 oder 25 Stunden lang
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// Assess stuft eine Aufgabe zum Zeitpunkt at ein
func (r Rules) Assess(a models.Assignment, at time.Time) Urgency {
	if a.Status == models.AssignmentCompleted {
		msg := "Submitted"
		if a.SubmittedAt != nil {
			msg += " " + a.SubmittedAt.In(r.loc()).Format(ShortDateLayout)
		}
		return Urgency{Message: msg, Tier: TierSuccess}
	}

	days := r.DaysBetween(a.DueDate, at)
	u := Urgency{DaysUntilDue: days}

	switch {
	case days < 0:
		u.Overdue = true
		n := -days
		unit := "days"
		if n == 1 {
			unit = "day"
		}
		u.Message = fmt.Sprintf("Overdue by %d %s", n, unit)
	case days == 0:
		u.Message = "Due today"
	case days == 1:
		u.Message = "Due tomorrow"
	case days <= r.DueSoonDays:
		u.Message = fmt.Sprintf("Due in %d days", days)
	default:
		u.Message = "Due " + a.DueDate.In(r.loc()).Format(ShortDateLayout)
	}

	switch {
	case u.Overdue || a.Status == models.AssignmentOverdue:
		u.Tier = TierDanger
	case days <= r.WarningDays:
		u.Tier = TierWarning
	default:
		u.Tier = TierNeutral
	}
	return u
}

// ViewAssignments behält die Reihenfolge bei
func (r Rules) ViewAssignments(assignments []models.Assignment, at time.Time) []AssignmentView {
	views := make([]AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, AssignmentView{Assignment: a, Urgency: r.Assess(a, at)})
	}
	return views
}
