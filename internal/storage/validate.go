package storage

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"lerntracker/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Pflichtfelder aus reinen Leerzeichen gelten als leer
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Feldnamen wie im JSON melden
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkInput übersetzt Validator-Fehler in einen ValidationError für das erste Feld
func checkInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return invalid(fe.Field(), reasonFor(fe))
	}
	return err
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "ist erforderlich"
	case "oneof":
		return "muss einer von [" + fe.Param() + "] sein"
	case "url":
		return "ist keine gültige URL"
	case "min":
		return "darf nicht kleiner als " + fe.Param() + " sein"
	default:
		return "ist ungültig (" + fe.Tag() + ")"
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDate akzeptiert ISO-Zeitstempel oder reine Kalenderdaten (in loc)
func parseDate(field, v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid(field, "ist kein gültiges Datum")
}

// maxCount begrenzt Anzahlen; größere Werte gelten als ungültig
const maxCount = math.MaxInt32

// parseCount wertet Zahlenfelder wie das Formular aus: Ungültiges wird 0
func parseCount(v models.FormValue) int {
	f := parseHours(v)
	if f > maxCount {
		return 0
	}
	return int(f)
}

func parseHours(v models.FormValue) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func splitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
