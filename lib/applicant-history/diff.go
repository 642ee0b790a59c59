package applicanthistory

import (
	"fmt"
	"reflect"
	"smarthire-backend/lib/utils/helpers"
	"smarthire-backend/models"
	dbmodels "smarthire-backend/models/db"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const emptyValue = "empty"

// Merge copies the listed fields from edited onto a copy of original. Any
// other difference in edited is discarded.
func Merge(original, edited dbmodels.Candidate, fields []Field) dbmodels.Candidate {
	result := original.Clone()
	for _, field := range fields {
		field.CopyTo(&result, edited)
	}
	return result
}

// Diff returns one field_changed entry per listed field whose value differs
// between original and updated. It does not modify its inputs and
// Diff(x, x, ...) is empty.
func Diff(original, updated dbmodels.Candidate, actor models.Actor, fields []Field, at time.Time) []dbmodels.AuditLog {
	result := []dbmodels.AuditLog{}
	for _, field := range fields {
		oldValue := field.Get(original)
		newValue := field.Get(updated)
		if equalValues(oldValue, newValue) {
			continue
		}
		result = append(result, dbmodels.AuditLog{
			ID:        uuid.NewString(),
			Timestamp: at,
			User:      actor.Name,
			Role:      actor.Role,
			Action:    changeText(field.Path, oldValue, newValue),
			Kind:      models.AuditFieldChanged,
			Field:     field.Path,
		})
	}
	return result
}

func changeText(path string, oldValue, newValue interface{}) string {
	label := FormatPath(path)
	if newBool, ok := newValue.(bool); ok {
		if _, ok := oldValue.(bool); ok {
			return fmt.Sprintf("%s set to \"%s\".", label, yesNo(newBool))
		}
	}
	if isList(oldValue) || isList(newValue) {
		return fmt.Sprintf("%s was updated.", label)
	}
	return fmt.Sprintf("%s changed from \"%s\" to \"%s\".", label, getValue(oldValue), getValue(newValue))
}

// FormatPath turns a dotted camel-case path into title-cased words:
// "ratings.hr.interviewer" becomes "Ratings Hr Interviewer".
func FormatPath(path string) string {
	words := []string{}
	for _, segment := range strings.Split(path, ".") {
		for _, word := range strings.Split(helpers.ToSnakeCase(segment), "_") {
			if word == "" {
				continue
			}
			words = append(words, strings.ToUpper(word[:1])+word[1:])
		}
	}
	return strings.Join(words, " ")
}

func getValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return emptyValue
	case string:
		if v == "" {
			return emptyValue
		}
		return v
	case int:
		if v == 0 {
			return emptyValue
		}
		return strconv.Itoa(v)
	case float64:
		if v == 0 {
			return emptyValue
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return yesNo(v)
	}
	return fmt.Sprintf("%v", value)
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func isList(value interface{}) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// equalValues is deep equality where a nil list equals an empty one.
func equalValues(a, b interface{}) bool {
	if isList(a) && isList(b) && reflect.ValueOf(a).Len() == 0 && reflect.ValueOf(b).Len() == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
