package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
)

// Sheet rows arrive as loose maps: keys in camelCase or snake_case, numbers
// as JSON floats or strings, timestamps in several layouts. All of that is
// resolved here, once, before any reconciliation logic sees the row.

var scheduleRowAliases = map[string][]string{
	"id":                {"id"},
	"enrollmentId":      {"enrollmentId", "enrollment_id"},
	"lessonNumber":      {"lessonNumber", "lesson_number"},
	"scheduledAt":       {"scheduledAt", "scheduled_at"},
	"notification24hId": {"notification24hId", "notification_24h_id"},
	"notification1hId":  {"notification1hId", "notification_1h_id"},
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// normalizeScheduleRow turns one raw sheet row into a typed schedule row.
// A row missing enrollment id, lesson number or scheduled time is invalid.
func normalizeScheduleRow(row map[string]any) (*entity.ScheduleRow, error) {
	out := &entity.ScheduleRow{}

	if v, ok := lookupAlias(row, "id"); ok {
		id, err := toInt64(v)
		if err != nil {
			return nil, fmt.Errorf("%w: bad id: %v", entity.ErrInvalidScheduleRow, err)
		}
		out.ID = id
	}

	v, ok := lookupAlias(row, "enrollmentId")
	if !ok {
		return nil, fmt.Errorf("%w: missing enrollmentId", entity.ErrInvalidScheduleRow)
	}
	enrollmentID, err := toInt64(v)
	if err != nil || enrollmentID <= 0 {
		return nil, fmt.Errorf("%w: bad enrollmentId", entity.ErrInvalidScheduleRow)
	}
	out.EnrollmentID = enrollmentID

	v, ok = lookupAlias(row, "lessonNumber")
	if !ok {
		return nil, fmt.Errorf("%w: missing lessonNumber", entity.ErrInvalidScheduleRow)
	}
	lessonNumber, err := toInt64(v)
	if err != nil || lessonNumber <= 0 {
		return nil, fmt.Errorf("%w: bad lessonNumber", entity.ErrInvalidScheduleRow)
	}
	out.LessonNumber = int(lessonNumber)

	v, ok = lookupAlias(row, "scheduledAt")
	if !ok {
		return nil, fmt.Errorf("%w: missing scheduledAt", entity.ErrInvalidScheduleRow)
	}
	scheduledAt, err := toTime(v)
	if err != nil {
		return nil, fmt.Errorf("%w: bad scheduledAt: %v", entity.ErrInvalidScheduleRow, err)
	}
	out.ScheduledAt = scheduledAt

	// Handles in the sheet are informational; they are parsed so exports
	// round-trip, but the stored values always win.
	if v, ok := lookupAlias(row, "notification24hId"); ok {
		out.Notification24hID, _ = v.(string)
	}
	if v, ok := lookupAlias(row, "notification1hId"); ok {
		out.Notification1hID, _ = v.(string)
	}

	return out, nil
}

func lookupAlias(row map[string]any, canonical string) (any, bool) {
	for _, key := range scheduleRowAliases[canonical] {
		if v, ok := row[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseInt(s, 10, 64)
	}
	return 0, fmt.Errorf("unsupported numeric type %T", v)
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
	case float64:
		// Unix seconds, the occasional sheet export format.
		return time.Unix(int64(t), 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported time type %T", v)
}
