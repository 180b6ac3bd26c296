package value

import (
	"fmt"
	"time"

	"github.com/lattixdb/cyphercore/pkg/cerr"
)

// TemporalKind distinguishes the Cypher temporal variants that share the
// single KindTemporal Value slot.
type TemporalKind uint8

const (
	TemporalDate TemporalKind = iota
	TemporalLocalTime
	TemporalTime
	TemporalLocalDateTime
	TemporalDateTime
	TemporalDuration
)

// Temporal holds either a zoned instant (Date/*Time*/DateTime) or a
// calendar duration (months/days/nanoseconds, matching Neo4j's
// decomposition so month-length ambiguity never has to be guessed).
type Temporal struct {
	Kind TemporalKind

	Instant time.Time // meaningful for every kind except TemporalDuration

	DurationMonths int64
	DurationDays   int64
	DurationNanos  int64
}

func NewInstant(kind TemporalKind, t time.Time) *Temporal {
	return &Temporal{Kind: kind, Instant: t}
}

func NewDuration(months, days, nanos int64) *Temporal {
	return &Temporal{Kind: TemporalDuration, DurationMonths: months, DurationDays: days, DurationNanos: nanos}
}

func (t *Temporal) String() string {
	if t.Kind == TemporalDuration {
		return fmt.Sprintf("P%dM%dDT%dN", t.DurationMonths, t.DurationDays, t.DurationNanos)
	}
	switch t.Kind {
	case TemporalDate:
		return t.Instant.Format("2006-01-02")
	case TemporalLocalTime, TemporalTime:
		return t.Instant.Format("15:04:05.999999999")
	default:
		return t.Instant.Format(time.RFC3339Nano)
	}
}

// Accessor evaluates a named temporal component (year, month, day, and so
// on). err is UnsupportedTemporalAccessor for anything not listed there.
func (t *Temporal) Accessor(name string) (Value, error) {
	if t.Kind == TemporalDuration {
		return t.durationAccessor(name)
	}
	switch name {
	case "year":
		return Int(int64(t.Instant.Year())), nil
	case "quarter":
		return Int(int64((int(t.Instant.Month())-1)/3 + 1)), nil
	case "month":
		return Int(int64(t.Instant.Month())), nil
	case "week":
		_, wk := t.Instant.ISOWeek()
		return Int(int64(wk)), nil
	case "day", "dayOfMonth":
		return Int(int64(t.Instant.Day())), nil
	case "dayOfYear":
		return Int(int64(t.Instant.YearDay())), nil
	case "dayOfWeek":
		// ISO-8601: Monday=1 .. Sunday=7
		wd := int(t.Instant.Weekday())
		if wd == 0 {
			wd = 7
		}
		return Int(int64(wd)), nil
	case "hour":
		return Int(int64(t.Instant.Hour())), nil
	case "minute":
		return Int(int64(t.Instant.Minute())), nil
	case "second":
		return Int(int64(t.Instant.Second())), nil
	case "millisecond":
		return Int(int64(t.Instant.Nanosecond() / 1_000_000)), nil
	case "microsecond":
		return Int(int64(t.Instant.Nanosecond() / 1_000)), nil
	case "nanosecond":
		return Int(int64(t.Instant.Nanosecond())), nil
	case "offset":
		_, offsetSeconds := t.Instant.Zone()
		return Str(formatOffset(offsetSeconds)), nil
	case "epochSeconds":
		return Int(t.Instant.Unix()), nil
	case "epochMillis":
		return Int(t.Instant.UnixMilli()), nil
	default:
		return Null, fmt.Errorf("%w: %s", cerr.ErrUnsupportedTemporalAccessor, name)
	}
}

func (t *Temporal) durationAccessor(name string) (Value, error) {
	switch name {
	case "months":
		return Int(t.DurationMonths % 12), nil
	case "years":
		return Int(t.DurationMonths / 12), nil
	case "days":
		return Int(t.DurationDays), nil
	case "seconds":
		return Int(t.DurationNanos / int64(time.Second)), nil
	case "milliseconds":
		return Int(t.DurationNanos / int64(time.Millisecond)), nil
	case "nanoseconds":
		return Int(t.DurationNanos), nil
	default:
		return Null, fmt.Errorf("%w: %s", cerr.ErrUnsupportedTemporalAccessor, name)
	}
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// CompareInstant orders two instant-like temporals; both must not be
// TemporalDuration. Mixed instant-kind comparisons (e.g. Date vs DateTime)
// are treated as comparable by their underlying instant, since all
// temporal kinds belong to one comparable family.
func CompareInstant(a, b *Temporal) int {
	return int(orderOrdered(a.Instant.UnixNano(), b.Instant.UnixNano()))
}

// CompareDuration orders two Duration temporals by total effective
// duration, approximating a month as 30 days for ordering purposes only
// (Cypher duration ordering is inherently approximate for calendar units).
func CompareDuration(a, b *Temporal) int {
	na := a.DurationMonths*30*int64(24*time.Hour) + a.DurationDays*int64(24*time.Hour) + a.DurationNanos
	nb := b.DurationMonths*30*int64(24*time.Hour) + b.DurationDays*int64(24*time.Hour) + b.DurationNanos
	return int(orderOrdered(na, nb))
}
