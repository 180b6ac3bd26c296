package procedure

import (
	"regexp"
	"strconv"
	"time"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func fnDate(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		now := time.Now().UTC()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return value.TemporalVal(value.NewInstant(value.TemporalDate, day)), nil
	}
	s, ok := args[0].AsString()
	if !ok {
		return value.Null, cerr.New("date", cerr.KindInvalidArgument, "date() requires a string argument")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return value.Null, cerr.Wrap("date", cerr.KindInvalidArgument, "malformed date string", err)
	}
	return value.TemporalVal(value.NewInstant(value.TemporalDate, t)), nil
}

func fnDatetime(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.TemporalVal(value.NewInstant(value.TemporalDateTime, time.Now().UTC())), nil
	}
	s, ok := args[0].AsString()
	if !ok {
		return value.Null, cerr.New("datetime", cerr.KindInvalidArgument, "datetime() requires a string argument")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return value.Null, cerr.Wrap("datetime", cerr.KindInvalidArgument, "malformed datetime string", err)
	}
	return value.TemporalVal(value.NewInstant(value.TemporalDateTime, t)), nil
}

func fnTime(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.TemporalVal(value.NewInstant(value.TemporalTime, time.Now().UTC())), nil
	}
	s, ok := args[0].AsString()
	if !ok {
		return value.Null, cerr.New("time", cerr.KindInvalidArgument, "time() requires a string argument")
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return value.Null, cerr.Wrap("time", cerr.KindInvalidArgument, "malformed time string", err)
	}
	return value.TemporalVal(value.NewInstant(value.TemporalTime, t)), nil
}

func fnTimestamp(args []value.Value) (value.Value, error) {
	return value.Int(time.Now().UTC().UnixMilli()), nil
}

// isoDuration matches the ISO-8601 duration subset Cypher's duration()
// accepts: P<n>Y<n>M<n>DT<n>H<n>M<n>S, every component optional.
var isoDuration = regexp.MustCompile(`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

func fnDuration(args []value.Value) (value.Value, error) {
	s, ok := args[0].AsString()
	if !ok {
		return value.Null, cerr.New("duration", cerr.KindInvalidArgument, "duration() requires an ISO-8601 duration string")
	}
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return value.Null, cerr.New("duration", cerr.KindInvalidArgument, "malformed ISO-8601 duration")
	}
	years := parseIntGroup(m[1])
	months := parseIntGroup(m[2])
	days := parseIntGroup(m[3])
	hours := parseIntGroup(m[4])
	minutes := parseIntGroup(m[5])
	seconds := parseFloatGroup(m[6])

	totalMonths := years*12 + months
	nanos := hours*int64(time.Hour) + minutes*int64(time.Minute) + int64(seconds*float64(time.Second))
	return value.TemporalVal(value.NewDuration(totalMonths, days, nanos)), nil
}

func parseIntGroup(s string) int64 {
	if s == "" {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloatGroup(s string) float64 {
	if s == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func registerTemporalFuncs(r *Registry) {
	must(r.Register(&Func{Name: "date", MinArgs: 0, MaxArgs: 1, Call: fnDate}))
	must(r.Register(&Func{Name: "datetime", MinArgs: 0, MaxArgs: 1, Call: fnDatetime}))
	must(r.Register(&Func{Name: "time", MinArgs: 0, MaxArgs: 1, Call: fnTime}))
	must(r.Register(&Func{Name: "duration", MinArgs: 1, MaxArgs: 1, Call: fnDuration}))
	must(r.Register(&Func{Name: "timestamp", MinArgs: 0, MaxArgs: 0, Call: fnTimestamp}))
}
