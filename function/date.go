package function

import (
	"strings"
	"time"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
	"github.com/gordthompson/jackcess-go/value"
)

func registerDate(r *Registry) {
	r.Register("Now", 0, 0, nowFunc)
	r.Register("Date", 0, 0, dateFunc)
	r.Register("Time", 0, 0, timeFunc)
	r.Register("DateValue", 1, 1, dateValueFunc)
	r.Register("TimeValue", 1, 1, timeValueFunc)
	r.Register("DateSerial", 3, 3, dateSerialFunc)
	r.Register("TimeSerial", 3, 3, timeSerialFunc)
	r.Register("Year", 1, 1, datePartFunc(func(t time.Time) int32 { return int32(t.Year()) }))
	r.Register("Month", 1, 1, datePartFunc(func(t time.Time) int32 { return int32(t.Month()) }))
	r.Register("Day", 1, 1, datePartFunc(func(t time.Time) int32 { return int32(t.Day()) }))
	r.Register("Hour", 1, 1, datePartFunc(func(t time.Time) int32 { return int32(t.Hour()) }))
	r.Register("Minute", 1, 1, datePartFunc(func(t time.Time) int32 { return int32(t.Minute()) }))
	r.Register("Second", 1, 1, datePartFunc(func(t time.Time) int32 { return int32(t.Second()) }))
	r.Register("Weekday", 1, 2, weekdayFunc)
	r.Register("DatePart", 2, 4, datePartCallFunc)
	r.Register("DateAdd", 3, 3, dateAddFunc)
	r.Register("DateDiff", 3, 5, dateDiffFunc)
}

func nowFunc(ctx *Context, args []value.Value) (value.Value, error) {
	return value.DateTime(temporal.FromTime(ctx.now()), temporal.DefaultConfig()), nil
}

func dateFunc(ctx *Context, args []value.Value) (value.Value, error) {
	t := ctx.now()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return value.Date(temporal.FromTime(d), temporal.DefaultConfig()), nil
}

func timeFunc(ctx *Context, args []value.Value) (value.Value, error) {
	full := temporal.FromTime(ctx.now())
	frac := full - temporal.DateDouble(int64(full))
	return value.Time(frac, temporal.DefaultConfig()), nil
}

func asDateDouble(v value.Value) (temporal.DateDouble, error) {
	if v.IsTemporal() {
		return v.DateDoubleValue(), nil
	}
	if v.Kind() == value.KindString {
		t, err := parseDateString(strings.TrimSpace(v.StringValue()))
		if err != nil {
			return 0, jerrors.NewArithmetic("date", "cannot parse date string")
		}
		return temporal.FromTime(t), nil
	}
	f, err := v.AsDouble()
	if err != nil {
		return 0, err
	}
	return temporal.DateDouble(f), nil
}

func dateValueFunc(ctx *Context, args []value.Value) (value.Value, error) {
	dd, err := asDateDouble(args[0])
	if err != nil {
		return value.Value{}, err
	}
	whole := temporal.DateDouble(int64(dd))
	return value.Date(whole, temporal.DefaultConfig()), nil
}

func timeValueFunc(ctx *Context, args []value.Value) (value.Value, error) {
	dd, err := asDateDouble(args[0])
	if err != nil {
		return value.Value{}, err
	}
	frac := dd - temporal.DateDouble(int64(dd))
	return value.Time(frac, temporal.DefaultConfig()), nil
}

func dateSerialFunc(ctx *Context, args []value.Value) (value.Value, error) {
	y, err := args[0].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	m, err := args[1].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	d, err := args[2].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	t := time.Date(int(y), time.Month(1), 1, 0, 0, 0, 0, time.UTC).AddDate(0, int(m)-1, int(d)-1)
	return value.Date(temporal.FromTime(t), temporal.DefaultConfig()), nil
}

func timeSerialFunc(ctx *Context, args []value.Value) (value.Value, error) {
	h, err := args[0].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	m, err := args[1].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	s, err := args[2].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	total := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	return value.Time(temporal.DateDouble(total.Hours()/24), temporal.DefaultConfig()), nil
}

func datePartFunc(extract func(time.Time) int32) Func {
	return func(ctx *Context, args []value.Value) (value.Value, error) {
		dd, err := asDateDouble(args[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.Long(extract(dd.ToTime())), nil
	}
}

func weekdayFunc(ctx *Context, args []value.Value) (value.Value, error) {
	dd, err := asDateDouble(args[0])
	if err != nil {
		return value.Value{}, err
	}
	firstDay := time.Sunday
	if len(args) == 2 {
		n, err := args[1].AsLong()
		if err != nil {
			return value.Value{}, err
		}
		firstDay = time.Weekday((int(n) - 1) % 7)
	}
	wd := int(dd.ToTime().Weekday())
	idx := (wd-int(firstDay)+7)%7 + 1
	return value.Long(int32(idx)), nil
}

func datePartCallFunc(ctx *Context, args []value.Value) (value.Value, error) {
	interval := strings.ToLower(args[0].AsString())
	dd, err := asDateDouble(args[1])
	if err != nil {
		return value.Value{}, err
	}
	t := dd.ToTime()
	switch interval {
	case "yyyy":
		return value.Long(int32(t.Year())), nil
	case "q":
		return value.Long(int32((int(t.Month())-1)/3 + 1)), nil
	case "m":
		return value.Long(int32(t.Month())), nil
	case "y", "d":
		return value.Long(int32(t.YearDay())), nil
	case "w":
		return value.Long(int32(t.Weekday()) + 1), nil
	case "ww":
		_, wk := t.ISOWeek()
		return value.Long(int32(wk)), nil
	case "h":
		return value.Long(int32(t.Hour())), nil
	case "n":
		return value.Long(int32(t.Minute())), nil
	case "s":
		return value.Long(int32(t.Second())), nil
	default:
		return value.Value{}, jerrors.NewArgument("DatePart", "unknown interval %q", interval)
	}
}

func dateAddFunc(ctx *Context, args []value.Value) (value.Value, error) {
	interval := strings.ToLower(args[0].AsString())
	n, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	dd, err := asDateDouble(args[2])
	if err != nil {
		return value.Value{}, err
	}
	var out temporal.DateDouble
	switch interval {
	case "yyyy":
		out = temporal.FromTime(dd.ToTime().AddDate(int(n), 0, 0))
	case "m":
		out = temporal.FromTime(dd.ToTime().AddDate(0, int(n), 0))
	case "y", "d":
		out = dd + temporal.DateDouble(n)
	case "ww":
		out = dd + temporal.DateDouble(n*7)
	case "h":
		out = dd + temporal.DateDouble(n/24)
	case "n":
		out = dd + temporal.DateDouble(n/(24*60))
	case "s":
		out = dd + temporal.DateDouble(n/(24*3600))
	default:
		return value.Value{}, jerrors.NewArgument("DateAdd", "unknown interval %q", interval)
	}
	return value.DateTime(out, temporal.DefaultConfig()), nil
}

func dateDiffFunc(ctx *Context, args []value.Value) (value.Value, error) {
	interval := strings.ToLower(args[0].AsString())
	d1, err := asDateDouble(args[1])
	if err != nil {
		return value.Value{}, err
	}
	d2, err := asDateDouble(args[2])
	if err != nil {
		return value.Value{}, err
	}
	delta := float64(d2 - d1)
	switch interval {
	case "yyyy":
		return value.Long(int32(d2.ToTime().Year() - d1.ToTime().Year())), nil
	case "m":
		t1, t2 := d1.ToTime(), d2.ToTime()
		return value.Long(int32((t2.Year()-t1.Year())*12 + int(t2.Month()) - int(t1.Month()))), nil
	case "y", "d":
		return value.Long(int32(delta)), nil
	case "ww":
		return value.Long(int32(delta / 7)), nil
	case "h":
		return value.Long(int32(delta * 24)), nil
	case "n":
		return value.Long(int32(delta * 24 * 60)), nil
	case "s":
		return value.Long(int32(delta * 24 * 3600)), nil
	default:
		return value.Value{}, jerrors.NewArgument("DateDiff", "unknown interval %q", interval)
	}
}
