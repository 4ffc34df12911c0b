package temporal

import (
	"testing"
	"time"
)

func TestFromTimeToTimeRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.January, 1, 12, 30, 45, 0, time.UTC),
		time.Date(1800, time.June, 15, 6, 0, 0, 0, time.UTC),
	}
	for _, want := range cases {
		d := FromTime(want)
		got := d.ToTime()
		if !got.Equal(want) {
			t.Errorf("FromTime(%v).ToTime() = %v, want %v", want, got, want)
		}
	}
}

func TestEpochIsZero(t *testing.T) {
	d := FromTime(epoch)
	if d != 0 {
		t.Errorf("FromTime(epoch) = %v, want 0", float64(d))
	}
}

func TestFormatDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	d := FromTime(time.Date(2024, time.March, 5, 9, 5, 3, 0, time.UTC))

	if got, want := d.Format(cfg, KindDate), "3/5/2024"; got != want {
		t.Errorf("Format(KindDate) = %q, want %q", got, want)
	}
	if got, want := d.Format(cfg, KindTime), "9:05:03 AM"; got != want {
		t.Errorf("Format(KindTime) = %q, want %q", got, want)
	}
	if got, want := d.Format24(cfg, KindTime), "09:05:03"; got != want {
		t.Errorf("Format24(KindTime) = %q, want %q", got, want)
	}
}
