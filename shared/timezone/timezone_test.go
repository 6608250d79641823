package timezone_test

import (
	"backoffice/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	if timezone.Now().IsZero() {
		t.Error("Now() returned zero time")
	}

	if timezone.GetLocation() == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestDateUsesLocalComponents(t *testing.T) {
	original := timezone.GetLocation()
	defer timezone.SetLocation(original)

	jakarta := time.FixedZone("WIB", 7*60*60)
	timezone.SetLocation(jakarta)

	d := timezone.Date(2025, time.June, 1)

	if d.Location() != jakarta {
		t.Errorf("expected location %s, got %s", jakarta, d.Location())
	}

	if got := d.Format(time.DateOnly); got != "2025-06-01" {
		t.Errorf("expected 2025-06-01, got %s", got)
	}

	// The same instant is still May 31 in UTC.
	if got := d.UTC().Format(time.DateOnly); got != "2025-05-31" {
		t.Errorf("expected UTC date 2025-05-31, got %s", got)
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("expected midnight, got %s", today)
	}
}

func TestTimezoneFormatAndParse(t *testing.T) {
	original := timezone.GetLocation()
	defer timezone.SetLocation(original)

	timezone.SetLocation(time.UTC)

	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if formatted := timezone.Format(testTime, "2006-01-02 15:04"); formatted != "2024-01-01 12:00" {
		t.Errorf("unexpected Format() result %s", formatted)
	}

	parsed, err := timezone.Parse(time.DateOnly, "2024-01-01")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if !parsed.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected Parse() result %s", parsed)
	}
}
