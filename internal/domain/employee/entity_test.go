package employee

import (
	"testing"
	"time"
)

func TestYearsOfService_FullYears(t *testing.T) {
	e := Employee{HireDate: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)}

	if got := e.YearsOfService(2025, 6); got != 5 {
		t.Errorf("Expected 5 years as of 2025-06, got %d", got)
	}
}

func TestYearsOfService_AnniversaryNotYetReached(t *testing.T) {
	e := Employee{HireDate: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)}

	// Period ends 2025-05-31, before the June 15 anniversary.
	if got := e.YearsOfService(2025, 5); got != 4 {
		t.Errorf("Expected 4 years as of 2025-05, got %d", got)
	}
}

func TestYearsOfService_HiredAfterPeriod(t *testing.T) {
	e := Employee{HireDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	if got := e.YearsOfService(2025, 6); got != 0 {
		t.Errorf("Expected 0 years before hire, got %d", got)
	}
}

func TestYearsOfService_HiredMidPeriod(t *testing.T) {
	e := Employee{HireDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)}

	if got := e.YearsOfService(2025, 6); got != 0 {
		t.Errorf("Expected 0 years in the hire month, got %d", got)
	}
}
