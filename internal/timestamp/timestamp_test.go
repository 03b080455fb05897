package timestamp

import (
	"math"
	"testing"
)

func TestClock(t *testing.T) {
	cases := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00"},
		{3661.25, "01:01:01"},
		{59.999, "00:00:59"},
		{3600, "01:00:00"},
		{360000, "100:00:00"},
	}
	for _, tc := range cases {
		if got := Clock(tc.seconds); got != tc.expected {
			t.Errorf("Clock(%v) = %q, want %q", tc.seconds, got, tc.expected)
		}
	}
}

func TestSRT(t *testing.T) {
	cases := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{3661.25, "01:01:01,250"},
		{3600.001, "01:00:00,000"},
	}
	for _, tc := range cases {
		if got := SRT(tc.seconds); got != tc.expected {
			t.Errorf("SRT(%v) = %q, want %q", tc.seconds, got, tc.expected)
		}
	}
}

func TestVTT(t *testing.T) {
	if got := VTT(3661.25); got != "01:01:01.250" {
		t.Fatalf("VTT(3661.25) = %q, want 01:01:01.250", got)
	}
	if got := VTT(0.75); got != "00:00:00.750" {
		t.Fatalf("VTT(0.75) = %q, want 00:00:00.750", got)
	}
}

func TestVariantsShareDecomposition(t *testing.T) {
	for _, seconds := range []float64{0, 0.4, 12.345, 61.01, 3599.999, 7322.5} {
		srt := SRT(seconds)
		vtt := VTT(seconds)
		if len(srt) != len(vtt) {
			t.Fatalf("length mismatch for %v: %q vs %q", seconds, srt, vtt)
		}
		normalized := srt[:len(srt)-4] + "." + srt[len(srt)-3:]
		if normalized != vtt {
			t.Errorf("SRT and VTT differ beyond separator for %v: %q vs %q", seconds, srt, vtt)
		}
		if Clock(seconds) != srt[:len(srt)-4] {
			t.Errorf("Clock and SRT prefix differ for %v", seconds)
		}
	}
}

func TestParseSRTRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 1.5, 3661.25, 59.5} {
		parsed, err := ParseSRT(SRT(seconds))
		if err != nil {
			t.Fatalf("ParseSRT failed for %v: %v", seconds, err)
		}
		if math.Abs(parsed-seconds) > 0.0005 {
			t.Errorf("round trip drift for %v: got %v", seconds, parsed)
		}
	}
}

func TestParseSRTAcceptsVTTSeparator(t *testing.T) {
	parsed, err := ParseSRT("01:01:01.250")
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if parsed != 3661.25 {
		t.Fatalf("expected 3661.25, got %v", parsed)
	}
}

func TestParseSRTRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "1:2", "aa:bb:cc,ddd", "00:00:01"} {
		if _, err := ParseSRT(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
