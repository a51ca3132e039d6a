package navbits

import (
	"testing"
	"time"

	"github.com/gnsskit/navpack"
)

func bufferWithBits(t *testing.T, value uint64, numBits int) *Buffer {
	t.Helper()

	b := New()
	if err := b.AppendUnsigned(value, numBits, 1); err != nil {
		t.Fatalf("AppendUnsigned: %v", err)
	}

	return b
}

func TestLessLexicographic(t *testing.T) {
	t.Parallel()

	low := bufferWithBits(t, 0x0F, 8)
	high := bufferWithBits(t, 0xF0, 8)

	if !low.Less(high) {
		t.Fatal("0x0F should sort before 0xF0")
	}

	if high.Less(low) {
		t.Fatal("0xF0 should not sort before 0x0F")
	}

	if low.Less(low.Clone()) {
		t.Fatal("equal patterns: neither is less")
	}
}

func TestLessShorterFirst(t *testing.T) {
	t.Parallel()

	short := bufferWithBits(t, 0xF, 4)
	long := bufferWithBits(t, 0x00, 8)

	if !short.Less(long) {
		t.Fatal("shorter buffer sorts first regardless of content")
	}

	if long.Less(short) {
		t.Fatal("longer buffer never sorts before a shorter one")
	}
}

func TestLessStrictWeakOrder(t *testing.T) {
	t.Parallel()

	patterns := []struct {
		value   uint64
		numBits int
	}{
		{0x00, 8}, {0x01, 8}, {0x80, 8}, {0xFF, 8}, {0x3, 4}, {0x0, 12},
	}

	buffers := make([]*Buffer, 0, len(patterns))
	for _, p := range patterns {
		buffers = append(buffers, bufferWithBits(t, p.value, p.numBits))
	}

	for i, a := range buffers {
		if a.Less(a) {
			t.Fatalf("pattern %d: irreflexivity violated", i)
		}

		for j, b := range buffers {
			if a.Less(b) && b.Less(a) {
				t.Fatalf("patterns %d/%d: asymmetry violated", i, j)
			}
		}
	}
}

func TestMatchMetadataTimeTolerance(t *testing.T) {
	t.Parallel()

	base := time.Date(2020, 4, 12, 6, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		shift time.Duration
		want  bool
	}{
		{"identical", 0, true},
		{"within tolerance", 900 * time.Microsecond, true},
		{"beyond tolerance", 1100 * time.Microsecond, false},
		{"negative within", -900 * time.Microsecond, true},
		{"negative beyond", -1100 * time.Microsecond, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := New()
			a.SetTransmitTime(base)

			b := New()
			b.SetTransmitTime(base.Add(tc.shift))

			if got := a.MatchMetadata(b, MatchTime); got != tc.want {
				t.Fatalf("MatchMetadata = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchMetadataFlags(t *testing.T) {
	t.Parallel()

	sat := navpack.SatelliteID{System: navpack.SysGPS, PRN: 13}
	obs := navpack.ObservationID{Band: navpack.BandL1, Code: navpack.CodeCA}
	at := time.Date(2020, 4, 12, 6, 0, 0, 0, time.UTC)

	a := NewWithMetadata(sat, obs, navpack.NavGPSLNAV, "rx1", at)
	b := NewWithMetadata(sat, obs, navpack.NavGPSLNAV, "rx2", at)

	if a.MatchMetadata(b, MatchAll) {
		t.Fatal("differing source labels must fail a full match")
	}

	if !a.MatchMetadata(b, MatchAll&^MatchSource) {
		t.Fatal("all fields but source agree")
	}

	b.SetSatelliteID(navpack.SatelliteID{System: navpack.SysGPS, PRN: 14})
	if a.MatchMetadata(b, MatchSatellite) {
		t.Fatal("differing satellites must fail a satellite match")
	}
}

func TestMatchMetadataScenario(t *testing.T) {
	t.Parallel()

	// Identical ids and content, transmit times 0.5 ms apart: matches under
	// time+satellite+observation flags.
	sat := navpack.SatelliteID{System: navpack.SysGPS, PRN: 5}
	obs := navpack.ObservationID{Band: navpack.BandL2, Code: navpack.CodeL2CM}
	at := time.Date(2021, 1, 3, 12, 30, 0, 0, time.UTC)

	a := NewWithMetadata(sat, obs, navpack.NavGPSCNAVL2, "", at)
	b := NewWithMetadata(sat, obs, navpack.NavGPSCNAVL2, "", at.Add(500*time.Microsecond))

	for _, buf := range []*Buffer{a, b} {
		if err := buf.AppendUnsigned(0xDEAD, 16, 1); err != nil {
			t.Fatalf("AppendUnsigned: %v", err)
		}
	}

	if !a.Match(b, 0, -1, MatchTime|MatchSatellite|MatchObservation) {
		t.Fatal("buffers 0.5 ms apart with equal ids and bits must match")
	}
}

func TestMatchBits(t *testing.T) {
	t.Parallel()

	a := bufferWithBits(t, 0b10110110, 8)
	b := bufferWithBits(t, 0b10110111, 8) // differs at bit 7

	if a.MatchBits(b, 0, -1) {
		t.Fatal("full range: patterns differ")
	}

	if !a.MatchBits(b, 0, 6) {
		t.Fatal("bits 0-6 agree")
	}

	// Out-of-range bounds clamp into the used region.
	if a.MatchBits(b, -5, 100) {
		t.Fatal("clamped full range still covers the differing bit")
	}

	if !a.MatchBits(b, -5, 6) {
		t.Fatal("clamped start, agreeing range")
	}
}

func TestMatchBitsLengthMismatch(t *testing.T) {
	t.Parallel()

	a := bufferWithBits(t, 0xF, 4)
	b := bufferWithBits(t, 0xF, 5)

	if a.MatchBits(b, 0, -1) {
		t.Fatal("unequal used lengths never match")
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	sat := navpack.SatelliteID{System: navpack.SysGalileo, PRN: 2}
	obs := navpack.ObservationID{Band: navpack.BandE5a, Code: navpack.CodeE5aI}
	at := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)

	a := NewWithMetadata(sat, obs, navpack.NavGalFNAV, "station", at)
	if err := a.AppendUnsigned(0xABC, 12, 1); err != nil {
		t.Fatalf("AppendUnsigned: %v", err)
	}

	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone must equal the original")
	}

	if err := b.PatchUnsigned(0xABD, 0, 12, 1); err != nil {
		t.Fatalf("PatchUnsigned: %v", err)
	}

	if a.Equal(b) {
		t.Fatal("differing bit patterns are not equal")
	}

	c := a.Clone()
	c.SetNavType(navpack.NavGalINAV)

	if a.Equal(c) {
		t.Fatal("differing nav types are not equal")
	}
}
