package navbits

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gnsskit/navpack"
)

func TestImportText(t *testing.T) {
	t.Parallel()

	b := New()
	if err := b.ImportText("32 0xABCD1234"); err != nil {
		t.Fatalf("ImportText: %v", err)
	}

	if b.Len() != 32 {
		t.Fatalf("Len = %d, want 32", b.Len())
	}

	got, err := b.Uint64(0, 32)
	if err != nil {
		t.Fatalf("Uint64: %v", err)
	}

	if got != 0xABCD1234 {
		t.Fatalf("pattern = %#08x, want 0xabcd1234", got)
	}
}

func TestImportTextPartialFinalWord(t *testing.T) {
	t.Parallel()

	// 33 bits: the second word contributes only its top bit; the rest is
	// padding and must be discarded.
	b := New()
	if err := b.ImportText("33 0xFFFFFFFF 0x80000001"); err != nil {
		t.Fatalf("ImportText: %v", err)
	}

	if b.Len() != 33 {
		t.Fatalf("Len = %d, want 33", b.Len())
	}

	bit, err := b.UnpackBool(32)
	if err != nil {
		t.Fatalf("UnpackBool: %v", err)
	}

	if !bit {
		t.Fatal("bit 32 must be set")
	}

	if _, err := b.Uint64(33, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatal("padding bits must not be readable")
	}
}

func TestImportTextSeparators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
	}{
		{"commas", "64,0xDEADBEEF,0xCAFEF00D"},
		{"tabs", "64\t0xDEADBEEF\t0xCAFEF00D"},
		{"mixed", "64, \t0xDEADBEEF ,0xCAFEF00D"},
		{"newlines", "64 0xDEADBEEF\n0xCAFEF00D"},
		{"uppercase prefix", "64 0XDEADBEEF 0XCAFEF00D"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := New()
			if err := b.ImportText(tc.text); err != nil {
				t.Fatalf("ImportText: %v", err)
			}

			got, err := b.Uint64(32, 32)
			if err != nil {
				t.Fatalf("Uint64: %v", err)
			}

			if got != 0xCAFEF00D {
				t.Fatalf("second word = %#08x, want 0xcafef00d", got)
			}
		})
	}
}

func TestImportTextMalformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrMalformedInput},
		{"blank", " \t, ", ErrMalformedInput},
		{"non-numeric count", "abc 0x00000000", ErrMalformedInput},
		{"zero count", "0 0x00000000", ErrMalformedInput},
		{"negative count", "-8 0x00000000", ErrMalformedInput},
		{"missing words", "64 0xFFFFFFFF", ErrMalformedInput},
		{"no prefix", "32 ABCD1234", ErrMalformedInput},
		{"bad hex", "32 0xZZZZZZZZ", ErrMalformedInput},
		{"word too wide", "32 0x1FFFFFFFF", ErrMalformedInput},
		{"beyond capacity", "1024 0x00000000", ErrCapacity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := New()
			if err := b.ImportText(tc.text); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestImportTextFailureLeavesContent(t *testing.T) {
	t.Parallel()

	b := New()
	if err := b.ImportText("16 0x12340000"); err != nil {
		t.Fatalf("ImportText: %v", err)
	}

	if err := b.ImportText("32 0xBAD"); err == nil {
		t.Fatal("short hex word parsed, want failure")
	}

	if b.Len() != 16 {
		t.Fatalf("failed import changed Len to %d, want 16", b.Len())
	}
}

func TestExportImportInverse(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) *Buffer {
		t.Helper()

		b := New()
		steps := []error{
			b.AppendUnsigned(1023, 10, 1),
			b.AppendSigned(-12345, 20, 1),
			b.AppendSignedScaled(0.75, 16, -8),
			b.AppendString("GPS", 3),
		}

		for _, err := range steps {
			if err != nil {
				t.Fatalf("assembling buffer: %v", err)
			}
		}

		return b
	}

	cases := []struct {
		name         string
		wordsPerLine int
		delimiter    string
	}{
		{"plain", 5, ""},
		{"csv", 5, ","},
		{"narrow lines", 1, ""},
		{"wide lines", 100, ","},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := build(t)

			var sb strings.Builder
			if err := src.ExportHexWords(&sb, tc.wordsPerLine, tc.delimiter, 32); err != nil {
				t.Fatalf("ExportHexWords: %v", err)
			}

			dst := New()
			if err := dst.ImportText(sb.String()); err != nil {
				t.Fatalf("ImportText(%q): %v", sb.String(), err)
			}

			if dst.Len() != src.Len() {
				t.Fatalf("Len = %d, want %d", dst.Len(), src.Len())
			}

			if !dst.MatchBits(src, 0, -1) {
				t.Fatalf("bit pattern changed across export/import: %q", sb.String())
			}
		})
	}
}

func TestExportHexWordsFormat(t *testing.T) {
	t.Parallel()

	b := New()
	if err := b.AppendUnsigned(0xABCD1234, 32, 1); err != nil {
		t.Fatalf("AppendUnsigned: %v", err)
	}

	if err := b.AppendUnsigned(0xF, 4, 1); err != nil {
		t.Fatalf("AppendUnsigned: %v", err)
	}

	var sb strings.Builder
	if err := b.ExportHexWords(&sb, 5, ",", 32); err != nil {
		t.Fatalf("ExportHexWords: %v", err)
	}

	// Final partial word is left-justified with zero padding.
	want := "36, 0xABCD1234, 0xF0000000"
	if sb.String() != want {
		t.Fatalf("export = %q, want %q", sb.String(), want)
	}
}

func TestExportHexWordsBadLayout(t *testing.T) {
	t.Parallel()

	b := New()

	var sb strings.Builder
	if err := b.ExportHexWords(&sb, 0, "", 32); !errors.Is(err, ErrRange) {
		t.Fatalf("err = %v, want ErrRange", err)
	}

	if err := b.ExportHexWords(&sb, 5, "", 33); !errors.Is(err, ErrRange) {
		t.Fatalf("err = %v, want ErrRange", err)
	}
}

func TestImportTextKeepsMetadata(t *testing.T) {
	t.Parallel()

	sat := navpack.SatelliteID{System: navpack.SysBeiDou, PRN: 30}
	obs := navpack.ObservationID{Band: navpack.BandB1, Code: navpack.CodeB1I}
	at := time.Date(2023, 11, 9, 4, 15, 0, 0, time.UTC)

	b := NewWithMetadata(sat, obs, navpack.NavBeiDouD1, "rover", at)
	if err := b.ImportText("16 0x5A5A0000"); err != nil {
		t.Fatalf("ImportText: %v", err)
	}

	if b.SatelliteID() != sat || b.SourceLabel() != "rover" {
		t.Fatal("import must not touch metadata")
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	sat := navpack.SatelliteID{System: navpack.SysGPS, PRN: 13}
	obs := navpack.ObservationID{Band: navpack.BandL1, Code: navpack.CodeCA}
	at := time.Date(2020, 4, 12, 6, 0, 0, 0, time.UTC)

	b := NewWithMetadata(sat, obs, navpack.NavGPSLNAV, "station7", at)
	if err := b.ImportText("40 0xABCD1234 0x5F000000"); err != nil {
		t.Fatalf("ImportText: %v", err)
	}

	var sb strings.Builder
	b.Dump(&sb)

	out := sb.String()
	for _, want := range []string{
		"SatID: G13",
		"Carrier: L1",
		"Code: C/A",
		"NavType: GPS_LNAV",
		"RxID: station7",
		"Number of bits: 40",
		"2020-04-12 06:00:00.000",
		"0xABCD1234",
		"0x5F000000",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}
