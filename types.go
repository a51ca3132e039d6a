package navpack

import (
	"errors"
	"fmt"
)

// SatelliteSystem identifies the GNSS constellation a satellite belongs to.
type SatelliteSystem uint

// Supported constellations.
const (
	SysUnknown SatelliteSystem = iota
	SysGPS
	SysGlonass
	SysGalileo
	SysBeiDou
	SysQZSS
	SysIRNSS
	SysSBAS
)

// Letter returns the single-character RINEX system code.
func (s SatelliteSystem) Letter() byte {
	switch s {
	case SysGPS:
		return 'G'
	case SysGlonass:
		return 'R'
	case SysGalileo:
		return 'E'
	case SysBeiDou:
		return 'C'
	case SysQZSS:
		return 'J'
	case SysIRNSS:
		return 'I'
	case SysSBAS:
		return 'S'
	case SysUnknown:
		return '?'
	}

	return '?'
}

func (s SatelliteSystem) String() string {
	switch s {
	case SysGPS:
		return "GPS"
	case SysGlonass:
		return "GLONASS"
	case SysGalileo:
		return "Galileo"
	case SysBeiDou:
		return "BeiDou"
	case SysQZSS:
		return "QZSS"
	case SysIRNSS:
		return "IRNSS"
	case SysSBAS:
		return "SBAS"
	case SysUnknown:
		return "Unknown"
	}

	return "Unknown"
}

var errUnknownSystem = errors.New("unknown satellite system letter")

// ToSatelliteSystem converts a RINEX system letter to a SatelliteSystem.
func ToSatelliteSystem(letter byte) (SatelliteSystem, error) {
	switch letter {
	case 'G':
		return SysGPS, nil
	case 'R':
		return SysGlonass, nil
	case 'E':
		return SysGalileo, nil
	case 'C':
		return SysBeiDou, nil
	case 'J':
		return SysQZSS, nil
	case 'I':
		return SysIRNSS, nil
	case 'S':
		return SysSBAS, nil
	default:
		return SysUnknown, fmt.Errorf("%q: %w", letter, errUnknownSystem)
	}
}

// SatelliteID identifies a single satellite by constellation and PRN.
// The zero value is the unknown satellite.
type SatelliteID struct {
	System SatelliteSystem
	PRN    int
}

// String renders the RINEX-style identifier, e.g. "G13".
func (id SatelliteID) String() string {
	return fmt.Sprintf("%c%02d", id.System.Letter(), id.PRN)
}

// CarrierBand identifies the carrier frequency band a signal is broadcast on.
type CarrierBand uint

// Carrier bands across the supported constellations.
const (
	BandUnknown CarrierBand = iota
	BandL1
	BandL2
	BandL5
	BandG1
	BandG2
	BandG3
	BandE5a
	BandE5b
	BandE6
	BandB1
	BandB2
	BandB3
)

// carrierDesc maps each band to its conventional description. Built once as a
// literal; consumers share it read-only.
var carrierDesc = map[CarrierBand]string{
	BandUnknown: "Unknown",
	BandL1:      "L1",
	BandL2:      "L2",
	BandL5:      "L5",
	BandG1:      "G1",
	BandG2:      "G2",
	BandG3:      "G3",
	BandE5a:     "E5a",
	BandE5b:     "E5b",
	BandE6:      "E6",
	BandB1:      "B1",
	BandB2:      "B2",
	BandB3:      "B3",
}

func (b CarrierBand) String() string {
	if desc, ok := carrierDesc[b]; ok {
		return desc
	}

	return "Unknown"
}

// TrackingCode identifies the ranging code tracked on a carrier.
type TrackingCode uint

// Tracking codes across the supported constellations.
const (
	CodeUnknown TrackingCode = iota
	CodeCA
	CodeP
	CodeY
	CodeM
	CodeL2CM
	CodeL2CL
	CodeL2CML
	CodeI5
	CodeQ5
	CodeIQ5
	CodeGCA
	CodeGP
	CodeE1B
	CodeE1C
	CodeE5aI
	CodeE5bI
	CodeB1I
	CodeB2I
	CodeB3I
	CodeSCA
)

// trackingDesc maps each code to its conventional description. Built once as
// a literal; consumers share it read-only.
var trackingDesc = map[TrackingCode]string{
	CodeUnknown: "Unknown",
	CodeCA:      "C/A",
	CodeP:       "P",
	CodeY:       "Y",
	CodeM:       "M",
	CodeL2CM:    "L2C(M)",
	CodeL2CL:    "L2C(L)",
	CodeL2CML:   "L2C(M+L)",
	CodeI5:      "I5",
	CodeQ5:      "Q5",
	CodeIQ5:     "I+Q5",
	CodeGCA:     "Glonass C/A",
	CodeGP:      "Glonass P",
	CodeE1B:     "E1-B",
	CodeE1C:     "E1-C",
	CodeE5aI:    "E5a-I",
	CodeE5bI:    "E5b-I",
	CodeB1I:     "B1-I",
	CodeB2I:     "B2-I",
	CodeB3I:     "B3-I",
	CodeSCA:     "SBAS C/A",
}

func (c TrackingCode) String() string {
	if desc, ok := trackingDesc[c]; ok {
		return desc
	}

	return "Unknown"
}

// ObservationID describes which signal a navigation message was collected
// from: the carrier band plus the tracking code. Comparable; never
// interpreted by the codec.
type ObservationID struct {
	Band CarrierBand
	Code TrackingCode
}

func (o ObservationID) String() string {
	return o.Band.String() + " " + o.Code.String()
}

// NavType identifies a navigation message format.
type NavType uint

// Navigation message formats.
const (
	NavUnknown NavType = iota
	NavGPSLNAV
	NavGPSCNAVL2
	NavGPSCNAVL5
	NavGPSCNAV2
	NavGPSMNAV
	NavBeiDouD1
	NavBeiDouD2
	NavGloCivilF
	NavGloCivilC
	NavGalFNAV
	NavGalINAV
	NavIRNSSSPS
)

// navTypeDesc maps each format to its conventional name. Built once as a
// literal; consumers share it read-only.
var navTypeDesc = map[NavType]string{
	NavUnknown:   "Unknown",
	NavGPSLNAV:   "GPS_LNAV",
	NavGPSCNAVL2: "GPS_CNAV_L2",
	NavGPSCNAVL5: "GPS_CNAV_L5",
	NavGPSCNAV2:  "GPS_CNAV2",
	NavGPSMNAV:   "GPS_MNAV",
	NavBeiDouD1:  "BeiDou_D1",
	NavBeiDouD2:  "BeiDou_D2",
	NavGloCivilF: "GloCivilF",
	NavGloCivilC: "GloCivilC",
	NavGalFNAV:   "GalFNAV",
	NavGalINAV:   "GalINAV",
	NavIRNSSSPS:  "IRNSS_SPS",
}

func (n NavType) String() string {
	if desc, ok := navTypeDesc[n]; ok {
		return desc
	}

	return "Unknown"
}

// ParityStatus reports the outcome of an external parity or CRC check over a
// message. The codec stores it; it never computes it.
type ParityStatus uint

// Parity check outcomes.
const (
	ParityUnknown ParityStatus = iota
	ParityPassed
	ParityFailed
)

func (p ParityStatus) String() string {
	switch p {
	case ParityPassed:
		return "passed"
	case ParityFailed:
		return "failed"
	case ParityUnknown:
		return "unknown"
	}

	return "unknown"
}
