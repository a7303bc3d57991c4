package stats

// Band classifies a usage percentage for heatmap coloring.
type Band int

const (
	BandLow Band = iota
	BandLowMedium
	BandMedium
	BandHigh
	BandPeak
)

// BandFor returns the band a usage percentage falls into.
func BandFor(usage int) Band {
	switch {
	case usage >= 80:
		return BandPeak
	case usage >= 60:
		return BandHigh
	case usage >= 40:
		return BandMedium
	case usage >= 20:
		return BandLowMedium
	default:
		return BandLow
	}
}

// Bands returns every band from lowest to highest.
func Bands() []Band {
	return []Band{BandLow, BandLowMedium, BandMedium, BandHigh, BandPeak}
}

func (b Band) String() string {
	switch b {
	case BandPeak:
		return "Peak"
	case BandHigh:
		return "High"
	case BandMedium:
		return "Medium"
	case BandLowMedium:
		return "Low-Medium"
	default:
		return "Low"
	}
}

// Hex returns the band's display color.
func (b Band) Hex() string {
	switch b {
	case BandPeak:
		return "#d73027"
	case BandHigh:
		return "#fc8d59"
	case BandMedium:
		return "#fee08b"
	case BandLowMedium:
		return "#e0f3db"
	default:
		return "#f7f7f7"
	}
}

// DarkText reports whether text drawn on the band should be dark.
func (b Band) DarkText() bool {
	return b < BandHigh
}

func (b Band) ansiBackground() string {
	switch b {
	case BandPeak:
		return "\x1b[48;5;160m"
	case BandHigh:
		return "\x1b[48;5;209m"
	case BandMedium:
		return "\x1b[48;5;222m"
	case BandLowMedium:
		return "\x1b[48;5;194m"
	default:
		return "\x1b[48;5;255m"
	}
}
