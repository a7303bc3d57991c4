package stats

import (
	"fmt"
	"io"
)

// AlertLevel ranks how urgently an alert asks for action.
type AlertLevel int

const (
	AlertNormal AlertLevel = iota
	AlertLowUtilization
	AlertHighDemand
)

// Alert is an operational recommendation for the current hour.
type Alert struct {
	Level   AlertLevel
	Type    string
	Message string
	Action  string
}

// AlertFor returns the alert for an hour of the day (0-23).
func AlertFor(hour int) Alert {
	switch {
	case hour >= 18 && hour <= 21:
		return Alert{
			Level:   AlertHighDemand,
			Type:    "High Demand",
			Message: "Prime time active - consider surge pricing",
			Action:  "Enable 20% premium pricing",
		}
	case hour >= 10 && hour <= 14:
		return Alert{
			Level:   AlertLowUtilization,
			Type:    "Low Utilization",
			Message: "Off-peak period - promote discounted access",
			Action:  "Send targeted promotions to Basic members",
		}
	default:
		return Alert{
			Level:   AlertNormal,
			Type:    "Normal Operations",
			Message: "Standard operating conditions",
			Action:  "Monitor for trends",
		}
	}
}

// Hex returns the display color for the alert level.
func (l AlertLevel) Hex() string {
	switch l {
	case AlertHighDemand:
		return BandPeak.Hex()
	case AlertLowUtilization:
		return BandMedium.Hex()
	default:
		return "#1a9850"
	}
}

func writeAlert(w io.Writer, a Alert) error {
	lines := []string{
		"Optimization Alert",
		fmt.Sprintf("%s: %s", a.Type, a.Message),
		fmt.Sprintf("Recommended action: %s", a.Action),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
