// Package weather fetches current conditions from the Open-Meteo forecast API.
package weather

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the layout of timestamps in forecast responses.
const TimeLayout = "2006-01-02T15:04"

// DisplayLayout renders timestamps day first, as en_GB does.
const DisplayLayout = "02/01/2006 15:04"

// Location is a point to fetch the weather for.
type Location struct {
	Lat      float64 `json:"lat"`
	Long     float64 `json:"long"`
	CityName string  `json:"city_name,omitempty"`
}

func (l Location) String() string {
	if l.CityName != "" {
		return l.CityName
	}
	return "Unknown city"
}

// Weather is the decoded forecast response.
type Weather struct {
	Units   Units   `json:"current_units"`
	Current Current `json:"current"`
}

type Units struct {
	Temperature string `json:"temperature_2m"`
	WindSpeed   string `json:"wind_speed_10m"`
}

type Current struct {
	Time        Time    `json:"time"`
	Temperature float64 `json:"temperature_2m"`
	WindSpeed   float64 `json:"wind_speed_10m"`
}

// Time is a timestamp encoded with TimeLayout.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.Parse(TimeLayout, raw)
	if err != nil {
		return fmt.Errorf("parse forecast time: %w", err)
	}

	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

// FormatTime renders t for display.
func FormatTime(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Temperature renders the temperature with its unit.
func (w *Weather) Temperature() string {
	return fmt.Sprintf("%.1f%s", w.Current.Temperature, strings.TrimSpace(w.Units.Temperature))
}

// WindSpeed renders the wind speed with its unit.
func (w *Weather) WindSpeed() string {
	return fmt.Sprintf("%.1f %s", w.Current.WindSpeed, strings.TrimSpace(w.Units.WindSpeed))
}
