package util

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConvertToJSONString renders data as indented JSON
func ConvertToJSONString(data interface{}) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not marshal interface to json - %w", err)
	}
	return string(b), nil
}

// ScreenshotFileName returns a unique png file name for a device screenshot
func ScreenshotFileName(deviceID string, now time.Time) string {
	return fmt.Sprintf("screenshot_%s_%s_%s.png", sanitize(deviceID), now.Format("20060102_150405"), uuid.New().String()[:8])
}

func sanitize(value string) string {
	out := []rune(value)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', ' ', '.':
			out[i] = '_'
		}
	}
	return string(out)
}
