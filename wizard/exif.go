package wizard

import (
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// Coordinates is where a photo was taken, in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label is the location text used when a photo carries its own position.
func (c Coordinates) Label() string {
	return fmt.Sprintf("Near %.3f, %.3f", c.Latitude, c.Longitude)
}

// photoCoordinates reads the GPS position from the image's EXIF block.
// Images without EXIF or without a complete GPS fix report false.
func photoCoordinates(data []byte) (coords Coordinates, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			coords, ok = Coordinates{}, false
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return Coordinates{}, false
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return Coordinates{}, false
	}

	var (
		lat, lon       []exifcommon.Rational
		latRef, lonRef string
	)
	for _, entry := range entries {
		switch entry.TagName {
		case "GPSLatitude":
			lat, _ = entry.Value.([]exifcommon.Rational)
		case "GPSLongitude":
			lon, _ = entry.Value.([]exifcommon.Rational)
		case "GPSLatitudeRef":
			latRef, _ = entry.Value.(string)
		case "GPSLongitudeRef":
			lonRef, _ = entry.Value.(string)
		}
	}

	latDeg, okLat := degrees(lat, latRef, "S")
	lonDeg, okLon := degrees(lon, lonRef, "W")
	if !okLat || !okLon {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: latDeg, Longitude: lonDeg}, true
}

// degrees converts a degrees/minutes/seconds triple to decimal degrees,
// negated when ref names the southern or western hemisphere.
func degrees(dms []exifcommon.Rational, ref, negativeRef string) (float64, bool) {
	if len(dms) != 3 {
		return 0, false
	}
	var parts [3]float64
	for i, r := range dms {
		if r.Denominator == 0 {
			return 0, false
		}
		parts[i] = float64(r.Numerator) / float64(r.Denominator)
	}
	value := parts[0] + parts[1]/60 + parts[2]/3600
	if ref == negativeRef {
		value = -value
	}
	return value, true
}
