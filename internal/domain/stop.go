package domain

// A named location on a route: the distributor or a pharmacy.
// Label identifies the stop and must be unique within one planning request.
type Stop struct {
	Label    string
	Location GeoPoint
}

func NewStop(label string, lat, lon float64) Stop {
	return Stop{Label: label, Location: GeoPoint{Lat: lat, Lon: lon}}
}

// A medication and the longest transit it tolerates, in minutes.
type Medication struct {
	Name               string
	MaxDurationMinutes float64
}
