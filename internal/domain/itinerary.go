package domain

import "math"

// Itinerary is an ordered sequence of stops starting at the distributor.
//
// It is immutable: constructors copy their input and operators such as Swap and
// Splice return a new Itinerary. Distance and time are always derived from the
// stop sequence and never cached.
type Itinerary struct {
	stops []Stop
}

func NewItinerary(stops []Stop) Itinerary {
	return Itinerary{stops: append([]Stop(nil), stops...)}
}

// Stops returns a copy of the stop sequence.
func (it Itinerary) Stops() []Stop { return append([]Stop(nil), it.stops...) }

func (it Itinerary) Len() int { return len(it.stops) }

func (it Itinerary) At(i int) Stop { return it.stops[i] }

func (it Itinerary) Labels() []string {
	labels := make([]string, len(it.stops))
	for i, s := range it.stops {
		labels[i] = s.Label
	}
	return labels
}

// TotalDistance sums the great-circle distance of consecutive legs, in kilometers.
func (it Itinerary) TotalDistance() float64 {
	total := 0.0
	for i := 1; i < len(it.stops); i++ {
		total += Distance(it.stops[i-1].Location, it.stops[i].Location)
	}
	return total
}

// TotalTime converts the total distance into minutes at the given average speed.
// A non-positive speed yields +Inf.
func (it Itinerary) TotalTime(averageSpeedKmh float64) float64 {
	if averageSpeedKmh <= 0 {
		return math.Inf(1)
	}
	return it.TotalDistance() / averageSpeedKmh * 60
}

func (it Itinerary) IsFeasible(med Medication, averageSpeedKmh float64) bool {
	return it.TotalTime(averageSpeedKmh) <= med.MaxDurationMinutes
}

// Swap returns a copy with the stops at i and j exchanged.
func (it Itinerary) Swap(i, j int) Itinerary {
	out := it.Stops()
	out[i], out[j] = out[j], out[i]
	return Itinerary{stops: out}
}

// Splice returns a new Itinerary made of the receiver's stops before cut followed
// by donor's stops from cut onward. The result may repeat or omit stops; callers
// are expected to repair it.
func (it Itinerary) Splice(cut int, donor Itinerary) Itinerary {
	if cut < 0 {
		cut = 0
	}
	if cut > len(it.stops) {
		cut = len(it.stops)
	}

	out := make([]Stop, 0, len(it.stops))
	out = append(out, it.stops[:cut]...)
	if cut < len(donor.stops) {
		out = append(out, donor.stops[cut:]...)
	}
	return Itinerary{stops: out}
}
