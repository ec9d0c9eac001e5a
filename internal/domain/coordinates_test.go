package domain

import (
	"math"
	"testing"
)

func TestDistanceSymmetricAndZero(t *testing.T) {
	points := []GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 19.4326, Lon: -99.1332},
		{Lat: 20.6597, Lon: -103.3496},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: 179.9},
	}

	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab := Distance(a, b)
			ba := Distance(b, a)
			if ab != ba {
				t.Errorf("Distance(%v, %v) = %v but reverse = %v", a, b, ab, ba)
			}
			if a != b && ab <= 0 {
				t.Errorf("Distance(%v, %v) = %v, want > 0", a, b, ab)
			}
		}
	}
}

func TestDistanceAlongEquator(t *testing.T) {
	got := Distance(GeoPoint{Lat: 0, Lon: 0}, GeoPoint{Lat: 0, Lon: 2})
	want := EarthRadiusKm * 2 * math.Pi / 180

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
	if math.Abs(got-222.39) > 0.01 {
		t.Fatalf("distance = %v, want ~222.39", got)
	}
}

func TestDistanceNearAntipodalIsFinite(t *testing.T) {
	pairs := [][2]GeoPoint{
		{{Lat: -88.3, Lon: -179}, {Lat: 88.3, Lon: 1}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: 90, Lon: 0}, {Lat: -90, Lon: 0}},
	}
	half := math.Pi * EarthRadiusKm

	for _, p := range pairs {
		d := Distance(p[0], p[1])
		if math.IsNaN(d) || math.Abs(d-half) > 0.01 {
			t.Errorf("Distance(%v, %v) = %v, want ~%v", p[0], p[1], d, half)
		}
	}

	for lat := -89.9; lat <= 89.9; lat += 0.1 {
		for lon := -180.0; lon < 0; lon += 1 {
			a := GeoPoint{Lat: lat, Lon: lon}
			b := GeoPoint{Lat: -lat, Lon: lon + 180}
			if d := Distance(a, b); math.IsNaN(d) {
				t.Fatalf("Distance(%v, %v) = NaN", a, b)
			}
		}
	}
}

func TestDistancePropagatesNaN(t *testing.T) {
	d := Distance(GeoPoint{Lat: math.NaN(), Lon: 0}, GeoPoint{Lat: 1, Lon: 1})
	if !math.IsNaN(d) {
		t.Fatalf("distance = %v, want NaN", d)
	}
}

func TestGeoPointValid(t *testing.T) {
	cases := []struct {
		p    GeoPoint
		want bool
	}{
		{GeoPoint{Lat: 0, Lon: 0}, true},
		{GeoPoint{Lat: 90, Lon: 180}, true},
		{GeoPoint{Lat: -90, Lon: -180}, true},
		{GeoPoint{Lat: 90.01, Lon: 0}, false},
		{GeoPoint{Lat: 0, Lon: -180.5}, false},
		{GeoPoint{Lat: math.NaN(), Lon: 0}, false},
	}

	for _, c := range cases {
		if got := c.p.Valid(); got != c.want {
			t.Errorf("%v.Valid() = %v, want %v", c.p, got, c.want)
		}
	}
}
