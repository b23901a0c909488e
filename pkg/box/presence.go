package box

import (
	"time"
)

// DistanceDetector decides presence from ultrasonic distance samples.
// It takes SampleCount readings and compares the minimum against
// Threshold: a phone intermittently occluding the sensor should not be
// missed, so the presence-favoring aggregate is the closest reading.
type DistanceDetector struct {
	Sampler DistanceSampler

	// SampleCount is clamped to at least 1.
	SampleCount int

	// InterSampleDelay spaces consecutive reads. Sensor settle time,
	// bounded and short (tens of milliseconds).
	InterSampleDelay time.Duration

	// Threshold in centimeters. Present when min distance <= Threshold.
	Threshold float64
}

// Detect reads the configured number of samples and reports presence.
// A read failure aborts the cycle; no retry happens before the next poll.
func (d *DistanceDetector) Detect() (bool, error) {
	if d.Sampler == nil {
		return false, ErrNoSampler
	}
	n := d.SampleCount
	if n < 1 {
		n = 1
	}

	min := 0.0
	for i := 0; i < n; i++ {
		if i > 0 && d.InterSampleDelay > 0 {
			time.Sleep(d.InterSampleDelay)
		}
		v, err := d.Sampler.ReadDistance()
		if err != nil {
			return false, &SensorError{Op: "distance read", Err: err}
		}
		if i == 0 || v < min {
			min = v
		}
	}
	return min <= d.Threshold, nil
}

// ReflectanceDetector decides presence from the grayscale module. Each
// sample averages the three channels; the sample means are averaged
// again and compared against Threshold.
//
// The default comparator assumes readings drop when the phone sits close
// to the sensor. Whether that holds depends on mounting and phone
// surface; set Invert after calibrating if yours reads the other way.
type ReflectanceDetector struct {
	Sampler ReflectanceSampler

	SampleCount      int
	InterSampleDelay time.Duration
	Threshold        float64

	// Invert flips the comparator to mean >= Threshold.
	Invert bool
}

// Detect reads the configured number of samples and reports presence.
func (d *ReflectanceDetector) Detect() (bool, error) {
	if d.Sampler == nil {
		return false, ErrNoSampler
	}
	n := d.SampleCount
	if n < 1 {
		n = 1
	}

	var sum float64
	for i := 0; i < n; i++ {
		if i > 0 && d.InterSampleDelay > 0 {
			time.Sleep(d.InterSampleDelay)
		}
		ch, err := d.Sampler.ReadReflectance()
		if err != nil {
			return false, &SensorError{Op: "reflectance read", Err: err}
		}
		sum += (ch[0] + ch[1] + ch[2]) / 3.0
	}
	mean := sum / float64(n)

	if d.Invert {
		return mean >= d.Threshold, nil
	}
	return mean <= d.Threshold, nil
}
