package box

import (
	"errors"
	"testing"
)

func distanceSequence(samples ...float64) DistanceSampler {
	i := 0
	return DistanceSamplerFunc(func() (float64, error) {
		v := samples[i%len(samples)]
		i++
		return v, nil
	})
}

func TestDistanceDetector_MinBelowThreshold(t *testing.T) {
	d := &DistanceDetector{
		Sampler:     distanceSequence(12, 8, 15),
		SampleCount: 3,
		Threshold:   10,
	}

	present, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !present {
		t.Error("min=8 with threshold=10: got absent, want present")
	}
}

func TestDistanceDetector_AllAboveThreshold(t *testing.T) {
	d := &DistanceDetector{
		Sampler:     distanceSequence(12, 14, 15),
		SampleCount: 3,
		Threshold:   10,
	}

	present, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if present {
		t.Error("min=12 with threshold=10: got present, want absent")
	}
}

func TestDistanceDetector_ClampsSampleCount(t *testing.T) {
	calls := 0
	d := &DistanceDetector{
		Sampler: DistanceSamplerFunc(func() (float64, error) {
			calls++
			return 5, nil
		}),
		SampleCount: 0,
		Threshold:   10,
	}

	if _, err := d.Detect(); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if calls != 1 {
		t.Errorf("sample count 0: got %d reads, want 1", calls)
	}
}

func TestDistanceDetector_ReadErrorPropagates(t *testing.T) {
	readErr := errors.New("echo timeout")
	d := &DistanceDetector{
		Sampler: DistanceSamplerFunc(func() (float64, error) {
			return 0, readErr
		}),
		SampleCount: 3,
		Threshold:   10,
	}

	present, err := d.Detect()
	if present {
		t.Error("a failed read must not report present")
	}
	var sensorErr *SensorError
	if !errors.As(err, &sensorErr) {
		t.Fatalf("got %T, want *SensorError", err)
	}
	if !errors.Is(err, readErr) {
		t.Error("SensorError must wrap the underlying read error")
	}
}

func TestDistanceDetector_NoSampler(t *testing.T) {
	d := &DistanceDetector{SampleCount: 1, Threshold: 10}
	if _, err := d.Detect(); !errors.Is(err, ErrNoSampler) {
		t.Errorf("got %v, want ErrNoSampler", err)
	}
}

func TestReflectanceDetector_MeanOfChannelMeans(t *testing.T) {
	samples := [][3]float64{
		{600, 660, 630}, // mean 630
		{690, 720, 660}, // mean 690
	}
	i := 0
	d := &ReflectanceDetector{
		Sampler: ReflectanceSamplerFunc(func() ([3]float64, error) {
			v := samples[i%len(samples)]
			i++
			return v, nil
		}),
		SampleCount: 2,
		Threshold:   700, // overall mean 660 <= 700
	}

	present, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !present {
		t.Error("mean=660 with threshold=700: got absent, want present")
	}
}

func TestReflectanceDetector_Invert(t *testing.T) {
	d := &ReflectanceDetector{
		Sampler: ReflectanceSamplerFunc(func() ([3]float64, error) {
			return [3]float64{900, 900, 900}, nil
		}),
		SampleCount: 1,
		Threshold:   700,
		Invert:      true,
	}

	present, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !present {
		t.Error("inverted comparator: mean=900 >= 700 should report present")
	}
}

func TestReflectanceDetector_ReadErrorPropagates(t *testing.T) {
	d := &ReflectanceDetector{
		Sampler: ReflectanceSamplerFunc(func() ([3]float64, error) {
			return [3]float64{}, errors.New("i2c nak")
		}),
		SampleCount: 2,
		Threshold:   700,
	}

	present, err := d.Detect()
	if present {
		t.Error("a failed read must not report present")
	}
	var sensorErr *SensorError
	if !errors.As(err, &sensorErr) {
		t.Fatalf("got %T, want *SensorError", err)
	}
}
