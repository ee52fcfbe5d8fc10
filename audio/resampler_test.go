package audio

import (
	"io"
	"math"
	"testing"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := newSilentSource(22050, 2, 1000)
	resampler := NewResampler(src, 44100)

	if resampler.SampleRate() != 44100 {
		t.Errorf("Resampler.SampleRate() = %d, want 44100", resampler.SampleRate())
	}

	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_SameRate(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 1, 100, 0.5)
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 100)
	n, err := resampler.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n == 0 {
		t.Fatal("ReadSamples() returned 0 samples")
	}

	for i := range n {
		if math.Abs(float64(buf[i]-0.5)) > 0.1 {
			t.Errorf("buf[%d] = %v, want ≈0.5", i, buf[i])
		}
	}
}

func TestResampler_Upsampling(t *testing.T) {
	t.Parallel()

	// 22.05kHz to the 44.1kHz session rate doubles the sample count
	totalFrames := 22050
	src := newSineSource(22050, 1, totalFrames, 440.0)
	resampler := NewResampler(src, 44100)

	var samples []float32
	buf := make([]float32, 1024)

	for {
		n, err := resampler.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := totalFrames * 2
	tolerance := want / 100
	if len(samples) < want-tolerance || len(samples) > want+tolerance {
		t.Errorf("upsampled sample count = %d, want ≈%d", len(samples), want)
	}

	// Output must stay within the normalized range
	for i, s := range samples {
		if s < -1.1 || s > 1.1 {
			t.Fatalf("samples[%d] = %v, outside normalized range", i, s)
		}
	}
}

func TestResampler_Downsampling(t *testing.T) {
	t.Parallel()

	totalFrames := 44100
	src := newSineSource(44100, 1, totalFrames, 440.0)
	resampler := NewResampler(src, 8000)

	var samples []float32
	buf := make([]float32, 1024)

	for {
		n, err := resampler.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := totalFrames * 8000 / 44100
	tolerance := want / 100
	if len(samples) < want-tolerance || len(samples) > want+tolerance {
		t.Errorf("downsampled sample count = %d, want ≈%d", len(samples), want)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 2, 100)
	resampler := NewResampler(src, 16000)

	// dst not a multiple of the channel count
	buf := make([]float32, 7)
	_, err := resampler.ReadSamples(buf)
	if err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 1, 0)
	resampler := NewResampler(src, 16000)

	buf := make([]float32, 64)
	n, err := resampler.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples(empty source) = (%d, %v), want (0, io.EOF)", n, err)
	}
}
