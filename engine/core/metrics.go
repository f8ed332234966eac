package core

import "sync"

const AVG_COUNT uint8 = 30

// MetricsState tracks frame pacing. FPS and TPS are latched once per
// second so UI readouts stay stable.
type MetricsState struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	Ticks              int32
	AccumulatedSeconds float64
	FPS                float64
	TPS                float64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			MStimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

// MetricsFrameRendered records one presented frame.
func MetricsFrameRendered() {
	metricsState.Frames++
}

// MetricsTicked records one fixed-step update.
func MetricsTicked() {
	metricsState.Ticks++
}

// MetricsUpdate advances the second-accumulator with the elapsed wall time
// of the last loop iteration and latches FPS/TPS when a second has passed.
func MetricsUpdate(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0
	metricsState.MStimes[metricsState.FrameAVGCounter] = frameMS
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		metricsState.MSavg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			metricsState.MSavg += metricsState.MStimes[i]
		}
		metricsState.MSavg /= float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT

	metricsState.AccumulatedSeconds += frameElapsedTime
	if metricsState.AccumulatedSeconds >= 1.0 {
		metricsState.FPS = float64(metricsState.Frames) / metricsState.AccumulatedSeconds
		metricsState.TPS = float64(metricsState.Ticks) / metricsState.AccumulatedSeconds
		metricsState.AccumulatedSeconds = 0
		metricsState.Frames = 0
		metricsState.Ticks = 0
	}
}

func MetricsFPS() float64 {
	return metricsState.FPS
}

func MetricsTPS() float64 {
	return metricsState.TPS
}

func MetricsFrameTime() float64 {
	return metricsState.MSavg
}

func MetricsFrame() (float64, float64) {
	return metricsState.FPS, metricsState.MSavg
}
