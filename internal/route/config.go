package route

// GradientConfig controls the gradient segmenter.
type GradientConfig struct {
	SmoothingWindow int     `json:"smoothing_window"`
	TargetSegments  int     `json:"target_segments"`
	MinSpanKm       float64 `json:"min_span_km"`
	// Bucket boundaries in percent, ascending: descent|flat|easy|moderate|hard|extreme.
	FlatFrom     float64 `json:"flat_from"`
	EasyFrom     float64 `json:"easy_from"`
	ModerateFrom float64 `json:"moderate_from"`
	HardFrom     float64 `json:"hard_from"`
	ExtremeFrom  float64 `json:"extreme_from"`
}

// RunThresholds drives one direction of the hysteresis detector.
type RunThresholds struct {
	MinChangeM            float64 `json:"min_change_m"`
	MinLengthKm           float64 `json:"min_length_km"`
	MinAvgGradientPercent float64 `json:"min_avg_gradient_percent"`
	CloseAbsM             float64 `json:"close_abs_m"`
	CloseRelative         float64 `json:"close_relative"`
}

// DetectionConfig sizes the adaptive smoothing window used before climb and
// descent detection.
type DetectionConfig struct {
	WindowKm  float64 `json:"window_km"`
	MinWindow int     `json:"min_window"`
	MaxWindow int     `json:"max_window"`
	MinPoints int     `json:"min_points"`
}

type WindConfig struct {
	StrongKmh float64 `json:"strong_kmh"`
	MildKmh   float64 `json:"mild_kmh"`

	DifficultHeadwindPct   int `json:"difficult_headwind_pct"`
	UnfavorableHeadwindPct int `json:"unfavorable_headwind_pct"`
	FavorableTailwindPct   int `json:"favorable_tailwind_pct"`
}

type Config struct {
	Gradient  GradientConfig  `json:"gradient"`
	Climb     RunThresholds   `json:"climb"`
	Descent   RunThresholds   `json:"descent"`
	Detection DetectionConfig `json:"detection"`
	Wind      WindConfig      `json:"wind"`
}

const (
	DefaultMinGainM = 50.0
	DefaultMinDropM = 50.0
)

func DefaultConfig() Config {
	return Config{
		Gradient: GradientConfig{
			SmoothingWindow: 5,
			TargetSegments:  200,
			MinSpanKm:       0.001,
			FlatFrom:        -1,
			EasyFrom:        3,
			ModerateFrom:    5,
			HardFrom:        8,
			ExtremeFrom:     12,
		},
		Climb: RunThresholds{
			MinChangeM:            DefaultMinGainM,
			MinLengthKm:           0.2,
			MinAvgGradientPercent: 2,
			CloseAbsM:             30,
			CloseRelative:         0.3,
		},
		Descent: RunThresholds{
			MinChangeM:    DefaultMinDropM,
			CloseAbsM:     30,
			CloseRelative: 0.3,
		},
		Detection: DetectionConfig{
			WindowKm:  0.5,
			MinWindow: 5,
			MaxWindow: 80,
			MinPoints: 10,
		},
		Wind: WindConfig{
			StrongKmh:              15,
			MildKmh:                5,
			DifficultHeadwindPct:   60,
			UnfavorableHeadwindPct: 40,
			FavorableTailwindPct:   50,
		},
	}
}

// Analyzer runs every analysis under one Config. The zero value is not
// usable; build it with NewAnalyzer.
type Analyzer struct {
	cfg     Config
	sampler Sampler
}

func NewAnalyzer(cfg Config, sampler Sampler) *Analyzer {
	if sampler == nil {
		sampler = IndexSampler{}
	}
	return &Analyzer{cfg: cfg, sampler: sampler}
}

var defaultAnalyzer = NewAnalyzer(DefaultConfig(), IndexSampler{})

func (a *Analyzer) Config() Config {
	return a.cfg
}

func (a *Analyzer) Sampler() Sampler {
	return a.sampler
}
