package trace

// TraceLevel controls the verbosity of episode tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEpisodes captures every training episode.
	TraceLevelEpisodes TraceLevel = "episodes"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelEpisodes: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TrainingTrace collects episode records during training.
type TrainingTrace struct {
	Level    TraceLevel
	Episodes []EpisodeRecord
}

// NewTrainingTrace creates a TrainingTrace ready for recording.
func NewTrainingTrace(level TraceLevel) *TrainingTrace {
	return &TrainingTrace{
		Level:    level,
		Episodes: make([]EpisodeRecord, 0),
	}
}

// ObserveEpisode appends an episode record unless tracing is disabled.
func (tt *TrainingTrace) ObserveEpisode(record EpisodeRecord) {
	if tt.Level != TraceLevelEpisodes {
		return
	}
	tt.Episodes = append(tt.Episodes, record)
}
