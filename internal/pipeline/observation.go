package pipeline

// Stage identifies the pipeline state an observation was emitted from.
type Stage string

const (
	StageAcquiring    Stage = "acquiring"
	StageTranscribing Stage = "transcribing"
	StageRendering    Stage = "rendering"
	StagePersisting   Stage = "persisting"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// Observation is one incremental status update for a running job. Each
// observation refines the previous one: artifact fields are only ever added,
// never cleared. The final observation has Stage StageDone or StageFailed.
type Observation struct {
	Stage        Stage
	Message      string
	Percent      float64
	AudioPath    string
	JobDir       string
	Transcript   string
	DetailedText string
	Language     string
	SegmentCount int
	ExportPaths  []string
	Err          error
}

// Observer receives status observations as the pipeline advances.
type Observer func(Observation)

// Terminal reports whether no further observations will follow.
func (o Observation) Terminal() bool {
	return o.Stage == StageDone || o.Stage == StageFailed
}

func (o Observation) snapshot() Observation {
	cp := o
	if len(o.ExportPaths) > 0 {
		cp.ExportPaths = append([]string(nil), o.ExportPaths...)
	}
	return cp
}
