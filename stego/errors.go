package stego

import "errors"

// Stage names a step of the encoder.
type Stage string

const (
	StageLoading        Stage = "loading"
	StageRasterization  Stage = "rasterization"
	StageMapping        Stage = "mapping"
	StageReconstruction Stage = "reconstruction"
	StageFitting        Stage = "fitting"
	StageCompositing    Stage = "compositing"
	StageSaving         Stage = "saving"
)

var (
	ErrShapeMismatch = errors.New("shapeMismatch")
	ErrEmptyMessage  = errors.New("emptyMessage")
)

// StageError is returned by every Encoder method that fails.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return "stego: " + string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
