package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"pahmm/internal/align"
	"pahmm/internal/orient"
	"pahmm/internal/predict"
	"pahmm/internal/ready"
	"pahmm/internal/reference"
	"pahmm/internal/signal"
)

// Error kinds, stable for logs and exit codes.
const (
	KindNone                      = ""
	KindNoMatchingGeneData        = "NoMatchingGeneData"
	KindInsufficientReferenceData = "InsufficientReferenceData"
	KindEmptySeries               = "EmptySeriesError"
	KindMalformedBufferLength     = "MalformedBufferLength"
	KindTimeout                   = "Timeout"
	KindMalformedInput            = "MalformedInput"
	KindCanceled                  = "Canceled"
	KindOther                     = "Other"
)

// Kind classifies err into one of the Kind* constants.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, reference.ErrNoMatchingGeneData):
		return KindNoMatchingGeneData
	case errors.Is(err, orient.ErrInsufficientReferenceData):
		return KindInsufficientReferenceData
	case errors.Is(err, signal.ErrEmptySeries):
		return KindEmptySeries
	case errors.Is(err, align.ErrMalformedBufferLength):
		return KindMalformedBufferLength
	case errors.Is(err, predict.ErrMalformedTable), errors.Is(err, reference.ErrMalformedCorpus):
		// a table that never parsed is reported as malformed, not late
		return KindMalformedInput
	case errors.Is(err, ready.ErrTimeout):
		return KindTimeout
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	return KindOther
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
