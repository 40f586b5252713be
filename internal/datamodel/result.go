package datamodel

import (
	"fmt"
	"io"
)

// Kind selects the wrapper type a Result produces.
type Kind int

const (
	ComponentKind Kind = iota + 1
	ReactionKind
)

// RecordSource yields raw records one at a time, returning io.EOF when
// exhausted. Sources are single-pass.
type RecordSource interface {
	Next() (map[string]any, error)
}

// Result lazily wraps the records of a source (typically a database query)
// in the requested wrapper type:
//
//	result, _ := datamodel.NewResult(src, datamodel.ReactionKind)
//	for {
//		r, err := result.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
type Result struct {
	src  RecordSource
	kind Kind
}

// NewResult wraps src. The kind must name a known wrapper type.
func NewResult(src RecordSource, kind Kind) (*Result, error) {
	if kind != ComponentKind && kind != ReactionKind {
		return nil, fmt.Errorf("unknown wrapper kind %d", kind)
	}
	return &Result{src: src, kind: kind}, nil
}

// Next pulls one record from the source and wraps it. The source's own
// exhaustion signal (io.EOF) passes through unchanged.
func (r *Result) Next() (Wrapper, error) {
	record, err := r.src.Next()
	if err != nil {
		return nil, err
	}
	switch r.kind {
	case ComponentKind:
		c, err := NewComponent(record)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		rx, err := NewReaction(record)
		if err != nil {
			return nil, err
		}
		return rx, nil
	}
}

type sliceSource struct {
	records []map[string]any
	i       int
}

// SliceSource adapts an in-memory record slice to a RecordSource.
func SliceSource(records []map[string]any) RecordSource {
	return &sliceSource{records: records}
}

func (s *sliceSource) Next() (map[string]any, error) {
	if s.i >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.i]
	s.i++
	return rec, nil
}
