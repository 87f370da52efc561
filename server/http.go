package server

import (
	"github.com/Reu7en/Intervision-sub000/interval"
	"github.com/Reu7en/Intervision-sub000/live"
	"github.com/Reu7en/Intervision-sub000/model"
)

type BeatsResponse struct {
	Beats [][]model.Chord   `json:"beats"`
	Beams [][][]model.Chord `json:"beams"`
}

type SegmentsRequestBody struct {
	Bar       model.Bar `json:"bar"`
	LowOctave *int      `json:"lowOctave,omitempty"`
}

type CommitRequestBody struct {
	Bar       model.Bar       `json:"bar"`
	Segments  []model.Segment `json:"segments"`
	LowOctave *int            `json:"lowOctave,omitempty"`
}

type CommitResponse struct {
	Bar     model.Bar `json:"bar"`
	Warning string    `json:"warning,omitempty"`
}

type IntervalsRequestBody struct {
	Score model.Score `json:"score"`
	// Bar limits the analysis to one bar index.
	Bar     *int              `json:"bar,omitempty"`
	Options *interval.Options `json:"options,omitempty"`
}

type IntervalsResponse struct {
	Bars    []interval.Result `json:"bars"`
	Palette []string          `json:"palette"`
}

type SessionResponse struct {
	ID  string `json:"id"`
	Seq uint64 `json:"seq"`
}

type LinesResponse struct {
	live.Snapshot
	Fresh   bool     `json:"fresh"`
	Palette []string `json:"palette"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
