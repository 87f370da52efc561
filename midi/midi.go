// Package midi moves piano-roll segments in and out of standard MIDI files.
package midi

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/lattice"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/util"
)

// TicksPerQuarter is the resolution of exported files. It divides every
// lattice value including triplets of 64ths.
const TicksPerQuarter = 960

// DefaultQuantum is the grid imported times are rounded to.
const DefaultQuantum = 64

var ErrEmpty = errors.New("midi: no notes")

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return Parse(bytes.NewReader(dat))
}

// Parse reads a standard MIDI file, turning parser panics into errors.
func Parse(r io.Reader) (s *smf.SMF, e error) {
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if p := recover(); p != nil {
			s, e = nil, errors.Errorf("parsing midi file: %v", p)
		}
	}()
	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// Key is the MIDI key of row; middle C (60) is C4.
func Key(row, lowOctave int) int {
	return row + 12*(lowOctave+1)
}

// Row is the inverse of Key.
func Row(key, lowOctave int) int {
	return key - 12*(lowOctave+1)
}

var velocities = map[string]uint8{
	"ppp": 16, "pp": 33, "p": 49, "mp": 64, "mf": 80, "f": 96, "ff": 112, "fff": 127,
}

// Velocity maps a dynamic marking to a note-on velocity; unknown or empty
// markings play mf.
func Velocity(dynamic string) uint8 {
	if v, ok := velocities[dynamic]; ok {
		return v
	}
	return velocities["mf"]
}

// Dynamic is the marking whose velocity is closest to v.
func Dynamic(v uint8) string {
	best, dist := "mf", 256
	for _, name := range util.GetKeys(velocities) {
		d := int(velocities[name]) - int(v)
		if d < 0 {
			d = -d
		}
		if d < dist {
			best, dist = name, d
		}
	}
	return best
}

// Piece is the result of an import: one list of bars per track, each bar
// holding its segments in bar-relative time.
type Piece struct {
	Time   model.TimeSignature
	Tracks []Track
}

type Track struct {
	Name string
	Bars [][]model.Segment
}

type sounding struct {
	start int64
	vel   uint8
}

type span struct {
	key        int
	start, end int64
	vel        uint8
}

func ticksPerQuarter(s *smf.SMF) (int64, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || mt == 0 {
		return 0, errors.New("midi: only metric time formats are supported")
	}
	return int64(mt), nil
}

// Import lays out the notes of every track of s as bars of segments. The
// first time signature found applies to the whole file. Times are rounded to
// 1/quantum of a whole note; notes shorter than that are dropped. Notes
// crossing a bar line are split there.
func Import(s *smf.SMF, lowOctave int, quantum int64) (*Piece, error) {
	tpq, err := ticksPerQuarter(s)
	if err != nil {
		return nil, err
	}
	if quantum <= 0 {
		quantum = DefaultQuantum
	}
	whole := 4 * tpq

	piece := &Piece{Time: model.TimeSignature{Symbol: model.Common}}
	foundMeter := false
	var tracks [][]span
	var names []string
	for _, track := range s.Tracks {
		var (
			abs   int64
			name  string
			spans []span
		)
		on := map[int]sounding{}
		for _, ev := range track {
			abs += int64(ev.Delta)
			var ch, key, vel, num, denom, cpt, dsqpq uint8
			var text string
			switch {
			case ev.Message.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq):
				if !foundMeter && num > 0 && denom > 0 {
					piece.Time = model.TimeSignature{Beats: int(num), BeatType: int(denom)}
					foundMeter = true
				}
			case ev.Message.GetMetaTrackName(&text):
				name = text
			case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				on[int(key)] = sounding{start: abs, vel: vel}
			case ev.Message.GetNoteOn(&ch, &key, &vel), ev.Message.GetNoteOff(&ch, &key, &vel):
				if snd, ok := on[int(key)]; ok {
					spans = append(spans, span{key: int(key), start: snd.start, end: abs, vel: snd.vel})
					delete(on, int(key))
				}
			}
		}
		if len(spans) == 0 {
			continue
		}
		tracks = append(tracks, spans)
		names = append(names, name)
	}
	if len(tracks) == 0 {
		return nil, ErrEmpty
	}

	barLen := piece.Time.Length()
	for ti, spans := range tracks {
		t := Track{Name: names[ti]}
		for _, sp := range spans {
			row := Row(sp.key, lowOctave)
			if row < 0 {
				logrus.WithFields(logrus.Fields{"key": sp.key, "lowOctave": lowOctave}).Debug("note below the roll, dropped")
				continue
			}
			from := frac.New(sp.start, whole).Round(quantum)
			to := frac.New(sp.end, whole).Round(quantum)
			t.Bars = place(t.Bars, row, from, to, barLen, Dynamic(sp.vel))
		}
		for _, segs := range t.Bars {
			sort.SliceStable(segs, func(i, j int) bool {
				if c := segs[i].Onset.Cmp(segs[j].Onset); c != 0 {
					return c < 0
				}
				return segs[i].Row < segs[j].Row
			})
		}
		piece.Tracks = append(piece.Tracks, t)
	}
	return piece, nil
}

// place adds [from, to) on row to bars, cutting it at every bar line.
func place(bars [][]model.Segment, row int, from, to, barLen frac.Frac, dynamic string) [][]model.Segment {
	for from.Less(to) {
		bar := from.Div(barLen).Num() / from.Div(barLen).Den()
		start := barLen.Mul(frac.Int(bar))
		end := frac.Min(to, start.Add(barLen))
		for int64(len(bars)) <= bar {
			bars = append(bars, nil)
		}
		bars[bar] = append(bars[bar], model.Segment{
			Row:      row,
			Onset:    from.Sub(start),
			Duration: end.Sub(from),
			Dynamic:  dynamic,
		})
		from = end
	}
	return bars
}

// Snap returns a copy of segs with every duration replaced by the nearest
// plain or dotted note value. Onsets are kept.
func Snap(segs []model.Segment) []model.Segment {
	out := make([]model.Segment, len(segs))
	for i, seg := range segs {
		seg.Duration = lattice.Nearest(seg.Duration).Frac()
		out[i] = seg
	}
	return out
}

type event struct {
	tick int64
	off  bool
	key  uint8
	vel  uint8
}

func ticks(f frac.Frac) int64 {
	f = f.Round(4 * TicksPerQuarter)
	return f.Num() * 4 * TicksPerQuarter / f.Den()
}

// Export writes one track per entry of tracks, each a list of bars of
// segments, in time signature ts.
func Export(w io.Writer, ts model.TimeSignature, names []string, tracks [][][]model.Segment, lowOctave int) error {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	barLen := ts.Length()
	beats, beatType := ts.Numbers()

	for ti, bars := range tracks {
		var events []event
		for bi, segs := range bars {
			offset := barLen.Mul(frac.Int(int64(bi)))
			for _, seg := range segs {
				if seg.IsRest() || seg.Duration.Sign() <= 0 {
					continue
				}
				key := Key(seg.Row, lowOctave)
				if key < 0 || key > 127 {
					logrus.WithFields(logrus.Fields{"row": seg.Row, "key": key}).Debug("segment outside the midi range, skipped")
					continue
				}
				on := offset.Add(seg.Onset)
				events = append(events,
					event{tick: ticks(on), key: uint8(key), vel: Velocity(seg.Dynamic)},
					event{tick: ticks(on.Add(seg.Duration)), off: true, key: uint8(key)},
				)
			}
		}
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].tick != events[j].tick {
				return events[i].tick < events[j].tick
			}
			return events[i].off && !events[j].off
		})

		var track smf.Track
		if ti < len(names) && names[ti] != "" {
			track.Add(0, smf.MetaTrackSequenceName(names[ti]))
		}
		if ti == 0 {
			track.Add(0, smf.MetaMeter(uint8(beats), uint8(beatType)))
		}
		var last int64
		for _, ev := range events {
			delta := uint32(ev.tick - last)
			last = ev.tick
			if ev.off {
				track.Add(delta, midi.NoteOff(0, ev.key))
			} else {
				track.Add(delta, midi.NoteOn(0, ev.key, ev.vel))
			}
		}
		track.Close(0)
		if err := s.Add(track); err != nil {
			return errors.Wrapf(err, "adding track %d", ti)
		}
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing midi")
	}
	return nil
}
