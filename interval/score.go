package interval

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"

	"github.com/Reu7en/Intervision-sub000/codec"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/util"
)

// StaffBars builds the analysis input for bar i of every staff in score.
// Staves shorter than i+1 bars contribute nothing.
func StaffBars(score model.Score, i, lowOctave int) ([]StaffBar, error) {
	var out []StaffBar
	for pi, part := range score.Parts {
		for si, staff := range part.Staves {
			if i >= len(staff.Bars) {
				continue
			}
			sb := StaffBar{Part: pi, Staff: si, Group: part.Group, CurLen: staff.Bars[i].Length()}
			var err error
			if sb.Cur, err = codec.Segments(staff.Bars[i], lowOctave); err != nil {
				return nil, errors.Wrapf(err, "part %d staff %d bar %d", pi, si, i)
			}
			if i > 0 {
				prev := staff.Bars[i-1]
				sb.PrevLen = prev.Length()
				if sb.Prev, err = codec.Segments(prev, lowOctave); err != nil {
					return nil, errors.Wrapf(err, "part %d staff %d bar %d", pi, si, i-1)
				}
			}
			if i+1 < len(staff.Bars) {
				if sb.Next, err = codec.Segments(staff.Bars[i+1], lowOctave); err != nil {
					return nil, errors.Wrapf(err, "part %d staff %d bar %d", pi, si, i+1)
				}
			}
			out = append(out, sb)
		}
	}
	return out, nil
}

// AnalyzeScore analyzes every bar of score on up to workers goroutines.
// Results are indexed by bar.
func AnalyzeScore(score model.Score, lowOctave int, opts Options, workers int) ([]Result, error) {
	n := score.NumBars()
	workers = util.Clamp(workers, 1, util.Max(n, 1))
	results := make([]Result, n)

	var (
		mu       sync.Mutex
		firstErr error
	)
	swg := sizedwaitgroup.New(workers)
	for i := 0; i < n; i++ {
		swg.Add()
		go func(i int) {
			defer swg.Done()
			staves, err := StaffBars(score, i, lowOctave)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			res := Analyze(staves, opts)
			res.Bar = i
			results[i] = res
		}(i)
	}
	swg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	logrus.WithFields(logrus.Fields{"bars": n, "workers": workers}).Debug("score analyzed")
	return results, nil
}
