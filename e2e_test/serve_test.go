//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reu7en/Intervision-sub000/config"
	"github.com/Reu7en/Intervision-sub000/frac"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/server"
)

var ts *httptest.Server

func TestMain(m *testing.M) {
	ts = httptest.NewServer(server.New(config.Default()).Router())
	exitVal := m.Run()
	ts.Close()
	os.Exit(exitVal)
}

func post(t *testing.T, path string, body any, out any) int {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
	return resp.StatusCode
}

func seg(row int, onset, duration string) model.Segment {
	return model.Segment{Row: row, Onset: frac.MustParse(onset), Duration: frac.MustParse(duration)}
}

// A C major triad drawn on the roll is notated, then analyzed.
func TestCommitThenAnalyzeE2E(t *testing.T) {
	template := model.Bar{Time: model.TimeSignature{Symbol: model.Common}, Key: model.KeySignature{Name: "C"}}
	var committed server.CommitResponse
	status := post(t, "/commit", server.CommitRequestBody{
		Bar:      template,
		Segments: []model.Segment{seg(0, "0", "1/2"), seg(4, "0", "1/2"), seg(7, "0", "1/2"), seg(5, "1/2", "1/2")},
	}, &committed)

	assert := assert.New(t)
	assert.Equal(200, status)
	assert.Empty(committed.Warning)
	require.Len(t, committed.Bar.Chords, 2)
	assert.Len(committed.Bar.Chords[0].Notes, 3)

	score := model.Score{Parts: []model.Part{{Name: "piano", Staves: []model.Staff{{Bars: []model.Bar{committed.Bar}}}}}}
	var lines server.IntervalsResponse
	status = post(t, "/intervals", server.IntervalsRequestBody{Score: score}, &lines)
	assert.Equal(200, status)
	require.Len(t, lines.Bars, 1)
	// C-E, C-G and E-G at time 0; the C-G fifth spans the other two.
	require.Len(t, lines.Bars[0].Harmonic, 1)
	assert.Equal(6, lines.Bars[0].Harmonic[0].Class)
	// Only F is outside a harmonic pair, so there is nothing to connect.
	assert.Empty(lines.Bars[0].Melodic)
}
