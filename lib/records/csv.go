package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// ResultHeader is the column order of raw results CSVs
// (<Marathon><Year>_res.csv).
var ResultHeader = []string{"run_no", "age_cat", "gender", "half", "finish", "idp"}

// SplitHeader is the column order of raw split CSVs
// (<Marathon><Year>_splits.csv): identity and state columns followed by a
// (time, pace, speed) triple per checkpoint.
var SplitHeader = buildSplitHeader()

func buildSplitHeader() []string {
	h := []string{"idp", "race_state", "last_split", "age_cat"}
	for _, k := range Checkpoints {
		h = append(h, k+"_time", k+"_pace", k+"_speed")
	}
	return h
}

// CleanHeader is the canonical cleaned-row schema: demographics and derived
// state first, then the split triples in course order.
var CleanHeader = buildCleanHeader()

func buildCleanHeader() []string {
	h := []string{"idp", "run_no", "gender", "age_cat", "race_state", "last_split"}
	for _, k := range Checkpoints {
		h = append(h, k+"_time", k+"_pace", k+"_speed")
	}
	return h
}

func (r RunnerRecord) csvRecord() []string {
	return []string{r.RunNo, r.AgeCat, r.Gender, r.Half, r.Finish, r.Idp}
}

func (s SplitRecord) csvRecord() []string {
	rec := []string{s.Idp, s.RaceState, s.LastSplit, s.AgeCat}
	for _, cell := range s.Splits {
		rec = append(rec, cell.Time, cell.Pace, cell.Speed)
	}
	return rec
}

func (r Row) csvRecord() []string {
	rec := []string{r.Idp, r.RunNo, r.Gender, r.AgeCat, r.RaceState, r.LastSplit}
	for i := 0; i < NumCheckpoints; i++ {
		rec = append(rec, formatTime(r.Time[i]), formatTime(r.Pace[i]), formatSpeed(r.Speed[i]))
	}
	return rec
}

func formatTime(v int32) string {
	if v == NullTime {
		return ""
	}
	return strconv.FormatInt(int64(v), 10)
}

func formatSpeed(v float32) string {
	if math.IsNaN(float64(v)) {
		return ""
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// WriteResultsCSV writes raw result records with the ResultHeader schema.
func WriteResultsCSV(w io.Writer, recs []RunnerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(r.csvRecord()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSplitsCSV writes raw split records with the SplitHeader schema.
func WriteSplitsCSV(w io.Writer, recs []SplitRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SplitHeader); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(r.csvRecord()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRowsCSV writes cleaned rows with the CleanHeader schema.
func WriteRowsCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CleanHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.csvRecord()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadResultsCSV reads a raw results CSV produced by WriteResultsCSV.
func ReadResultsCSV(r io.Reader) ([]RunnerRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(ResultHeader)
	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("results csv: missing header")
	}
	out := make([]RunnerRecord, 0, len(lines)-1)
	for _, rec := range lines[1:] {
		out = append(out, RunnerRecord{
			RunNo:  rec[0],
			AgeCat: rec[1],
			Gender: rec[2],
			Half:   rec[3],
			Finish: rec[4],
			Idp:    rec[5],
		})
	}
	return out, nil
}

// ReadSplitsCSV reads a raw splits CSV produced by WriteSplitsCSV.
func ReadSplitsCSV(r io.Reader) ([]SplitRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(SplitHeader)
	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("splits csv: missing header")
	}
	out := make([]SplitRecord, 0, len(lines)-1)
	for _, rec := range lines[1:] {
		s := SplitRecord{
			Idp:       rec[0],
			RaceState: rec[1],
			LastSplit: rec[2],
			AgeCat:    rec[3],
		}
		for i := 0; i < NumCheckpoints; i++ {
			s.Splits[i] = SplitCell{
				Time:  rec[4+i*3],
				Pace:  rec[5+i*3],
				Speed: rec[6+i*3],
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadRowsCSV reads a cleaned-row CSV produced by WriteRowsCSV.
func ReadRowsCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CleanHeader)
	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("rows csv: missing header")
	}
	out := make([]Row, 0, len(lines)-1)
	for _, rec := range lines[1:] {
		row := NewRow()
		row.Idp = rec[0]
		row.RunNo = rec[1]
		row.Gender = rec[2]
		row.AgeCat = rec[3]
		row.RaceState = rec[4]
		row.LastSplit = rec[5]
		for i := 0; i < NumCheckpoints; i++ {
			row.Time[i] = parseTimeField(rec[6+i*3])
			row.Pace[i] = parseTimeField(rec[7+i*3])
			row.Speed[i] = parseSpeedField(rec[8+i*3])
		}
		out = append(out, row)
	}
	return out, nil
}

func parseTimeField(s string) int32 {
	if s == "" {
		return NullTime
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return NullTime
	}
	return int32(v)
}

func parseSpeedField(s string) float32 {
	if s == "" {
		return float32(math.NaN())
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return float32(math.NaN())
	}
	return float32(v)
}

// CreateOutput opens an output file under dir, creating dir as needed.
// When overwrite is false and the file already exists, an error is
// returned instead of clobbering a previous crawl.
func CreateOutput(dir, name string, overwrite bool) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("output %s already exists", path)
		}
	}
	return os.Create(path)
}
