package models

// Record is one day of the weather record table.
type Record struct {
	Date    string // YYYY-MM-DD, as returned by the API
	MaxTemp float64
	MinTemp float64
	AvgTemp float64
}

// NewRecord builds a record with AvgTemp set to the midpoint of max and min.
func NewRecord(date string, maxTemp, minTemp float64) Record {
	return Record{
		Date:    date,
		MaxTemp: maxTemp,
		MinTemp: minTemp,
		AvgTemp: (maxTemp + minTemp) / 2,
	}
}

// Table is the ordered set of daily records from a single fetch.
type Table struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Records   []Record
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

func (t *Table) Dates() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Date
	}
	return out
}

func (t *Table) MaxTemps() []float64 { return t.column(func(r Record) float64 { return r.MaxTemp }) }
func (t *Table) MinTemps() []float64 { return t.column(func(r Record) float64 { return r.MinTemp }) }
func (t *Table) AvgTemps() []float64 { return t.column(func(r Record) float64 { return r.AvgTemp }) }

func (t *Table) column(get func(Record) float64) []float64 {
	if t == nil {
		return nil
	}
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = get(r)
	}
	return out
}
