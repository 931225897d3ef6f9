package dataset

// Record is one row of an uploaded table keyed by column name
type Record map[string]string

// Dataset is an in-memory table as handed over by a loader. Columns keeps the
// header order; every record carries a value (possibly blank) for each column.
type Dataset struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// New creates a dataset, padding records so each column has a value
func New(name string, columns []string, records []Record) *Dataset {
	cols := append([]string(nil), columns...)
	recs := make([]Record, len(records))
	for i, rec := range records {
		row := make(Record, len(cols))
		for _, col := range cols {
			row[col] = rec[col]
		}
		recs[i] = row
	}
	return &Dataset{Name: name, Columns: cols, Records: recs}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// HasColumn reports whether name is one of the dataset columns
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Values returns the column values in record order
func (d *Dataset) Values(column string) []string {
	if d == nil {
		return nil
	}
	values := make([]string, 0, d.Len())
	for _, rec := range d.Records {
		values = append(values, rec[column])
	}
	return values
}

// Head returns a dataset holding at most the first n records
func (d *Dataset) Head(n int) *Dataset {
	if d == nil {
		return New("", nil, nil)
	}
	if n < 0 || n > d.Len() {
		n = d.Len()
	}
	return &Dataset{Name: d.Name, Columns: d.Columns, Records: d.Records[:n]}
}

// Rows projects records onto the column order for tabular display
func (d *Dataset) Rows() [][]string {
	if d == nil {
		return nil
	}
	rows := make([][]string, 0, d.Len())
	for _, rec := range d.Records {
		row := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	return rows
}
