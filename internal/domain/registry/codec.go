package registry

import (
	"time"
)

// Column layout of a partition row. The positional mapping lives here only;
// the rest of the package works with Record.
const (
	ColumnTimestamp = iota
	ColumnKind
	ColumnCode
	ColumnVisitor
	ColumnResident
	ColumnHouse
	ColumnDate
	ColumnTime
	ColumnStatus
	ColumnServiceType
	ColumnPhotoURL
	ColumnMonth
	ColumnYear

	columnCount
)

// Header is the fixed schema written as row 0 of every partition.
var Header = []string{
	"timestamp", "kind", "code", "visitor", "resident", "house",
	"date", "time", "status", "service_type", "photo_url", "month", "year",
}

func (r Record) ToRow() []string {
	row := make([]string, columnCount)
	row[ColumnTimestamp] = r.CreatedAt.UTC().Format(time.RFC3339)
	row[ColumnKind] = string(r.Kind)
	row[ColumnCode] = r.Code
	row[ColumnVisitor] = r.VisitorName
	row[ColumnResident] = r.ResidentName
	row[ColumnHouse] = r.HouseID
	row[ColumnDate] = r.Date
	row[ColumnTime] = r.Time
	row[ColumnStatus] = string(r.Status)
	row[ColumnServiceType] = r.ServiceType
	row[ColumnPhotoURL] = r.PhotoURL
	row[ColumnMonth] = r.Month
	row[ColumnYear] = r.Year
	return row
}

// RecordFromRow decodes a stored row. Rows shorter than the schema are
// padded with empty cells; a row with an unparsable timestamp is reported
// as not ok and callers skip it.
func RecordFromRow(row []string) (Record, bool) {
	if len(row) < columnCount {
		padded := make([]string, columnCount)
		copy(padded, row)
		row = padded
	}

	createdAt, err := time.Parse(time.RFC3339, row[ColumnTimestamp])
	if err != nil {
		return Record{}, false
	}

	return Record{
		CreatedAt:    createdAt,
		Kind:         RecordKind(row[ColumnKind]),
		Code:         row[ColumnCode],
		VisitorName:  row[ColumnVisitor],
		ResidentName: row[ColumnResident],
		HouseID:      row[ColumnHouse],
		Date:         row[ColumnDate],
		Time:         row[ColumnTime],
		Status:       CodeStatus(row[ColumnStatus]),
		ServiceType:  row[ColumnServiceType],
		PhotoURL:     row[ColumnPhotoURL],
		Month:        row[ColumnMonth],
		Year:         row[ColumnYear],
	}, true
}

var monthNames = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// stampLocal fills the human-readable date fields from t in the given zone.
func (r *Record) stampLocal(t time.Time, loc *time.Location) {
	local := t.In(loc)
	r.Date = local.Format("02/01/2006")
	r.Time = local.Format("15:04")
	r.Month = monthNames[local.Month()-1]
	r.Year = local.Format("2006")
}
