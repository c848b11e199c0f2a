package reports

import "qr-manager-go/internal/domain/registry"

// HistoryEntry is one code row of a house's history, most-recent first.
type HistoryEntry struct {
	Code         string `json:"code"`
	VisitorName  string `json:"visitor_name"`
	ResidentName string `json:"resident_name"`
	HouseID      string `json:"house"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
}

// Counters aggregates every CODE row across all partitions by its current
// status. Generated counts every code ever issued; validated and denied are
// the terminal subsets.
type Counters struct {
	Generated int64 `json:"generated"`
	Validated int64 `json:"validated"`
	Denied    int64 `json:"denied"`
}

func historyEntryFromRecord(record registry.Record) HistoryEntry {
	return HistoryEntry{
		Code:         record.Code,
		VisitorName:  record.VisitorName,
		ResidentName: record.ResidentName,
		HouseID:      record.HouseID,
		Date:         record.Date,
		Time:         record.Time,
		Status:       string(record.Status),
	}
}
