package repository

import (
	"propchat/internal/model"
)

// Dataset is the in-memory property corpus. It is loaded once at
// startup and never written afterwards, so concurrent readers need no
// locking.
type Dataset struct {
	records []model.PropertyRecord
	byID    map[int64]int
	skipped int
}

// NewDataset indexes the given records. skipped counts source rows
// dropped at load time.
func NewDataset(records []model.PropertyRecord, skipped int) *Dataset {
	byID := make(map[int64]int, len(records))
	for i, record := range records {
		byID[record.ID] = i
	}
	return &Dataset{records: records, byID: byID, skipped: skipped}
}

// Records returns the full corpus in load order. Callers must not
// modify the returned slice.
func (d *Dataset) Records() []model.PropertyRecord {
	return d.records
}

// Len returns the number of loaded records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Skipped returns the number of source rows dropped at load time.
func (d *Dataset) Skipped() int {
	return d.skipped
}

// ByID returns a copy of the record with the given id, or nil when no
// such record was loaded.
func (d *Dataset) ByID(id int64) *model.PropertyRecord {
	i, ok := d.byID[id]
	if !ok {
		return nil
	}
	record := d.records[i]
	return &record
}
