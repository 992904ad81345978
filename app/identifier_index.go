package app

import (
	"sheetmerge/domain/student"
)

// indexByLinkedInternship maps each internship entry's linked-entity
// identifier to the record owning it. Enrichment rows join on the
// child-referenced identifier, not the parent's own identifier, so the index
// is keyed per entry; a record with several entries appears under several
// keys.
func indexByLinkedInternship(records []student.Record) map[string]*student.Record {
	index := make(map[string]*student.Record)
	for i := range records {
		for _, entry := range records[i].InternshipEntries {
			if entry.LinkedEntityID != "" {
				index[entry.LinkedEntityID] = &records[i]
			}
		}
	}
	return index
}

// indexByNameKey groups records by their "given-name family-name" key. The
// slice values let the caller detect ambiguous matches instead of picking
// one arbitrarily.
func indexByNameKey(records []student.Record) map[string][]*student.Record {
	index := make(map[string][]*student.Record)
	for i := range records {
		key := records[i].NameKey()
		index[key] = append(index[key], &records[i])
	}
	return index
}
