package model

import "time"

// Category is the archive series a document belongs to. The label set is fixed
// by records policy; labels are stored verbatim (the series names are Arabic).
type Category string

const (
	CategoryFinancialSeries       Category = "مصلحة مالية"
	CategoryGeneralAdministration Category = "إدارة عامة"
)

// DocType classifies the kind of record.
type DocType string

const (
	DocTypeOrder           DocType = "order"
	DocTypeOfficialDecree  DocType = "official_decree"
	DocTypeOfficialGazette DocType = "official_gazette"
	DocTypeMemorandum      DocType = "memorandum"
	DocTypeDecision        DocType = "decision"
	DocTypePublication     DocType = "publication"
	DocTypeRegulation      DocType = "regulation"
	DocTypeDirective       DocType = "directive"
	DocTypeInstruction     DocType = "instruction"
	DocTypeBylaw           DocType = "bylaw"
	DocTypeDispatch        DocType = "dispatch"
	DocTypeOthers          DocType = "others"
)

// Origin identifies the issuing side of a record.
type Origin string

const (
	OriginCentral          Origin = "central"
	OriginRegional         Origin = "regional"
	OriginBrigadeCommander Origin = "brigade_commander"
)

var (
	categories = map[Category]struct{}{
		CategoryFinancialSeries:       {},
		CategoryGeneralAdministration: {},
	}
	docTypes = map[DocType]struct{}{
		DocTypeOrder: {}, DocTypeOfficialDecree: {}, DocTypeOfficialGazette: {},
		DocTypeMemorandum: {}, DocTypeDecision: {}, DocTypePublication: {},
		DocTypeRegulation: {}, DocTypeDirective: {}, DocTypeInstruction: {},
		DocTypeBylaw: {}, DocTypeDispatch: {}, DocTypeOthers: {},
	}
	origins = map[Origin]struct{}{
		OriginCentral: {}, OriginRegional: {}, OriginBrigadeCommander: {},
	}
)

// Valid reports whether the value belongs to the closed category set.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (t DocType) Valid() bool {
	_, ok := docTypes[t]
	return ok
}

func (o Origin) Valid() bool {
	_, ok := origins[o]
	return ok
}

// Document represents a stored PDF record in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// Filename is the server-generated stored name, never shown to end users;
// Title is the logical name used for display and downloads.
type Document struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	FileNumber string    `json:"file_number,omitempty"`
	Category   Category  `json:"category"`
	Type       DocType   `json:"type,omitempty"`
	Origin     Origin    `json:"origin,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
