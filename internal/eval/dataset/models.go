package dataset

// LabeledPage is one ground-truth record: the OCR text of a periodical
// page plus the metadata a cataloger assigned to it.
type LabeledPage struct {
	ID       string `json:"id" parquet:"id"`
	Text     string `json:"text" parquet:"text"`
	Language string `json:"language" parquet:"language"` // "en", "es", or ""

	ExpectedTitle       string `json:"expected_title" parquet:"expected_title"`
	ExpectedDate        string `json:"expected_date" parquet:"expected_date"` // YYYY/MM/DD with NA components
	ExpectedVolumeIssue string `json:"expected_volume_issue" parquet:"expected_volume_issue"`
}
