package entity

// Setting is a single key/value row in the app settings table. The bill
// sequencer stores its reset offset here under SettingBillSequenceStartID.
type Setting struct {
	Key   string `gorm:"primaryKey;size:100" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// SettingBillSequenceStartID holds the bill id baseline for display
// numbering. Bills with a larger id count toward the visible sequence.
const SettingBillSequenceStartID = "bill_sequence_start_id"

// TableName returns the table name for the Setting model
func (Setting) TableName() string {
	return "app_settings"
}
