package store

import (
	"time"

	"gorm.io/gorm"
)

// Run is one BER sweep: a decoder configuration measured over a list of
// Eb/N0 points.
type Run struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	Backend      string        `gorm:"size:16;not null" json:"backend"`
	Polys        string        `gorm:"size:32;not null" json:"polys"`
	FrameLen     int           `gorm:"not null" json:"frame_len"`
	Frames       int           `gorm:"not null" json:"frames"`
	TailBiting   bool          `gorm:"not null" json:"tail_biting"`
	Seed         int64         `json:"seed"`
	StartedAt    time.Time     `gorm:"index;not null" json:"started_at"`
	Duration     float64       `json:"duration"` // seconds
	Measurements []Measurement `gorm:"constraint:OnDelete:CASCADE" json:"measurements,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// TableName specifies the table name for Run.
func (Run) TableName() string {
	return "runs"
}

// BeforeCreate fills in StartedAt when the caller left it unset.
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	return nil
}

// Measurement holds the error counts of one Eb/N0 point of a Run.
type Measurement struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	RunID       uint    `gorm:"index;not null" json:"run_id"`
	EbN0dB      float64 `gorm:"column:ebn0_db;not null" json:"ebn0_db"`
	Frames      int     `gorm:"not null" json:"frames"`
	FrameErrors int     `gorm:"not null" json:"frame_errors"`
	Bits        int     `gorm:"not null" json:"bits"`
	BitErrors   int     `gorm:"not null" json:"bit_errors"`
}

// TableName specifies the table name for Measurement.
func (Measurement) TableName() string {
	return "measurements"
}

// BER returns the bit error rate of the measurement.
func (m Measurement) BER() float64 {
	if m.Bits == 0 {
		return 0
	}
	return float64(m.BitErrors) / float64(m.Bits)
}
