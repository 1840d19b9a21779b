package store

import (
	"gorm.io/gorm"
)

// RunRepository handles run database operations.
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create adds a run together with its measurements.
func (r *RunRepository) Create(run *Run) error {
	return r.db.Create(run).Error
}

// Get retrieves a run and its measurements by ID.
func (r *RunRepository) Get(id uint) (*Run, error) {
	var run Run
	err := r.db.Preload("Measurements", func(db *gorm.DB) *gorm.DB {
		return db.Order("ebn0_db ASC")
	}).First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent retrieves the most recent N runs without their measurements.
func (r *RunRepository) Recent(limit int) ([]Run, error) {
	var runs []Run
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// Measurements retrieves the points of a run ordered by Eb/N0.
func (r *RunRepository) Measurements(runID uint) ([]Measurement, error) {
	var ms []Measurement
	err := r.db.Where("run_id = ?", runID).
		Order("ebn0_db ASC").
		Find(&ms).Error
	return ms, err
}

// Delete removes a run and its measurements.
func (r *RunRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&Measurement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Run{}, id).Error
	})
}
