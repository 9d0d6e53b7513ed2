package history

import (
	"encoding/json"
	"fmt"
	"time"

	"swdb/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service appends and reads per-document audit entries
type Service struct {
	db     *gorm.DB
	logger *logrus.Entry
}

// NewService creates a history service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		logger: logrus.WithField("component", "history"),
	}
}

// Record appends one history entry for the given document. It is invoked
// after the primary write has already succeeded, so a failure here is logged
// and swallowed: the audit trail is best-effort and must never fail or roll
// back the primary write. An empty change set appends nothing.
func (s *Service) Record(docType string, docID int, actor string, changes []Change) {
	if len(changes) == 0 {
		return
	}

	paths, err := json.Marshal(changes)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"docType": docType,
			"docId":   docID,
		}).Warn("failed to marshal history paths, entry dropped")
		return
	}

	entry := model.History{
		DocType: docType,
		DocID:   docID,
		At:      time.Now(),
		By:      actor,
		Paths:   paths,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"docType": docType,
			"docId":   docID,
		}).Warn("failed to append history entry, entry dropped")
	}
}

// List returns all history entries for a document, oldest first
func (s *Service) List(docType string, docID int) ([]model.History, error) {
	var entries []model.History
	if err := s.db.
		Where("doc_type = ? AND doc_id = ?", docType, docID).
		Order("at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return entries, nil
}
