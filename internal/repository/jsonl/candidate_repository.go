// Package jsonl persists consented candidate records as newline-delimited
// JSON, one append per save. Note the stored shape carries the generated
// question topics but not the candidate's answers; answer capture is a
// known gap kept for compatibility with the existing record format.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/pkg/logger"
	"go-talentscout-backend/pkg/privacy"

	"github.com/google/uuid"
)

const recordsFile = "candidates.jsonl"

type candidateRepository struct {
	dataDir       string
	retentionDays int
}

func NewCandidateRepository(dataDir string, retentionDays int) domain.CandidateRepository {
	return &candidateRepository{dataDir: dataDir, retentionDays: retentionDays}
}

func (r *candidateRepository) Store(ctx context.Context, candidate *domain.Candidate, questions *domain.QuestionSet) (string, error) {
	if !candidate.ConsentToStore {
		logger.Log.Info("Candidate did not consent to data storage")
		return "", nil
	}

	r.cleanExpired()

	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	record := toRecord(candidate, questions)

	line, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal candidate record: %w", err)
	}

	path := filepath.Join(r.dataDir, recordsFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return "", fmt.Errorf("append candidate record: %w", err)
	}

	logger.Log.Info("Candidate data stored", "candidate_id", record.CandidateID)
	return record.CandidateID, nil
}

func (r *candidateRepository) Load(ctx context.Context, candidateID string) (*domain.CandidateRecord, error) {
	path := filepath.Join(r.dataDir, recordsFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var record domain.CandidateRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			continue
		}
		if record.CandidateID == candidateID {
			return &record, nil
		}
	}
	return nil, scanner.Err()
}

func toRecord(candidate *domain.Candidate, questions *domain.QuestionSet) domain.CandidateRecord {
	record := domain.CandidateRecord{
		Timestamp:        time.Now(),
		CandidateID:      uuid.NewString(),
		FullName:         candidate.FullName,
		EmailHash:        privacy.Hash(candidate.Email),
		PhoneHash:        privacy.Hash(candidate.Phone),
		YearsExperience:  candidate.YearsExperience,
		DesiredPositions: candidate.DesiredPositions,
		CurrentLocation:  candidate.CurrentLocation,
		TechStack:        candidate.TechStack,
	}
	if questions != nil {
		record.Questions = questions.Topics
	}
	return record
}

// cleanExpired removes jsonl files older than the retention period. Errors
// only get logged; a failed sweep never blocks a save.
func (r *candidateRepository) cleanExpired() {
	if r.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -r.retentionDays)

	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(r.dataDir, e.Name())
			if err := os.Remove(path); err != nil {
				logger.Log.Error("Failed to remove expired data file", "file", e.Name(), "error", err)
				continue
			}
			logger.Log.Info("Removed expired data file", "file", e.Name())
		}
	}
}
