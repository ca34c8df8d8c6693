package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/pkg/logger"
	"go-talentscout-backend/pkg/privacy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// candidateRepository stores the same consent-gated record shape as the
// jsonl store, in the candidate_records table. Selected when DATABASE_URL
// is configured.
type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Store(ctx context.Context, candidate *domain.Candidate, questions *domain.QuestionSet) (string, error) {
	if !candidate.ConsentToStore {
		logger.Log.Info("Candidate did not consent to data storage")
		return "", nil
	}

	candidateID := uuid.NewString()

	var techStackJSON, questionsJSON []byte
	if candidate.TechStack != nil {
		techStackJSON, _ = json.Marshal(candidate.TechStack)
	}
	if questions != nil {
		questionsJSON, _ = json.Marshal(questions.Topics)
	}

	query := `
		INSERT INTO candidate_records
			(candidate_id, created_at, full_name, email_hash, phone_hash,
			 years_experience, desired_positions, current_location, tech_stack, questions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		candidateID,
		time.Now(),
		candidate.FullName,
		privacy.Hash(candidate.Email),
		privacy.Hash(candidate.Phone),
		candidate.YearsExperience,
		pq.Array(candidate.DesiredPositions),
		candidate.CurrentLocation,
		techStackJSON,
		questionsJSON,
	)
	if err != nil {
		return "", err
	}

	logger.Log.Info("Candidate data stored", "candidate_id", candidateID)
	return candidateID, nil
}

func (r *candidateRepository) Load(ctx context.Context, candidateID string) (*domain.CandidateRecord, error) {
	query := `
		SELECT candidate_id, created_at, full_name, email_hash, phone_hash,
		       years_experience, desired_positions, current_location, tech_stack, questions
		FROM candidate_records WHERE candidate_id = $1`

	var record domain.CandidateRecord
	var positions []string
	var techStackJSON, questionsJSON []byte

	err := r.db.QueryRow(ctx, query, candidateID).Scan(
		&record.CandidateID, &record.Timestamp, &record.FullName,
		&record.EmailHash, &record.PhoneHash, &record.YearsExperience,
		pq.Array(&positions), &record.CurrentLocation,
		&techStackJSON, &questionsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record.DesiredPositions = positions
	if len(techStackJSON) > 0 {
		_ = json.Unmarshal(techStackJSON, &record.TechStack)
	}
	if len(questionsJSON) > 0 {
		_ = json.Unmarshal(questionsJSON, &record.Questions)
	}
	return &record, nil
}
