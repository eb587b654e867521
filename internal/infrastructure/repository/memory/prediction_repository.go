package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/prix-six/internal/domain/prediction"
)

// PredictionRepository keeps submissions nested under their owning account and
// never overwrites an earlier submission.
type PredictionRepository struct {
	mu          sync.RWMutex
	accounts    map[string]prediction.Account
	submissions map[string][]prediction.Submission
}

func NewPredictionRepository(accounts []prediction.Account, submissions map[string][]prediction.Submission) *PredictionRepository {
	repo := &PredictionRepository{
		accounts:    make(map[string]prediction.Account, len(accounts)),
		submissions: make(map[string][]prediction.Submission, len(submissions)),
	}
	for _, item := range accounts {
		repo.accounts[item.UserID] = item
	}
	for userID, items := range submissions {
		for _, item := range items {
			repo.submissions[userID] = append(repo.submissions[userID], cloneSubmission(item))
		}
	}
	return repo
}

func (r *PredictionRepository) ListPredictions(_ context.Context) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userIDs := make([]string, 0, len(r.submissions))
	for userID := range r.submissions {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	out := make([]prediction.Prediction, 0)
	for _, userID := range userIDs {
		account, ok := r.accounts[userID]
		if !ok {
			account = prediction.Account{UserID: userID}
		}
		for _, item := range r.submissions[userID] {
			out = append(out, prediction.FromSubmission(account, item))
		}
	}
	return out, nil
}

func (r *PredictionRepository) AppendSubmission(_ context.Context, userID string, item prediction.Submission) error {
	if userID == "" {
		return fmt.Errorf("append submission: user id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.submissions[userID] = append(r.submissions[userID], cloneSubmission(item))
	return nil
}

func (r *PredictionRepository) UpsertAccount(_ context.Context, account prediction.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.UserID] = account
	return nil
}

func cloneSubmission(item prediction.Submission) prediction.Submission {
	item.Predictions = append([]string(nil), item.Predictions...)
	return item
}
