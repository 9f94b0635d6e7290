package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"evervoice_backend/internal/clients"
	"evervoice_backend/internal/models"
	"evervoice_backend/internal/repositories"
)

// Hand-rolled in-memory fakes for the repository and client interfaces.
// Shared by the service tests in this package.

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	return err == nil, nil
}

func (m *mockUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(userID string) error {
	delete(m.users, userID)
	return nil
}

type mockProfileRepo struct {
	profiles  map[string]*models.MemoryProfile // keyed by user id
	saveCalls int
	saveErr   error
}

func newMockProfileRepo(profiles ...*models.MemoryProfile) *mockProfileRepo {
	m := &mockProfileRepo{profiles: map[string]*models.MemoryProfile{}}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *mockProfileRepo) FindByUserID(userID string) (*models.MemoryProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepo) Save(profile *models.MemoryProfile) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

type mockUsageRepo struct {
	used        map[string]int // userID|date -> chars
	marks       map[string]time.Time
	upsertCalls int
	getErr      error
	addErr      error
}

func newMockUsageRepo() *mockUsageRepo {
	return &mockUsageRepo{
		used:  map[string]int{},
		marks: map[string]time.Time{},
	}
}

func usageKey(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func (m *mockUsageRepo) GetUsedChars(userID string, day time.Time) (int, error) {
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.used[usageKey(userID, day)], nil
}

func (m *mockUsageRepo) AddUsedChars(userID string, day time.Time, n, limit int) (int, error) {
	if m.addErr != nil {
		return 0, m.addErr
	}
	k := usageKey(userID, day)
	if m.used[k]+n > limit {
		return 0, repositories.ErrDailyBudgetExceeded
	}
	m.used[k] += n
	return m.used[k], nil
}

func (m *mockUsageRepo) FindLastGenerated(userID string) (*models.VideoLastGenerated, error) {
	at, ok := m.marks[userID]
	if !ok {
		return nil, repositories.ErrNoGenerationMark
	}
	return &models.VideoLastGenerated{UserID: userID, LastGeneratedAt: at}, nil
}

func (m *mockUsageRepo) UpsertLastGenerated(userID string, at time.Time) error {
	m.upsertCalls++
	m.marks[userID] = at
	return nil
}

type mockJobRepo struct {
	jobs        map[string]*models.VideoJob // keyed by provider job id
	updateCalls int
	createErr   error
}

func newMockJobRepo(jobs ...*models.VideoJob) *mockJobRepo {
	m := &mockJobRepo{jobs: map[string]*models.VideoJob{}}
	for _, j := range jobs {
		m.jobs[j.ProviderJobID] = j
	}
	return m
}

func (m *mockJobRepo) Create(job *models.VideoJob) error {
	if m.createErr != nil {
		return m.createErr
	}
	if job.ID == "" {
		job.ID = "job-" + job.ProviderJobID
	}
	m.jobs[job.ProviderJobID] = job
	return nil
}

func (m *mockJobRepo) FindByProviderJobID(providerJobID, userID string) (*models.VideoJob, error) {
	j, ok := m.jobs[providerJobID]
	if !ok || j.UserID != userID {
		return nil, repositories.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *mockJobRepo) UpdateStatus(id string, status models.JobStatus, resultURL string) error {
	m.updateCalls++
	for _, j := range m.jobs {
		if j.ID == id {
			j.Status = status
			j.ResultURL = resultURL
			return nil
		}
	}
	return repositories.ErrJobNotFound
}

type mockSpeech struct {
	audio       []byte
	ttsErr      error
	ttsCalls    int
	lastVoiceID string
	lastText    string

	voiceID     string
	createErr   error
	createCalls int
}

func (m *mockSpeech) TTS(_ context.Context, voiceID, text string) ([]byte, error) {
	m.ttsCalls++
	m.lastVoiceID = voiceID
	m.lastText = text
	if m.ttsErr != nil {
		return nil, m.ttsErr
	}
	return m.audio, nil
}

func (m *mockSpeech) CreateVoice(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.voiceID, nil
}

type mockAvatar struct {
	submitResult *clients.SubmitResult
	submitErr    error
	submitCalls  int
	lastSubmit   clients.SubmitInput

	statusResult *clients.StatusResult
	statusErr    error
	queryCalls   int
}

func (m *mockAvatar) Name() string { return "mock" }

func (m *mockAvatar) Submit(_ context.Context, in clients.SubmitInput) (*clients.SubmitResult, error) {
	m.submitCalls++
	m.lastSubmit = in
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submitResult, nil
}

func (m *mockAvatar) QueryStatus(_ context.Context, _ string) (*clients.StatusResult, error) {
	m.queryCalls++
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.statusResult, nil
}

type mockLLM struct {
	reply string
	err   error
	calls int
}

func (m *mockLLM) Chat(_ context.Context, _ string, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

type mockStorage struct {
	saved   map[string][]byte
	saveErr error
	keys    []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: map[string][]byte{}}
}

func (m *mockStorage) Save(_ context.Context, key string, reader io.Reader, _ string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.saved[key] = b
	m.keys = append(m.keys, key)
	return nil
}

func (m *mockStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (m *mockStorage) GetSignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.test/" + key + "?sig=abc", nil
}

// fixedQuota builds a quotaService with a mock usage repo and a frozen
// clock for deterministic day math.
func fixedQuota(usage *mockUsageRepo, at time.Time) *quotaService {
	return &quotaService{
		usageRepo: usage,
		now:       func() time.Time { return at },
	}
}
