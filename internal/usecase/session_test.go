package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
	"resume-builder/pkg/logger"
)

type fakeStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]domain.Record
	saves   int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[uuid.UUID]domain.Record)}
}

func (f *fakeStore) Save(ctx context.Context, rec *domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	f.records[rec.ID] = *rec
	f.saves++
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &rec, nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func newTestManager(t *testing.T, store *fakeStore, check AuthCheck, interval time.Duration) *Manager {
	t.Helper()
	if interval == 0 {
		interval = time.Hour
	}
	return NewManager(store, check, interval, logger.NewNop())
}

func openSession(t *testing.T, m *Manager, userID uuid.UUID) *Session {
	t.Helper()
	s, err := m.Open(context.Background(), userID, "jti-test", nil, domain.TemplateSimple)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close(s.ID, userID) })
	return s
}

func TestCommit_MarksCompleteAndAdvances(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	res, err := s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane Doe","jobTitle":"Engineer"}`))
	require.NoError(t, err)

	assert.Equal(t, "Personal information saved!", res.Message)
	assert.Equal(t, domain.SectionSummary, res.ActiveSection)
	assert.True(t, res.Progress[domain.SectionPersonal])
	assert.False(t, res.Progress[domain.SectionSummary])

	doc := s.Document()
	assert.Equal(t, "Jane Doe", doc.Personal.FullName)
	assert.Equal(t, "Jane Doe's Resume", doc.Title())
}

func TestCommit_EmptyValueStillCompletes(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	res, err := s.Commit(domain.SectionExperience, []byte(`[]`))
	require.NoError(t, err)

	assert.True(t, res.Progress[domain.SectionExperience])
	assert.Equal(t, domain.SectionEducation, res.ActiveSection)
	emptyDoc := s.Document()
	assert.True(t, emptyDoc.Empty())
}

func TestCommit_LastSectionStaysActive(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	res, err := s.Commit(domain.SectionProjects, []byte(`[{"name":"CLI tool","startDate":"2024-01"}]`))
	require.NoError(t, err)
	assert.Equal(t, domain.SectionProjects, res.ActiveSection)
}

func TestCommit_LastWritePerSectionWins(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	_, err := s.Commit(domain.SectionSummary, []byte(`"first draft"`))
	require.NoError(t, err)
	_, err = s.Commit(domain.SectionSummary, []byte(`"second draft"`))
	require.NoError(t, err)

	assert.Equal(t, "second draft", s.Document().Summary)
}

func TestCommit_RejectsUnknownSectionAndBadPayload(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	_, err := s.Commit(domain.Section("hobbies"), []byte(`[]`))
	assert.Error(t, err)

	// Unknown fields are rejected, and the document stays untouched.
	_, err = s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane","nickname":"JD"}`))
	assert.Error(t, err)
	emptyDoc := s.Document()
	assert.True(t, emptyDoc.Empty())
	assert.False(t, s.Snapshot().Progress[domain.SectionPersonal])
}

func TestCommit_AssignsEntryIDs(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	_, err := s.Commit(domain.SectionExperience, []byte(`[{"company":"Acme","position":"Dev","startDate":"2020-01"}]`))
	require.NoError(t, err)

	doc := s.Document()
	require.Len(t, doc.Experience, 1)
	assert.NotEmpty(t, doc.Experience[0].ID)
}

func TestApplyGeneratedSummary_ReturnsToSummary(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	_, err := s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane Doe"}`))
	require.NoError(t, err)
	require.Equal(t, domain.SectionSummary, s.Snapshot().ActiveSection)

	res := s.ApplyGeneratedSummary("A seasoned engineer.")
	assert.Equal(t, domain.SectionSummary, res.ActiveSection)
	assert.True(t, res.Progress[domain.SectionSummary])
	assert.Equal(t, "A seasoned engineer.", s.Document().Summary)
}

func TestSetTemplate(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	s := openSession(t, m, uuid.New())

	require.NoError(t, s.SetTemplate(domain.TemplateModern))
	assert.Equal(t, domain.TemplateModern, s.Template())

	assert.Error(t, s.SetTemplate(domain.TemplateID("fancy")))
	assert.Equal(t, domain.TemplateModern, s.Template())
}

func TestManagerSave_CreatesThenOverwrites(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(t, store, nil, 0)
	userID := uuid.New()
	s := openSession(t, m, userID)

	_, err := s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane Doe"}`))
	require.NoError(t, err)

	id, err := m.Save(context.Background(), s)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	rec, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe's Resume", rec.Title)
	assert.Equal(t, userID, rec.UserID)

	// Second save targets the same row and overwrites it.
	_, err = s.Commit(domain.SectionSummary, []byte(`"Engineer with ten years in."`))
	require.NoError(t, err)
	id2, err := m.Save(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	rec, err = store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Engineer with ten years in.", rec.Content.Summary)
	assert.Equal(t, 2, store.saveCount())
}

func TestManagerSave_RejectsInvalidDocument(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(t, store, nil, 0)
	s := openSession(t, m, uuid.New())

	// Entry ids are required by the stored-document schema; an empty one
	// must never reach the store.
	s.mu.Lock()
	s.doc.Experience = []domain.Experience{{Company: "Acme", Position: "Dev", StartDate: "2020-01"}}
	s.mu.Unlock()

	_, err := m.Save(context.Background(), s)
	assert.Error(t, err)
	assert.Equal(t, 0, store.saveCount())
}

func TestManagerOpen_HydratesExistingResume(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	recID := uuid.New()
	store.records[recID] = domain.Record{
		ID:     recID,
		UserID: userID,
		Title:  "Jane Doe's Resume",
		Content: domain.Document{
			Personal: domain.Personal{FullName: "Jane Doe"},
			Summary:  "Engineer.",
		},
		TemplateID: domain.TemplateModern,
	}

	m := newTestManager(t, store, nil, 0)
	s, err := m.Open(context.Background(), userID, "jti-test", &recID, "")
	require.NoError(t, err)
	defer m.Close(s.ID, userID)

	st := s.Snapshot()
	assert.Equal(t, "Jane Doe", st.Document.Personal.FullName)
	assert.Equal(t, domain.TemplateModern, st.TemplateID)
	assert.Equal(t, domain.SectionPersonal, st.ActiveSection)
	require.NotNil(t, st.ResumeID)
	assert.Equal(t, recID, *st.ResumeID)

	// Completion is recomputed from which sections hold content.
	assert.True(t, st.Progress[domain.SectionPersonal])
	assert.True(t, st.Progress[domain.SectionSummary])
	assert.False(t, st.Progress[domain.SectionExperience])
}

func TestManagerOpen_RejectsForeignResume(t *testing.T) {
	store := newFakeStore()
	recID := uuid.New()
	store.records[recID] = domain.Record{ID: recID, UserID: uuid.New()}

	m := newTestManager(t, store, nil, 0)
	_, err := m.Open(context.Background(), uuid.New(), "jti-test", &recID, "")
	assert.Error(t, err)
}

func TestManagerGet_OwnershipAndLifecycle(t *testing.T) {
	m := newTestManager(t, newFakeStore(), nil, 0)
	userID := uuid.New()
	s := openSession(t, m, userID)

	got, err := m.Get(s.ID, userID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get(s.ID, uuid.New())
	assert.Error(t, err)

	require.NoError(t, m.Close(s.ID, userID))
	_, err = m.Get(s.ID, userID)
	assert.Error(t, err)
}

func TestAutosave_SkipsEmptyDocument(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(t, store, nil, 10*time.Millisecond)
	s := openSession(t, m, uuid.New())
	_ = s

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())
}

func TestAutosave_SkipsWhenAuthSessionGone(t *testing.T) {
	store := newFakeStore()
	var live atomic.Bool
	check := func(ctx context.Context, jti string) bool { return live.Load() }

	m := newTestManager(t, store, check, 10*time.Millisecond)
	s := openSession(t, m, uuid.New())
	_, err := s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane Doe"}`))
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())

	live.Store(true)
	require.Eventually(t, func() bool { return store.saveCount() > 0 },
		time.Second, 10*time.Millisecond)
}

func TestAutosave_FailureLeavesStateIntact(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("db down")
	m := newTestManager(t, store, nil, 10*time.Millisecond)
	s := openSession(t, m, uuid.New())
	_, err := s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane Doe"}`))
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "Jane Doe", s.Document().Personal.FullName)
	assert.Nil(t, s.Snapshot().ResumeID)
}

func TestAutosave_StopsOnClose(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(t, store, nil, 10*time.Millisecond)
	userID := uuid.New()
	s, err := m.Open(context.Background(), userID, "jti-test", nil, domain.TemplateSimple)
	require.NoError(t, err)
	_, err = s.Commit(domain.SectionPersonal, []byte(`{"fullName":"Jane Doe"}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return store.saveCount() > 0 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, m.Close(s.ID, userID))
	before := store.saveCount()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, before, store.saveCount())
}
