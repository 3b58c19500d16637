package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"
)

// ResumeStore is the persistence adapter the builder writes through.
type ResumeStore interface {
	Save(ctx context.Context, rec *domain.Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
}

// commitMessages are the per-section confirmations surfaced to the user on
// every successful commit.
var commitMessages = map[domain.Section]string{
	domain.SectionPersonal:       "Personal information saved!",
	domain.SectionSummary:        "Professional summary saved!",
	domain.SectionExperience:     "Work experience saved!",
	domain.SectionEducation:      "Education saved!",
	domain.SectionSkills:         "Skills saved!",
	domain.SectionCertifications: "Certifications saved!",
	domain.SectionProjects:       "Projects saved!",
}

// Session is one editing session over a single resume document: it merges
// committed section values, tracks per-section completion, and owns the
// in-memory document between saves. The remote store is the only durability
// boundary.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
	JTI    string

	mu       sync.Mutex
	doc      domain.Document
	progress map[domain.Section]bool
	active   domain.Section
	template domain.TemplateID
	resumeID uuid.UUID // zero until first save of a new resume

	stop     chan struct{}
	stopOnce sync.Once
}

// State is a point-in-time snapshot of a session.
type State struct {
	Document      domain.Document          `json:"document"`
	Progress      map[domain.Section]bool  `json:"progress"`
	ActiveSection domain.Section           `json:"activeSection"`
	TemplateID    domain.TemplateID        `json:"templateId"`
	ResumeID      *uuid.UUID               `json:"resumeId,omitempty"`
}

type CommitResult struct {
	Message       string                  `json:"message"`
	ActiveSection domain.Section          `json:"activeSection"`
	Progress      map[domain.Section]bool `json:"progress"`
}

func newProgress() map[domain.Section]bool {
	p := make(map[domain.Section]bool, len(domain.SectionOrder))
	for _, s := range domain.SectionOrder {
		p[s] = false
	}
	return p
}

func copyProgress(p map[domain.Section]bool) map[domain.Section]bool {
	out := make(map[domain.Section]bool, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Commit decodes and merges one section's submitted value. The only gate is
// that the value was submitted: empty values are accepted and still mark the
// section complete. The active section advances to the fixed successor; the
// last commit per key always wins.
func (s *Session) Commit(section domain.Section, raw []byte) (CommitResult, error) {
	if !section.Valid() {
		return CommitResult{}, apperror.NewInvalidInput("unknown section "+string(section), nil)
	}
	value, err := model.DecodeSection(section, raw)
	if err != nil {
		return CommitResult{}, apperror.NewInvalidInput("malformed section payload", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value.Apply(&s.doc)
	s.progress[section] = true
	s.active = section.Next()

	return CommitResult{
		Message:       commitMessages[section],
		ActiveSection: s.active,
		Progress:      copyProgress(s.progress),
	}, nil
}

// ApplyGeneratedSummary commits an AI-generated summary and moves the active
// section back to summary so the user can review it.
func (s *Session) ApplyGeneratedSummary(text string) CommitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Summary = text
	s.progress[domain.SectionSummary] = true
	s.active = domain.SectionSummary

	return CommitResult{
		Message:       commitMessages[domain.SectionSummary],
		ActiveSection: s.active,
		Progress:      copyProgress(s.progress),
	}
}

func (s *Session) SetTemplate(t domain.TemplateID) error {
	if !t.Valid() {
		return apperror.NewInvalidInput("unknown template id "+string(t), nil)
	}
	s.mu.Lock()
	s.template = t
	s.mu.Unlock()
	return nil
}

func (s *Session) SetActive(section domain.Section) error {
	if !section.Valid() {
		return apperror.NewInvalidInput("unknown section "+string(section), nil)
	}
	s.mu.Lock()
	s.active = section
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current session state. Section slices are replaced
// wholesale on commit and never mutated in place, so sharing them is safe.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Document:      s.doc,
		Progress:      copyProgress(s.progress),
		ActiveSection: s.active,
		TemplateID:    s.template,
	}
	if s.resumeID != uuid.Nil {
		id := s.resumeID
		st.ResumeID = &id
	}
	return st
}

// Document returns the current document value.
func (s *Session) Document() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *Session) Template() domain.TemplateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// hydrate loads a stored record into the session and recomputes completion
// flags from which sections are non-empty. The active section is left at the
// start of the wizard.
func (s *Session) hydrate(rec *domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = rec.Content
	s.resumeID = rec.ID
	if rec.TemplateID.Valid() {
		s.template = rec.TemplateID
	}
	for _, sec := range domain.SectionOrder {
		s.progress[sec] = !s.doc.SectionEmpty(sec)
	}
}

// save writes the full document through the store: create on first save,
// unconditional overwrite afterwards. Manual save and the auto-save tick are
// the same operation, so the two racing is last-write-wins by construction.
func (s *Session) save(ctx context.Context, store ResumeStore) (uuid.UUID, error) {
	s.mu.Lock()
	rec := domain.Record{
		ID:         s.resumeID,
		UserID:     s.UserID,
		Title:      s.doc.Title(),
		Content:    s.doc,
		TemplateID: s.template,
	}
	s.mu.Unlock()

	if err := model.ValidateDocument(&rec.Content); err != nil {
		return uuid.Nil, apperror.NewInvalidInput("resume document failed validation", err)
	}
	if err := store.Save(ctx, &rec); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	if s.resumeID == uuid.Nil {
		s.resumeID = rec.ID
	}
	s.mu.Unlock()
	return rec.ID, nil
}

func (s *Session) close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// AuthCheck reports whether the auth session backing a builder session is
// still live. Auto-save ticks are skipped when it is not.
type AuthCheck func(ctx context.Context, jti string) bool

// Manager owns the open builder sessions and their auto-save loops.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	store     ResumeStore
	authCheck AuthCheck
	interval  time.Duration
	log       logger.Logger
}

func NewManager(store ResumeStore, authCheck AuthCheck, interval time.Duration, log logger.Logger) *Manager {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Manager{
		sessions:  make(map[uuid.UUID]*Session),
		store:     store,
		authCheck: authCheck,
		interval:  interval,
		log:       log,
	}
}

// Open starts a builder session: a fresh empty document, or one hydrated
// from the store when resumeID is given. The auto-save loop is armed on open
// and disarmed on Close.
func (m *Manager) Open(ctx context.Context, userID uuid.UUID, jti string, resumeID *uuid.UUID, template domain.TemplateID) (*Session, error) {
	if template == "" {
		template = domain.TemplateSimple
	}
	if !template.Valid() {
		return nil, apperror.NewInvalidInput("unknown template id "+string(template), nil)
	}

	s := &Session{
		ID:       uuid.New(),
		UserID:   userID,
		JTI:      jti,
		progress: newProgress(),
		active:   domain.SectionPersonal,
		template: template,
		stop:     make(chan struct{}),
	}

	if resumeID != nil {
		rec, err := m.store.GetByID(ctx, *resumeID)
		if err != nil {
			return nil, err
		}
		if rec.UserID != userID {
			return nil, apperror.NewPermissionDenied("resume belongs to another user")
		}
		s.hydrate(rec)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	go m.autosaveLoop(s)
	return s, nil
}

func (m *Manager) Get(sessionID, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, apperror.NewNotFound("builder session", sessionID.String())
	}
	if s.UserID != userID {
		return nil, apperror.NewPermissionDenied("builder session belongs to another user")
	}
	return s, nil
}

// Save is the manual save action; it shares the write path with auto-save.
func (m *Manager) Save(ctx context.Context, s *Session) (uuid.UUID, error) {
	return s.save(ctx, m.store)
}

func (m *Manager) Close(sessionID, userID uuid.UUID) error {
	s, err := m.Get(sessionID, userID)
	if err != nil {
		return err
	}
	s.close()
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// autosaveLoop writes the full document on a fixed wall-clock interval. A
// tick is skipped while the document is empty or the user's auth session is
// gone; failures abandon the tick and leave in-memory state unchanged.
func (m *Manager) autosaveLoop(s *Session) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			doc := s.Document()
			if doc.Empty() {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if m.authCheck != nil && !m.authCheck(ctx, s.JTI) {
				cancel()
				continue
			}
			if _, err := s.save(ctx, m.store); err != nil {
				m.log.Warn("auto-save failed", zap.String("session_id", s.ID.String()), zap.Error(err))
			}
			cancel()
		}
	}
}
