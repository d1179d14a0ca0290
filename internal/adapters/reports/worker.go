package reports

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"dentsync/internal/blob"
	"dentsync/internal/core"
	"dentsync/pkg/domain"
)

// Kind identifies the artifact a report job produces.
type Kind string

const (
	KindPatientSummary          Kind = "patient_summary"
	KindAppointmentConfirmation Kind = "appointment_confirmation"
	KindAppointmentReminder     Kind = "appointment_reminder"
	KindFinancialCSV            Kind = "financial_csv"
)

// Status describes the lifecycle stage of a report job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Request enqueues one report job. Patient and appointment ids are resolved
// against the state snapshot taken when the job runs.
type Request struct {
	Kind          Kind
	PatientID     string
	AppointmentID string
	Sections      Sections
	Visit         VisitOptions
	RequestedBy   string
}

// Artifact describes a stored report payload.
type Artifact struct {
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record tracks a report job and its resulting artifact.
type Record struct {
	ID          string     `json:"id"`
	Request     Request    `json:"request"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Artifact    *Artifact  `json:"artifact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (r Record) copy() Record {
	cp := r
	if r.Artifact != nil {
		a := *r.Artifact
		cp.Artifact = &a
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		cp.CompletedAt = &t
	}
	return cp
}

// AuditEntry captures audit trail metadata for report jobs.
type AuditEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	Kind       Kind      `json:"kind"`
	Status     Status    `json:"status"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditLogger records report audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// MemoryAuditLog retains audit entries in memory.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// NewMemoryAuditLog returns an empty in-memory audit log.
func NewMemoryAuditLog() *MemoryAuditLog { return &MemoryAuditLog{} }

// Record appends the entry.
func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a snapshot of recorded entries.
func (l *MemoryAuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]AuditEntry(nil), l.entries...)
}

const auditAction = "report_render"

// Worker renders report jobs asynchronously and stores artifacts in the blob
// store under reports/<job id>.
type Worker struct {
	store  *core.Store
	blobs  blob.Store
	audit  AuditLogger
	logger core.Logger
	newID  func() string

	queue chan string
	mu    sync.RWMutex
	jobs  map[string]*Record

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WorkerOption customizes a Worker.
type WorkerOption func(*Worker)

// WithWorkerLogger routes worker diagnostics to the given logger.
func WithWorkerLogger(l core.Logger) WorkerOption {
	return func(w *Worker) { w.logger = l }
}

// WithWorkerIDs fixes the id source, for tests.
func WithWorkerIDs(newID func() string) WorkerOption {
	return func(w *Worker) { w.newID = newID }
}

// NewWorker constructs a report worker reading state from store and writing
// artifacts to blobs. A nil audit logger disables audit recording.
func NewWorker(store *core.Store, blobs blob.Store, audit AuditLogger, opts ...WorkerOption) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		store:  store,
		blobs:  blobs,
		audit:  audit,
		logger: core.NoopLogger(),
		newID:  uuid.NewString,
		queue:  make(chan string, 32),
		jobs:   make(map[string]*Record),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins processing report requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for completion.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case id := <-w.queue:
			w.process(id)
		}
	}
}

// Enqueue schedules a report job and returns the queued record.
func (w *Worker) Enqueue(ctx context.Context, req Request) (Record, error) {
	switch req.Kind {
	case KindPatientSummary:
		if req.PatientID == "" {
			return Record{}, fmt.Errorf("patient id required")
		}
	case KindAppointmentConfirmation, KindAppointmentReminder:
		if req.AppointmentID == "" {
			return Record{}, fmt.Errorf("appointment id required")
		}
	case KindFinancialCSV:
	default:
		return Record{}, fmt.Errorf("unknown report kind %q", req.Kind)
	}

	id := w.newID()
	now := time.Now().UTC()
	record := Record{ID: id, Request: req, Status: StatusQueued, CreatedAt: now, UpdatedAt: now}

	w.mu.Lock()
	w.jobs[id] = &record
	queued := record.copy()
	w.mu.Unlock()

	w.recordAudit(ctx, req.RequestedBy, req.Kind, StatusQueued, "")

	select {
	case w.queue <- id:
	default:
		return Record{}, fmt.Errorf("report queue full")
	}
	return queued, nil
}

// Get returns a snapshot of the report record.
func (w *Worker) Get(id string) (Record, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return Record{}, false
	}
	return record.copy(), true
}

func (w *Worker) process(id string) {
	w.mu.RLock()
	record, ok := w.jobs[id]
	if !ok {
		w.mu.RUnlock()
		return
	}
	req := record.Request
	w.mu.RUnlock()

	w.updateStatus(id, StatusRunning, "")

	payload, contentType, ext, err := w.render(req)
	if err != nil {
		w.fail(id, err.Error())
		return
	}

	key := path.Join("reports", id+ext)
	info, err := w.blobs.Put(w.ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"kind": string(req.Kind), "requested_by": req.RequestedBy},
	})
	if err != nil {
		w.fail(id, fmt.Sprintf("store artifact: %v", err))
		return
	}
	w.complete(id, Artifact{Key: info.Key, ContentType: contentType, SizeBytes: info.Size, URL: info.URL, CreatedAt: info.LastModified})
}

func (w *Worker) render(req Request) (payload []byte, contentType, ext string, err error) {
	state := w.store.State()
	switch req.Kind {
	case KindPatientSummary:
		patient, ok := findPatient(state.Patients, req.PatientID)
		if !ok {
			return nil, "", "", fmt.Errorf("patient %s not found", req.PatientID)
		}
		msg := PatientReportMessage(patient, state.Settings, req.Sections, req.Visit, state.WhatsAppTemplates.PatientReport)
		return []byte(msg), "text/plain; charset=utf-8", ".txt", nil
	case KindAppointmentConfirmation, KindAppointmentReminder:
		appt, ok := findAppointment(state.Appointments, req.AppointmentID)
		if !ok {
			return nil, "", "", fmt.Errorf("appointment %s not found", req.AppointmentID)
		}
		patient, ok := findPatient(state.Patients, appt.PatientID)
		if !ok {
			return nil, "", "", fmt.Errorf("patient %s not found", appt.PatientID)
		}
		tpl := state.WhatsAppTemplates.AppointmentConfirmation
		if req.Kind == KindAppointmentReminder {
			tpl = state.WhatsAppTemplates.AppointmentReminder
		}
		msg := AppointmentConfirmationMessage(appt, patient, state.Settings, tpl)
		return []byte(msg), "text/plain; charset=utf-8", ".txt", nil
	case KindFinancialCSV:
		data, err := FinancialsCSV(state.Transactions)
		if err != nil {
			return nil, "", "", fmt.Errorf("render csv: %w", err)
		}
		return data, "text/csv", ".csv", nil
	default:
		return nil, "", "", fmt.Errorf("unknown report kind %q", req.Kind)
	}
}

func (w *Worker) updateStatus(id string, status Status, message string) {
	now := time.Now().UTC()
	w.mu.Lock()
	var actor string
	var kind Kind
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.Error = message
		record.UpdatedAt = now
		actor = record.Request.RequestedBy
		kind = record.Request.Kind
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, actor, kind, status, message)
}

func (w *Worker) complete(id string, artifact Artifact) {
	now := time.Now().UTC()
	w.mu.Lock()
	var actor string
	var kind Kind
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusSucceeded
		record.Error = ""
		record.Artifact = &artifact
		record.UpdatedAt = now
		record.CompletedAt = &now
		actor = record.Request.RequestedBy
		kind = record.Request.Kind
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, actor, kind, StatusSucceeded, "")
}

func (w *Worker) fail(id, reason string) {
	now := time.Now().UTC()
	w.mu.Lock()
	var actor string
	var kind Kind
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
		actor = record.Request.RequestedBy
		kind = record.Request.Kind
	}
	w.mu.Unlock()
	w.logger.Warn("report job failed", "job", id, "reason", reason)
	w.recordAudit(w.ctx, actor, kind, StatusFailed, reason)
}

func (w *Worker) recordAudit(ctx context.Context, actor string, kind Kind, status Status, note string) {
	if w.audit == nil {
		return
	}
	w.audit.Record(ctx, AuditEntry{
		ID:         w.newID(),
		Action:     auditAction,
		Actor:      actor,
		Kind:       kind,
		Status:     status,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	})
}

func findPatient(patients []domain.Patient, id string) (domain.Patient, bool) {
	for _, p := range patients {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Patient{}, false
}

func findAppointment(appointments []domain.Appointment, id string) (domain.Appointment, bool) {
	for _, a := range appointments {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Appointment{}, false
}
