// Package uploads ingests patient documents and the clinic logo. Each upload
// reads the source bytes once, archives the raw object in the blob store and
// dispatches the matching state action with a data URL the UI can render
// offline.
package uploads

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"dentsync/internal/blob"
	"dentsync/internal/core"
	"dentsync/pkg/domain"
)

const logoKey = "clinic/logo"

// Uploader owns the blob archive side of document ingestion.
type Uploader struct {
	store  *core.Store
	blobs  blob.Store
	logger core.Logger
	nowFn  func() time.Time
	newID  func() string

	wg sync.WaitGroup
}

// Option customizes an Uploader.
type Option func(*Uploader)

// WithLogger routes ingestion diagnostics to the given logger.
func WithLogger(l core.Logger) Option {
	return func(u *Uploader) { u.logger = l }
}

// WithClock fixes the timestamp and id sources, for tests.
func WithClock(now func() time.Time, newID func() string) Option {
	return func(u *Uploader) {
		u.nowFn = now
		u.newID = newID
	}
}

// New returns an Uploader writing archives to blobs and state to store.
func New(store *core.Store, blobs blob.Store, opts ...Option) *Uploader {
	u := &Uploader{
		store:  store,
		blobs:  blobs,
		logger: core.NoopLogger(),
		nowFn:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// AddPatientDocument ingests one attachment for a patient: the raw bytes are
// archived under patients/<patientID>/documents/<docID> and an AddDocument
// action carries the data URL into state.
func (u *Uploader) AddPatientDocument(ctx context.Context, patientID, name, contentType string, r io.Reader) (domain.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read upload %s: %w", name, err)
	}
	doc := domain.Document{
		ID:         u.newID(),
		Name:       name,
		Type:       contentType,
		Size:       int64(len(data)),
		URL:        dataURL(contentType, data),
		UploadedAt: u.nowFn().Format(time.RFC3339),
	}
	key := path.Join("patients", patientID, "documents", doc.ID)
	if err := u.archive(ctx, key, contentType, data, map[string]string{"filename": name, "patient": patientID}); err != nil {
		return domain.Document{}, err
	}
	u.store.Dispatch(domain.AddDocument{PatientID: patientID, Document: doc})
	return doc, nil
}

// AddPatientDocumentAsync runs AddPatientDocument on its own goroutine. The
// optional done callback receives the outcome; concurrent uploads for the
// same patient append independently.
func (u *Uploader) AddPatientDocumentAsync(ctx context.Context, patientID, name, contentType string, r io.Reader, done func(domain.Document, error)) {
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		doc, err := u.AddPatientDocument(ctx, patientID, name, contentType, r)
		if err != nil {
			u.logger.Error("document upload failed", "patient", patientID, "name", name, "error", err)
		}
		if done != nil {
			done(doc, err)
		}
	}()
}

// SetClinicLogo ingests the clinic logo image and patches the settings with
// its data URL. Each upload archives under a fresh key so older logos stay
// retrievable.
func (u *Uploader) SetClinicLogo(ctx context.Context, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	key := path.Join(logoKey, u.newID())
	if err := u.archive(ctx, key, contentType, data, nil); err != nil {
		return "", err
	}
	url := dataURL(contentType, data)
	u.store.Dispatch(domain.UpdateSettings{Patch: domain.SettingsPatch{ClinicLogo: &url}})
	return url, nil
}

// Wait blocks until all in-flight async uploads complete.
func (u *Uploader) Wait() { u.wg.Wait() }

func (u *Uploader) archive(ctx context.Context, key, contentType string, data []byte, metadata map[string]string) error {
	_, err := u.blobs.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{ContentType: contentType, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("archive blob %s: %w", key, err)
	}
	return nil
}

func dataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
