package files

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/store"
)

// AuditLog is the slice of the audit service the file store needs.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Service stores photos and receipts per project. Each project gets its own
// collection key so one large gallery never slows down another project.
type Service struct {
	st     store.Store
	trail  AuditLog
	logger *slog.Logger
	idFn   func() string
	nowFn  func() time.Time

	mu sync.Mutex
}

// NewService creates the file metadata service.
func NewService(st store.Store, trail AuditLog, logger *slog.Logger) *Service {
	return &Service{
		st:     st,
		trail:  trail,
		logger: logger,
		idFn:   uuid.NewString,
		nowFn:  time.Now,
	}
}

// SetIDFunc overrides id generation, used by tests.
func (s *Service) SetIDFunc(fn func() string) { s.idFn = fn }

// SetNowFunc overrides the clock, used by tests.
func (s *Service) SetNowFunc(fn func() time.Time) { s.nowFn = fn }

// Photos returns all photos for a project, newest first.
func (s *Service) Photos(ctx context.Context, projectID string) []Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadPhotos(ctx, projectID)
}

// AddPhoto stores a photo under the project's gallery.
func (s *Service) AddPhoto(ctx context.Context, projectID string, p Photo) Photo {
	now := s.nowFn()
	p.ID = s.idFn()
	p.ProjectID = projectID
	if p.OriginalName == "" {
		p.OriginalName = p.FileName
	}
	p.FileName = UniqueName(p.OriginalName, now)
	p.UploadedAt = now
	if p.Category == "" {
		p.Category = PhotoOther
	}

	s.mu.Lock()
	photos := append([]Photo{p}, s.loadPhotos(ctx, projectID)...)
	s.save(ctx, store.PrefixPhotos+projectID, photos)
	s.mu.Unlock()

	s.trail.Record(ctx, "Photo Uploaded",
		fmt.Sprintf("Photo %s added to project %s", p.FileName, projectID),
		audit.CategoryFile, audit.SeverityInfo)
	return p
}

// DeletePhoto removes a photo by id; missing ids are a no-op.
func (s *Service) DeletePhoto(ctx context.Context, projectID, photoID string) {
	s.mu.Lock()
	photos := s.loadPhotos(ctx, projectID)
	kept := photos[:0]
	for _, p := range photos {
		if p.ID != photoID {
			kept = append(kept, p)
		}
	}
	s.save(ctx, store.PrefixPhotos+projectID, kept)
	s.mu.Unlock()

	s.trail.Record(ctx, "Photo Deleted",
		fmt.Sprintf("Photo %s removed from project %s", photoID, projectID),
		audit.CategoryFile, audit.SeverityInfo)
}

// Receipts returns all receipts for a project, newest first.
func (s *Service) Receipts(ctx context.Context, projectID string) []Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadReceipts(ctx, projectID)
}

// AddReceipt stores a receipt under the project.
func (s *Service) AddReceipt(ctx context.Context, projectID string, r Receipt) Receipt {
	now := s.nowFn()
	r.ID = s.idFn()
	r.ProjectID = projectID
	if r.OriginalName == "" {
		r.OriginalName = r.FileName
	}
	r.FileName = UniqueName(r.OriginalName, now)
	r.UploadedAt = now
	if r.Category == "" {
		r.Category = ReceiptOther
	}

	s.mu.Lock()
	receipts := append([]Receipt{r}, s.loadReceipts(ctx, projectID)...)
	s.save(ctx, store.PrefixReceipts+projectID, receipts)
	s.mu.Unlock()

	s.trail.Record(ctx, "Receipt Uploaded",
		fmt.Sprintf("Receipt %s added to project %s", r.FileName, projectID),
		audit.CategoryFile, audit.SeverityInfo)
	return r
}

// DeleteReceipt removes a receipt by id; missing ids are a no-op.
func (s *Service) DeleteReceipt(ctx context.Context, projectID, receiptID string) {
	s.mu.Lock()
	receipts := s.loadReceipts(ctx, projectID)
	kept := receipts[:0]
	for _, r := range receipts {
		if r.ID != receiptID {
			kept = append(kept, r)
		}
	}
	s.save(ctx, store.PrefixReceipts+projectID, kept)
	s.mu.Unlock()

	s.trail.Record(ctx, "Receipt Deleted",
		fmt.Sprintf("Receipt %s removed from project %s", receiptID, projectID),
		audit.CategoryFile, audit.SeverityInfo)
}

// PurgeProject drops all stored files for a deleted project.
func (s *Service) PurgeProject(ctx context.Context, projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{store.PrefixPhotos + projectID, store.PrefixReceipts + projectID} {
		if err := s.st.Delete(ctx, key); err != nil {
			s.logger.Error("failed to purge project files", "key", key, "error", err)
		}
	}
}

func (s *Service) loadPhotos(ctx context.Context, projectID string) []Photo {
	var photos []Photo
	if err := s.st.Load(ctx, store.PrefixPhotos+projectID, &photos); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("failed to load photos", "projectId", projectID, "error", err)
	}
	return photos
}

func (s *Service) loadReceipts(ctx context.Context, projectID string) []Receipt {
	var receipts []Receipt
	if err := s.st.Load(ctx, store.PrefixReceipts+projectID, &receipts); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("failed to load receipts", "projectId", projectID, "error", err)
	}
	return receipts
}

func (s *Service) save(ctx context.Context, key string, value any) {
	if err := s.st.Save(ctx, key, value); err != nil {
		s.logger.Error("failed to save collection", "key", key, "error", err)
	}
}
