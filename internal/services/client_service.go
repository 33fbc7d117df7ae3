package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// DefaultRemoteTimeout bounds every best-effort remote call made on a save path
const DefaultRemoteTimeout = 10 * time.Second

// ChangeNotifier is told about every local save (the backup scheduler)
type ChangeNotifier interface {
	Notify()
}

// ClientService owns every client mutation. Each change is written to the local
// store first; the remote copy is updated afterwards on a best-effort basis.
type ClientService struct {
	blobs         ports.BlobStore
	detachers     []func(clientID string)
	mu            sync.Mutex
	notifier      ChangeNotifier
	now           func() time.Time
	owner         func() string
	remote        ports.RemoteStore
	remoteTimeout time.Duration
	search        ports.SearchIndex
	stamp         *SaveStamp
	store         ports.LocalStore
}

// ClientServiceOption configures optional collaborators
type ClientServiceOption func(*ClientService)

// WithBlobStore uploads attachment binaries to a bucket when online
func WithBlobStore(blobs ports.BlobStore) ClientServiceOption {
	return func(s *ClientService) { s.blobs = blobs }
}

// WithSearchIndex keeps a search index current on every save
func WithSearchIndex(index ports.SearchIndex) ClientServiceOption {
	return func(s *ClientService) { s.search = index }
}

// WithChangeNotifier registers the auto-backup trigger
func WithChangeNotifier(n ChangeNotifier) ClientServiceOption {
	return func(s *ClientService) { s.notifier = n }
}

// WithClock overrides time.Now (tests)
func WithClock(now func() time.Time) ClientServiceOption {
	return func(s *ClientService) { s.now = now }
}

// NewClientService creates the service. owner returns the signed-in user id, or
// "" when remote writes should be skipped.
func NewClientService(
	store ports.LocalStore,
	remote ports.RemoteStore,
	stamp *SaveStamp,
	owner func() string,
	opts ...ClientServiceOption,
) *ClientService {
	s := &ClientService{
		now:           time.Now,
		owner:         owner,
		remote:        remote,
		remoteTimeout: DefaultRemoteTimeout,
		stamp:         stamp,
		store:         store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnClientRemoved registers a hook called after a client is closed or deleted
func (s *ClientService) OnClientRemoved(fn func(clientID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachers = append(s.detachers, fn)
}

// Create adds a new active client
func (s *ClientService) Create(ctx context.Context, name string) (domain.Client, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Client{}, errors.New("client name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.NewClient(name, s.now())
	if err := s.saveLocked(ctx, c); err != nil {
		return domain.Client{}, err
	}
	logging.Logger.Info("Client created", "id", c.ID, "name", c.Name)
	return c, nil
}

// Get returns a client with attachment payloads hydrated
func (s *ClientService) Get(ctx context.Context, id string) (domain.Client, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	return s.hydrate(ctx, c)
}

// List returns every client ordered by creation
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	SortClients(clients)
	return clients, nil
}

// Resolve finds a client by exact id, then by case-insensitive name or id prefix
func (s *ClientService) Resolve(ctx context.Context, ref string) (domain.Client, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Client{}, domain.ErrClientNotFound
	}
	if c, err := s.store.GetClient(ctx, ref); err != nil {
		return domain.Client{}, err
	} else if c != nil {
		return *c, nil
	}

	clients, err := s.List(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	var matches []domain.Client
	for _, c := range clients {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Client{}, fmt.Errorf("%w: %s", domain.ErrClientNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Client{}, fmt.Errorf("ambiguous client reference %q matches %d clients", ref, len(matches))
	}
}

// Update loads a client, applies mutate and saves locally and remotely
func (s *ClientService) Update(ctx context.Context, id string, mutate func(*domain.Client) error) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	if err := mutate(&c); err != nil {
		return domain.Client{}, err
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.saveLocked(ctx, c); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

// UpdateLocal applies mutate and persists to the local store only. The tracker
// uses it on every tick; remote copies are refreshed by Push on transitions.
func (s *ClientService) UpdateLocal(ctx context.Context, id string, mutate func(*domain.Client) error) (domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	if err := mutate(&c); err != nil {
		return domain.Client{}, err
	}
	if err := s.store.PutClient(ctx, c); err != nil {
		return domain.Client{}, fmt.Errorf("failed to save client %s: %w", id, err)
	}
	return c, nil
}

// Push sends the current local record to the remote store
func (s *ClientService) Push(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	s.pushRemote(ctx, c)
	return nil
}

// Rename changes the display name
func (s *ClientService) Rename(ctx context.Context, id, name string) (domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Client{}, errors.New("client name is required")
	}
	return s.Update(ctx, id, func(c *domain.Client) error {
		c.Name = name
		return nil
	})
}

// ContactDetails holds the optional contact fields; nil leaves a field unchanged
type ContactDetails struct {
	Company *string
	Email   *string
	Phone   *string
	Tags    []string
}

// SetContact updates contact fields and tags
func (s *ClientService) SetContact(ctx context.Context, id string, details ContactDetails) (domain.Client, error) {
	return s.Update(ctx, id, func(c *domain.Client) error {
		if details.Company != nil {
			c.Company = strings.TrimSpace(*details.Company)
		}
		if details.Email != nil {
			c.Email = strings.TrimSpace(*details.Email)
		}
		if details.Phone != nil {
			c.Phone = strings.TrimSpace(*details.Phone)
		}
		if details.Tags != nil {
			c.Tags = slices.Compact(slices.Sorted(slices.Values(details.Tags)))
		}
		return nil
	})
}

// SetNotes replaces the free-text notes
func (s *ClientService) SetNotes(ctx context.Context, id, notes string) (domain.Client, error) {
	return s.Update(ctx, id, func(c *domain.Client) error {
		c.Notes = notes
		return nil
	})
}

// SetTasks replaces the three task slots
func (s *ClientService) SetTasks(ctx context.Context, id string, tasks domain.Tasks) (domain.Client, error) {
	return s.Update(ctx, id, func(c *domain.Client) error {
		c.Tasks = tasks
		return nil
	})
}

// SetDeliveryDate validates and stores a YYYY-MM-DD date; "" clears it
func (s *ClientService) SetDeliveryDate(ctx context.Context, id, date string) (domain.Client, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := domain.ParseDeliveryDate(date); err != nil {
			return domain.Client{}, err
		}
	}
	return s.Update(ctx, id, func(c *domain.Client) error {
		c.DeliveryDate = date
		return nil
	})
}

// SetStatus moves the client through its workflow. Closing detaches the tracker.
func (s *ClientService) SetStatus(ctx context.Context, id string, status domain.ClientStatus) (domain.Client, error) {
	if !slices.Contains(domain.ValidStatuses, status) {
		return domain.Client{}, fmt.Errorf("unknown status %q", status)
	}
	c, err := s.Update(ctx, id, func(c *domain.Client) error {
		c.SetStatus(status, s.now())
		return nil
	})
	if err != nil {
		return domain.Client{}, err
	}
	if !c.Active {
		s.notifyRemoved(id)
	}
	return c, nil
}

// Close marks the client closed; closed clients accept no accrual
func (s *ClientService) Close(ctx context.Context, id string) (domain.Client, error) {
	return s.SetStatus(ctx, id, domain.StatusClosed)
}

// Reopen makes a closed client active again
func (s *ClientService) Reopen(ctx context.Context, id string) (domain.Client, error) {
	return s.SetStatus(ctx, id, domain.StatusActive)
}

// Delete permanently removes a client with its attachments, locally, in the
// bucket and remotely
func (s *ClientService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	c, err := s.load(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.store.DeleteClient(ctx, id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	s.stamp.Mark()
	s.changed()
	if s.search != nil {
		if err := s.search.DeleteClient(id); err != nil {
			logging.Logger.Debug("Search index delete failed", "id", id, "error", err)
		}
	}

	if owner := s.owner(); owner != "" {
		rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		for _, a := range c.Attachments() {
			s.deleteBlob(rctx, owner, a)
		}
		if err := s.remote.DeleteClient(rctx, owner, id); err != nil {
			logging.Logger.Warn("Remote delete failed", "id", id, "error", err)
		}
		cancel()
	}
	s.mu.Unlock()

	logging.Logger.Info("Client deleted", "id", id)
	s.notifyRemoved(id)
	return nil
}

// AddExtraHours records a manual adjustment of billable time
func (s *ClientService) AddExtraHours(ctx context.Context, id string, hours float64, date, description string) (domain.ExtraHoursEntry, error) {
	entry, err := domain.NewExtraHoursEntry(hours, date, description, s.now())
	if err != nil {
		return domain.ExtraHoursEntry{}, err
	}
	_, err = s.Update(ctx, id, func(c *domain.Client) error {
		c.AddExtraHours(entry)
		return nil
	})
	return entry, err
}

// RemoveExtraHours deletes an adjustment, subtracting exactly what it added
func (s *ClientService) RemoveExtraHours(ctx context.Context, id, entryID string) (domain.ExtraHoursEntry, error) {
	var removed domain.ExtraHoursEntry
	_, err := s.Update(ctx, id, func(c *domain.Client) error {
		entry, err := c.RemoveExtraHours(entryID)
		removed = entry
		return err
	})
	return removed, err
}

// AttachmentInput describes a new attachment
type AttachmentInput struct {
	Comment     string
	ContentType string
	Data        []byte
	Kind        domain.AttachmentKind
	Name        string
}

// AddAttachment stores the payload first, uploads it when possible, then adds the
// descriptor to the client. A crash in between leaves an orphan payload, never a
// descriptor without data.
func (s *ClientService) AddAttachment(ctx context.Context, clientID string, in AttachmentInput) (domain.Attachment, error) {
	if len(in.Data) == 0 {
		return domain.Attachment{}, errors.New("attachment is empty")
	}
	if in.Kind == "" {
		in.Kind = domain.AttachmentFile
		if strings.HasPrefix(in.ContentType, "image/") {
			in.Kind = domain.AttachmentPhoto
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, clientID)
	if err != nil {
		return domain.Attachment{}, err
	}

	a := domain.NewAttachment(clientID, in.Kind, in.Name, in.ContentType, base64.StdEncoding.EncodeToString(in.Data), s.now())
	a.Comment = in.Comment

	if err := s.store.PutAttachment(ctx, a); err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to store attachment: %w", err)
	}

	if owner := s.owner(); owner != "" && s.blobs != nil {
		rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		url, err := s.blobs.Upload(rctx, a.ObjectKey(owner), in.Data, a.ContentType)
		cancel()
		if err != nil {
			logging.Logger.Warn("Attachment upload failed, keeping local copy", "id", a.ID, "error", err)
		} else {
			a.URL = url
			if err := s.store.PutAttachment(ctx, a); err != nil {
				return domain.Attachment{}, fmt.Errorf("failed to store attachment: %w", err)
			}
		}
	}

	if a.Kind == domain.AttachmentPhoto {
		c.Photos = append(c.Photos, a.Descriptor())
	} else {
		c.Files = append(c.Files, a.Descriptor())
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.saveLocked(ctx, c); err != nil {
		return domain.Attachment{}, err
	}
	return a, nil
}

// RemoveAttachment drops the descriptor, the local payload and the bucket object
func (s *ClientService) RemoveAttachment(ctx context.Context, clientID, attachmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, clientID)
	if err != nil {
		return err
	}

	var removed *domain.Attachment
	match := func(a domain.Attachment) bool {
		if a.ID == attachmentID {
			copied := a
			removed = &copied
			return true
		}
		return false
	}
	c.Photos = slices.DeleteFunc(c.Photos, match)
	c.Files = slices.DeleteFunc(c.Files, match)
	if removed == nil {
		return fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, attachmentID)
	}

	c.UpdatedAt = s.now().UTC()
	if err := s.saveLocked(ctx, c); err != nil {
		return err
	}
	if err := s.store.DeleteAttachment(ctx, attachmentID); err != nil {
		logging.Logger.Warn("Failed to delete attachment payload", "id", attachmentID, "error", err)
	}
	if owner := s.owner(); owner != "" {
		rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		s.deleteBlob(rctx, owner, *removed)
		cancel()
	}
	return nil
}

// Attachments returns the client's attachments with payloads hydrated
func (s *ClientService) Attachments(ctx context.Context, clientID string) ([]domain.Attachment, error) {
	c, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return c.Attachments(), nil
}

// AttachmentData decodes the local payload of an attachment
func (s *ClientService) AttachmentData(ctx context.Context, attachmentID string) ([]byte, error) {
	a, err := s.store.GetAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.Data == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, attachmentID)
	}
	return base64.StdEncoding.DecodeString(a.Data)
}

// SweepOrphanBlobs deletes bucket objects that no attachment descriptor points
// to, such as uploads whose descriptor save never completed
func (s *ClientService) SweepOrphanBlobs(ctx context.Context) (int, error) {
	owner := s.owner()
	if s.blobs == nil || owner == "" {
		return 0, nil
	}

	s.mu.Lock()
	clients, err := s.store.ListClients(ctx)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to list clients: %w", err)
	}
	known := make(map[string]bool)
	for _, c := range clients {
		for _, a := range c.Attachments() {
			known[a.ObjectKey(owner)] = true
		}
	}

	keys, err := s.blobs.List(ctx, owner+"/")
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, key := range keys {
		if known[key] {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			return removed, err
		}
		logging.Logger.Info("Orphan attachment object removed", "key", key)
		removed++
	}
	return removed, nil
}

// ApplyRemote merges a remote row into the local record and persists the result
// locally. Nothing is written back to the remote.
func (s *ClientService) ApplyRemote(ctx context.Context, rc domain.RemoteClient) (domain.Client, error) {
	s.mu.Lock()
	local, err := s.store.GetClient(ctx, rc.ID)
	if err != nil {
		s.mu.Unlock()
		return domain.Client{}, fmt.Errorf("failed to load client %s: %w", rc.ID, err)
	}
	merged := MergeClient(&rc, local)
	if err := s.store.PutClient(ctx, *merged); err != nil {
		s.mu.Unlock()
		return domain.Client{}, fmt.Errorf("failed to save client %s: %w", rc.ID, err)
	}
	s.index(*merged)
	s.mu.Unlock()

	if local != nil && local.Active && !merged.Active {
		s.notifyRemoved(merged.ID)
	}
	return *merged, nil
}

// ApplyRemoteDelete removes a client that was deleted on another device
func (s *ClientService) ApplyRemoteDelete(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.store.DeleteClient(ctx, id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	if s.search != nil {
		_ = s.search.DeleteClient(id)
	}
	s.mu.Unlock()

	s.notifyRemoved(id)
	return nil
}

// Restore writes a client from a backup or import, payloads included
func (s *ClientService) Restore(ctx context.Context, c domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Normalize()
	for _, a := range c.Attachments() {
		if a.Data == "" {
			continue
		}
		a.ClientID = c.ID
		if err := s.store.PutAttachment(ctx, a); err != nil {
			return fmt.Errorf("failed to restore attachment %s: %w", a.ID, err)
		}
	}
	return s.saveLocked(ctx, c)
}

// Reindex pushes every client into the search index
func (s *ClientService) Reindex(ctx context.Context) error {
	if s.search == nil {
		return nil
	}
	clients, err := s.List(ctx)
	if err != nil {
		return err
	}
	return s.search.IndexClients(clients)
}

// load returns the stored client or ErrClientNotFound
func (s *ClientService) load(ctx context.Context, id string) (domain.Client, error) {
	c, err := s.store.GetClient(ctx, id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("failed to load client %s: %w", id, err)
	}
	if c == nil {
		return domain.Client{}, fmt.Errorf("%w: %s", domain.ErrClientNotFound, id)
	}
	return *c, nil
}

func (s *ClientService) hydrate(ctx context.Context, c domain.Client) (domain.Client, error) {
	if len(c.Photos) == 0 && len(c.Files) == 0 {
		return c, nil
	}
	payloads, err := s.store.ListAttachmentsByClient(ctx, c.ID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("failed to load attachments: %w", err)
	}
	data := make(map[string]string, len(payloads))
	for _, p := range payloads {
		data[p.ID] = p.Data
	}
	fill := func(list []domain.Attachment) {
		for i := range list {
			if list[i].Data == "" {
				list[i].Data = data[list[i].ID]
			}
		}
	}
	fill(c.Photos)
	fill(c.Files)
	return c, nil
}

// saveLocked persists locally, marks the self-save window, then pushes remotely.
// Caller holds s.mu.
func (s *ClientService) saveLocked(ctx context.Context, c domain.Client) error {
	if err := s.store.PutClient(ctx, c); err != nil {
		return fmt.Errorf("failed to save client %s: %w", c.ID, err)
	}
	s.stamp.Mark()
	s.changed()
	s.index(c)
	s.pushRemote(ctx, c)
	return nil
}

func (s *ClientService) pushRemote(ctx context.Context, c domain.Client) {
	owner := s.owner()
	if owner == "" {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	s.stamp.Mark()
	if err := s.remote.UpsertClient(rctx, c.ToRemote(owner)); err != nil {
		logging.Logger.Warn("Remote save failed, local copy kept", "id", c.ID, "error", err)
	}
}

func (s *ClientService) deleteBlob(ctx context.Context, owner string, a domain.Attachment) {
	if s.blobs == nil || a.URL == "" {
		return
	}
	if err := s.blobs.Delete(ctx, a.ObjectKey(owner)); err != nil {
		logging.Logger.Warn("Attachment object delete failed", "id", a.ID, "error", err)
	}
}

func (s *ClientService) index(c domain.Client) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexClients([]domain.Client{c}); err != nil {
		logging.Logger.Debug("Search index update failed", "id", c.ID, "error", err)
	}
}

func (s *ClientService) changed() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}

func (s *ClientService) notifyRemoved(id string) {
	s.mu.Lock()
	hooks := slices.Clone(s.detachers)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
}
