package services

import (
	"maps"
	"slices"
	"sort"

	"focuswork/internal/domain"
)

// MergeClient combines a remote row with the local record. Neither input is
// mutated and the result shares no memory with them.
//
// The remote wins for the fields it models when it has a value for them (name,
// contact fields, notes, status, tags). The device wins for accrual counters,
// tasks, delivery date, extra hours, state history and attachment payloads.
// Activities keep the larger value per kind. Returns nil when both are nil.
func MergeClient(remote *domain.RemoteClient, local *domain.Client) *domain.Client {
	if remote == nil && local == nil {
		return nil
	}
	if remote == nil {
		out := local.Clone()
		out.Normalize()
		return &out
	}

	var out domain.Client
	if local != nil {
		out = local.Clone()
	} else {
		out = domain.Client{
			Active:    true,
			CreatedAt: remote.CreatedAt,
			ID:        remote.ID,
			Status:    domain.StatusActive,
			UpdatedAt: remote.UpdatedAt,
		}
	}
	out.Normalize()

	overrideString(&out.Name, remote.Name)
	overrideString(&out.Email, remote.Email)
	overrideString(&out.Phone, remote.Phone)
	overrideString(&out.Company, remote.Company)
	overrideString(&out.Notes, remote.Notes)

	if remote.Status != "" {
		out.Status = remote.Status
		out.Active = remote.Status != domain.StatusClosed
	}
	if remote.Tags != nil {
		out.Tags = slices.Clone(remote.Tags)
	}

	for kind, seconds := range remote.Activities {
		if seconds > out.Activities[kind] {
			out.Activities[kind] = seconds
		}
	}

	out.Photos = mergeAttachments(remote.Photos, out.Photos)
	out.Files = mergeAttachments(remote.Files, out.Files)

	if out.CreatedAt.IsZero() {
		out.CreatedAt = remote.CreatedAt
	}
	if remote.UpdatedAt.After(out.UpdatedAt) {
		out.UpdatedAt = remote.UpdatedAt
	}

	return &out
}

// MergeClients merges every remote row with its local counterpart and keeps
// local-only clients. The result is ordered by creation time, then id.
func MergeClients(remotes []domain.RemoteClient, locals []domain.Client) []domain.Client {
	localByID := make(map[string]*domain.Client, len(locals))
	for i := range locals {
		localByID[locals[i].ID] = &locals[i]
	}

	merged := make(map[string]domain.Client, len(remotes)+len(locals))
	for i := range remotes {
		r := &remotes[i]
		if c := MergeClient(r, localByID[r.ID]); c != nil {
			merged[c.ID] = *c
		}
	}
	for i := range locals {
		if _, ok := merged[locals[i].ID]; ok {
			continue
		}
		merged[locals[i].ID] = *MergeClient(nil, &locals[i])
	}

	out := slices.Collect(maps.Values(merged))
	SortClients(out)
	return out
}

// SortClients orders clients by creation time, then id
func SortClients(clients []domain.Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		if !clients[i].CreatedAt.Equal(clients[j].CreatedAt) {
			return clients[i].CreatedAt.Before(clients[j].CreatedAt)
		}
		return clients[i].ID < clients[j].ID
	})
}

// mergeAttachments keeps the remote order, fills payload gaps from the local
// descriptor with the same id and appends local-only descriptors. A nil remote
// list means the remote has no opinion.
func mergeAttachments(remote, local []domain.Attachment) []domain.Attachment {
	if remote == nil {
		return slices.Clone(local)
	}

	localByID := make(map[string]domain.Attachment, len(local))
	for _, a := range local {
		if _, ok := localByID[a.ID]; !ok {
			localByID[a.ID] = a
		}
	}

	seen := make(map[string]bool, len(remote)+len(local))
	out := make([]domain.Attachment, 0, len(remote)+len(local))
	for _, ra := range remote {
		if seen[ra.ID] {
			continue
		}
		seen[ra.ID] = true
		merged := ra
		if la, ok := localByID[ra.ID]; ok {
			if la.Data != "" {
				merged.Data = la.Data
			}
			if merged.URL == "" {
				merged.URL = la.URL
			}
			if merged.ClientID == "" {
				merged.ClientID = la.ClientID
			}
			if merged.ContentType == "" {
				merged.ContentType = la.ContentType
			}
			if merged.Name == "" {
				merged.Name = la.Name
			}
		}
		out = append(out, merged)
	}
	for _, la := range local {
		if seen[la.ID] {
			continue
		}
		seen[la.ID] = true
		out = append(out, la)
	}
	return out
}

func overrideString(dst *string, remote string) {
	if remote != "" {
		*dst = remote
	}
}
