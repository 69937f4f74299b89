// Package authz implements the group-based permission resolution engine.
// Its output, the PermissionContext, is computed once per request and
// threaded through navigation, search, transfer and quota checks; no
// component re-derives permissions on its own.
package authz

import (
	"context"
	"log/slog"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type resolver struct {
	users         repositories.UserRepository
	groups        repositories.GroupRepository
	legacyProfile models.CapabilitySet
	logger        *slog.Logger
}

// NewResolver creates a permission resolver. legacyProfile is the capability
// set applied to users with no active groups (see LoadLegacyDefaults).
func NewResolver(
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	legacyProfile models.CapabilitySet,
	logger *slog.Logger,
) services.PermissionResolver {
	return &resolver{
		users:         users,
		groups:        groups,
		legacyProfile: legacyProfile,
		logger:        logger,
	}
}

// Resolve merges the user's active groups into an effective permission
// context. Merge rules:
//
//   - capabilities: logical OR across groups - any group granting a
//     capability grants it
//   - restriction sets: union across groups, except that one group with an
//     empty (unrestricted) set makes the whole category unrestricted
//   - quotas: least restrictive wins - the maximum non-null limit, and any
//     null (unlimited) overrides all others
//
// role=admin short-circuits everything to unrestricted/unlimited, ignoring
// group data entirely. A user with zero active groups gets the legacy
// profile with no restrictions. The per-user download-enabled flag is a hard
// override applied last: when false it forces the download capability off no
// matter what groups (or the admin short-circuit) granted.
//
// Resolve fails CLOSED: any data-access error yields a context with no
// capabilities and deny-all restrictions instead of an error.
func (r *resolver) Resolve(ctx context.Context, userID int64, role string) *models.PermissionContext {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		r.logger.Error("permission resolution failed, denying all", "user_id", userID, "error", err)
		return deniedContext()
	}

	var pctx *models.PermissionContext
	if role == models.RoleAdmin {
		pctx = adminContext()
	} else {
		groups, err := r.groups.ActiveGroupsForUser(ctx, userID)
		if err != nil {
			r.logger.Error("permission resolution failed, denying all", "user_id", userID, "error", err)
			return deniedContext()
		}
		if len(groups) == 0 {
			pctx = r.legacyContext()
		} else {
			pctx = mergeGroups(groups)
		}
	}

	// Hard per-user override, independent of groups.
	if !user.DownloadEnabled {
		pctx.Capabilities[models.CapDownload] = false
	}

	return pctx
}

func adminContext() *models.PermissionContext {
	caps := make(models.CapabilitySet, len(models.AllCapabilities))
	for _, c := range models.AllCapabilities {
		caps[c] = true
	}
	return &models.PermissionContext{
		Capabilities:  caps,
		Companies:     models.Unrestricted(),
		Departments:   models.Unrestricted(),
		DocumentTypes: models.Unrestricted(),
		DownloadLimit: models.UnlimitedQuota,
		UploadLimit:   models.UnlimitedQuota,
		HasGroups:     true,
		Admin:         true,
	}
}

func (r *resolver) legacyContext() *models.PermissionContext {
	return &models.PermissionContext{
		Capabilities:  r.legacyProfile.Clone(),
		Companies:     models.Unrestricted(),
		Departments:   models.Unrestricted(),
		DocumentTypes: models.Unrestricted(),
		DownloadLimit: models.UnlimitedQuota,
		UploadLimit:   models.UnlimitedQuota,
		HasGroups:     false,
	}
}

func deniedContext() *models.PermissionContext {
	return &models.PermissionContext{
		Capabilities:  models.CapabilitySet{},
		Companies:     models.DenyEverything(),
		Departments:   models.DenyEverything(),
		DocumentTypes: models.DenyEverything(),
		DownloadLimit: models.QuotaOf(0),
		UploadLimit:   models.QuotaOf(0),
	}
}

func mergeGroups(groups []models.Group) *models.PermissionContext {
	caps := make(models.CapabilitySet, len(models.AllCapabilities))
	for _, g := range groups {
		for c, granted := range g.Capabilities {
			if granted {
				caps[c] = true
			}
		}
	}

	pctx := &models.PermissionContext{
		Capabilities:  caps,
		Companies:     mergeRestriction(groups, func(g *models.Group) []int64 { return g.Restrictions.Companies }),
		Departments:   mergeRestriction(groups, func(g *models.Group) []int64 { return g.Restrictions.Departments }),
		DocumentTypes: mergeRestriction(groups, func(g *models.Group) []int64 { return g.Restrictions.DocumentTypes }),
		DownloadLimit: mergeQuota(groups, func(g *models.Group) *int { return g.DownloadLimit }),
		UploadLimit:   mergeQuota(groups, func(g *models.Group) *int { return g.UploadLimit }),
		HasGroups:     true,
	}
	return pctx
}

// mergeRestriction unions the groups' allow-lists for one category. A single
// group with an empty set for the category makes the merged result
// unrestricted - restrictions are monotonic unions, never intersections.
func mergeRestriction(groups []models.Group, pick func(*models.Group) []int64) models.Restriction {
	union := make(map[int64]struct{})
	for i := range groups {
		ids := pick(&groups[i])
		if len(ids) == 0 {
			return models.Unrestricted()
		}
		for _, id := range ids {
			union[id] = struct{}{}
		}
	}
	if len(union) == 0 {
		return models.Unrestricted()
	}
	return models.Restriction{IDs: union}
}

// mergeQuota takes the least restrictive quota across groups: any nil
// (unlimited) wins, otherwise the maximum limit.
func mergeQuota(groups []models.Group, pick func(*models.Group) *int) models.Quota {
	merged := models.Quota{}
	seen := false
	for i := range groups {
		limit := pick(&groups[i])
		if limit == nil {
			return models.UnlimitedQuota
		}
		if !seen || *limit > merged.Max {
			merged = models.QuotaOf(*limit)
			seen = true
		}
	}
	if !seen {
		return models.UnlimitedQuota
	}
	return merged
}
