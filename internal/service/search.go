package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type searchEngine struct {
	companies   repositories.CompanyRepository
	departments repositories.DepartmentRepository
	folders     repositories.FolderRepository
	documents   repositories.DocumentRepository
	logger      *slog.Logger
}

// NewSearchEngine creates the cross-entity search service.
func NewSearchEngine(
	companies repositories.CompanyRepository,
	departments repositories.DepartmentRepository,
	folders repositories.FolderRepository,
	documents repositories.DocumentRepository,
	logger *slog.Logger,
) services.SearchEngine {
	return &searchEngine{
		companies:   companies,
		departments: departments,
		folders:     folders,
		documents:   documents,
		logger:      logger,
	}
}

// Search runs four independent restriction-filtered queries and concatenates
// the hits in fixed type order: company, department, folder, document. Each
// group arrives name-sorted from its repository; the ordering across groups
// is deliberate and carries no relevance semantics.
func (s *searchEngine) Search(ctx context.Context, pctx *models.PermissionContext, term string) ([]models.Item, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Item{}, nil
	}
	if !pctx.Can(models.CapView) || pctx.Companies.DenyAll {
		return []models.Item{}, nil
	}

	crumbs := newBreadcrumbCache(s.companies, s.departments, s.folders)
	var items []models.Item

	companies, err := s.companies.Search(ctx, term, pctx.Companies.AllowedIDs())
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	for i := range companies {
		item := companyItem(&companies[i])
		item.Location = companies[i].Name
		items = append(items, item)
	}

	if !pctx.Departments.DenyAll {
		departments, err := s.departments.Search(ctx, term, pctx.Companies.AllowedIDs(), pctx.Departments.AllowedIDs())
		if err != nil {
			return nil, fmt.Errorf("search departments: %w", err)
		}
		for i := range departments {
			d := &departments[i]
			item := departmentItem(d)
			item.Location = crumbs.join(ctx, crumbs.companyName(ctx, d.CompanyID), d.Name)
			items = append(items, item)
		}

		folders, err := s.folders.Search(ctx, term, pctx.Companies.AllowedIDs(), pctx.Departments.AllowedIDs())
		if err != nil {
			return nil, fmt.Errorf("search folders: %w", err)
		}
		for i := range folders {
			f := &folders[i]
			item := folderItem(f)
			item.Location = crumbs.join(ctx,
				crumbs.companyName(ctx, f.CompanyID),
				crumbs.departmentName(ctx, f.DepartmentID),
				f.Name,
			)
			items = append(items, item)
		}

		if !pctx.DocumentTypes.DenyAll {
			documents, err := s.documents.Search(ctx, term, repositories.DocumentSearchFilter{
				Companies:     pctx.Companies.AllowedIDs(),
				Departments:   pctx.Departments.AllowedIDs(),
				DocumentTypes: pctx.DocumentTypes.AllowedIDs(),
			})
			if err != nil {
				return nil, fmt.Errorf("search documents: %w", err)
			}
			for i := range documents {
				d := &documents[i]
				item := documentItem(d)
				parts := []string{crumbs.companyName(ctx, d.CompanyID)}
				if d.DepartmentID != nil {
					parts = append(parts, crumbs.departmentName(ctx, *d.DepartmentID))
				}
				if d.FolderID != nil {
					parts = append(parts, crumbs.folderName(ctx, *d.FolderID))
				}
				parts = append(parts, d.Name)
				item.Location = crumbs.join(ctx, parts...)
				items = append(items, item)
			}
		}
	}

	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// breadcrumbCache memoizes ancestor names while a single search result set
// is being assembled. Many hits share ancestors, so each one is fetched at
// most once per request.
type breadcrumbCache struct {
	companies   repositories.CompanyRepository
	departments repositories.DepartmentRepository
	folders     repositories.FolderRepository

	companyNames    map[int64]string
	departmentNames map[int64]string
	folderNames     map[int64]string
}

func newBreadcrumbCache(
	companies repositories.CompanyRepository,
	departments repositories.DepartmentRepository,
	folders repositories.FolderRepository,
) *breadcrumbCache {
	return &breadcrumbCache{
		companies:       companies,
		departments:     departments,
		folders:         folders,
		companyNames:    make(map[int64]string),
		departmentNames: make(map[int64]string),
		folderNames:     make(map[int64]string),
	}
}

func (b *breadcrumbCache) companyName(ctx context.Context, id int64) string {
	if name, ok := b.companyNames[id]; ok {
		return name
	}
	name := ""
	if c, err := b.companies.GetByID(ctx, id); err == nil {
		name = c.Name
	}
	b.companyNames[id] = name
	return name
}

func (b *breadcrumbCache) departmentName(ctx context.Context, id int64) string {
	if name, ok := b.departmentNames[id]; ok {
		return name
	}
	name := ""
	if d, err := b.departments.GetByID(ctx, id); err == nil {
		name = d.Name
	}
	b.departmentNames[id] = name
	return name
}

func (b *breadcrumbCache) folderName(ctx context.Context, id int64) string {
	if name, ok := b.folderNames[id]; ok {
		return name
	}
	name := ""
	if f, err := b.folders.GetByID(ctx, id); err == nil {
		name = f.Name
	}
	b.folderNames[id] = name
	return name
}

// join builds the human-readable breadcrumb, skipping unresolved segments.
func (b *breadcrumbCache) join(_ context.Context, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " → ")
}
