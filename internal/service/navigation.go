package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
	"docvault/internal/vpath"
)

// Icons are fixed per item type; picking file-type specific icons is
// presentation work that lives outside the core.
const (
	iconCompany    = "building"
	iconDepartment = "sitemap"
	iconFolder     = "folder"
	iconDocument   = "file"
)

type navigationProvider struct {
	companies   repositories.CompanyRepository
	departments repositories.DepartmentRepository
	folders     repositories.FolderRepository
	documents   repositories.DocumentRepository
	logger      *slog.Logger
}

// NewNavigationProvider creates the navigation service.
func NewNavigationProvider(
	companies repositories.CompanyRepository,
	departments repositories.DepartmentRepository,
	folders repositories.FolderRepository,
	documents repositories.DocumentRepository,
	logger *slog.Logger,
) services.NavigationProvider {
	return &navigationProvider{
		companies:   companies,
		departments: departments,
		folders:     folders,
		documents:   documents,
		logger:      logger,
	}
}

// List returns the children visible at rawPath under the caller's permission
// context. Restricted or missing locations return an empty list, never an
// error, so restricted entities do not leak through error messages.
func (s *navigationProvider) List(ctx context.Context, pctx *models.PermissionContext, rawPath string) ([]models.Item, error) {
	if !pctx.Can(models.CapView) {
		return []models.Item{}, nil
	}

	loc := vpath.Decode(rawPath)

	switch {
	case loc.IsRoot():
		return s.listCompanies(ctx, pctx)
	case loc.DepartmentID == nil:
		return s.listDepartments(ctx, pctx, *loc.CompanyID)
	case loc.FolderID == nil:
		return s.listDepartmentContents(ctx, pctx, *loc.CompanyID, *loc.DepartmentID)
	default:
		return s.listFolderContents(ctx, pctx, loc)
	}
}

func (s *navigationProvider) listCompanies(ctx context.Context, pctx *models.PermissionContext) ([]models.Item, error) {
	if pctx.Companies.DenyAll {
		return []models.Item{}, nil
	}

	companies, err := s.companies.ListActive(ctx, pctx.Companies.AllowedIDs())
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	items := make([]models.Item, 0, len(companies))
	for i := range companies {
		items = append(items, companyItem(&companies[i]))
	}
	return items, nil
}

func (s *navigationProvider) listDepartments(ctx context.Context, pctx *models.PermissionContext, companyID int64) ([]models.Item, error) {
	if !pctx.Companies.Allows(companyID) || pctx.Departments.DenyAll {
		return []models.Item{}, nil
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if isNotFound(err) {
			return []models.Item{}, nil
		}
		return nil, fmt.Errorf("resolve company: %w", err)
	}
	if !company.Active() {
		return []models.Item{}, nil
	}

	departments, err := s.departments.ListByCompany(ctx, companyID, pctx.Departments.AllowedIDs())
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	items := make([]models.Item, 0, len(departments))
	for i := range departments {
		items = append(items, departmentItem(&departments[i]))
	}
	return items, nil
}

// listDepartmentContents returns the department's top-level folders and its
// documents outside any folder as a single name-sorted list.
func (s *navigationProvider) listDepartmentContents(ctx context.Context, pctx *models.PermissionContext, companyID, departmentID int64) ([]models.Item, error) {
	department, ok, err := s.visibleDepartment(ctx, pctx, companyID, departmentID)
	if err != nil || !ok {
		return []models.Item{}, err
	}

	folders, err := s.folders.ListTopLevel(ctx, department.ID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	documents, err := s.documents.ListRootless(ctx, department.ID, pctx.DocumentTypes.AllowedIDs())
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	items := make([]models.Item, 0, len(folders)+len(documents))
	for i := range folders {
		items = append(items, folderItem(&folders[i]))
	}
	for i := range documents {
		items = append(items, documentItem(&documents[i]))
	}
	sortByName(items)
	return items, nil
}

func (s *navigationProvider) listFolderContents(ctx context.Context, pctx *models.PermissionContext, loc vpath.Location) ([]models.Item, error) {
	if _, ok, err := s.visibleDepartment(ctx, pctx, *loc.CompanyID, *loc.DepartmentID); err != nil || !ok {
		return []models.Item{}, err
	}

	folder, err := s.folders.GetByID(ctx, *loc.FolderID)
	if err != nil {
		if isNotFound(err) {
			return []models.Item{}, nil
		}
		return nil, fmt.Errorf("resolve folder: %w", err)
	}
	// The folder must actually live where the path claims it does.
	if !folder.Active() || folder.CompanyID != *loc.CompanyID || folder.DepartmentID != *loc.DepartmentID {
		return []models.Item{}, nil
	}

	documents, err := s.documents.ListByFolder(ctx, folder.ID, pctx.DocumentTypes.AllowedIDs())
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	items := make([]models.Item, 0, len(documents))
	for i := range documents {
		items = append(items, documentItem(&documents[i]))
	}
	return items, nil
}

// visibleDepartment fetches a department and checks it against the path and
// the caller's restrictions. ok=false means "pretend it does not exist".
func (s *navigationProvider) visibleDepartment(ctx context.Context, pctx *models.PermissionContext, companyID, departmentID int64) (*models.Department, bool, error) {
	if !pctx.Companies.Allows(companyID) || !pctx.Departments.Allows(departmentID) || pctx.DocumentTypes.DenyAll {
		return nil, false, nil
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolve company: %w", err)
	}
	if !company.Active() {
		return nil, false, nil
	}

	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolve department: %w", err)
	}
	if !department.Active() || department.CompanyID != companyID {
		return nil, false, nil
	}

	return department, true, nil
}

func sortByName(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// itemOf assembles the fields every hierarchy entity shares through the
// ExplorerItem interface; the per-type helpers add paths, icons and counts.
func itemOf(e models.ExplorerItem, path, icon string) models.Item {
	return models.Item{
		Type:        e.ItemKind(),
		ID:          e.ItemID(),
		Name:        e.ItemName(),
		Description: e.ItemDescription(),
		Path:        path,
		Icon:        icon,
	}
}

func companyItem(c *models.Company) models.Item {
	item := itemOf(c, vpath.Encode(vpath.Location{CompanyID: &c.ID}), iconCompany)
	deptCount, docCount := c.DepartmentCount, c.DocumentCount
	item.DepartmentCount = &deptCount
	item.DocumentCount = &docCount
	return item
}

func departmentItem(d *models.Department) models.Item {
	item := itemOf(d, vpath.Encode(vpath.Location{CompanyID: &d.CompanyID, DepartmentID: &d.ID}), iconDepartment)
	folderCount, docCount := d.FolderCount, d.DocumentCount
	item.SubfolderCount = &folderCount
	item.DocumentCount = &docCount
	return item
}

func folderItem(f *models.Folder) models.Item {
	item := itemOf(f, vpath.Encode(vpath.Location{CompanyID: &f.CompanyID, DepartmentID: &f.DepartmentID, FolderID: &f.ID}), iconFolder)
	subCount, docCount := f.SubfolderCount, f.DocumentCount
	item.SubfolderCount = &subCount
	item.DocumentCount = &docCount
	return item
}

func documentItem(d *models.Document) models.Item {
	path := vpath.Encode(vpath.Location{
		CompanyID:    &d.CompanyID,
		DepartmentID: d.DepartmentID,
		FolderID:     d.FolderID,
		DocumentID:   &d.ID,
	})
	return itemOf(d, path, iconDocument)
}
