package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// fixtures is an in-memory stand-in for the relational store shared by the
// repository fakes. It mimics the SQL semantics the real repositories
// implement: status filters, allow-list filters, name sorting, ancestor
// checks.
type fixtures struct {
	companies   map[int64]models.Company
	departments map[int64]models.Department
	folders     map[int64]models.Folder
	documents   map[int64]models.Document

	// errOn forces a storage error from any fake whose name matches.
	errOn map[string]error

	// forceMoveConflict makes every Move report a lost version race.
	forceMoveConflict bool
}

func newFixtures() *fixtures {
	return &fixtures{
		companies:   make(map[int64]models.Company),
		departments: make(map[int64]models.Department),
		folders:     make(map[int64]models.Folder),
		documents:   make(map[int64]models.Document),
		errOn:       make(map[string]error),
	}
}

func (f *fixtures) addCompany(id int64, name string) {
	f.companies[id] = models.Company{ID: id, Name: name, Status: models.StatusActive}
}

func (f *fixtures) addInactiveCompany(id int64, name string) {
	f.companies[id] = models.Company{ID: id, Name: name, Status: models.StatusInactive}
}

func (f *fixtures) addDepartment(id, companyID int64, name string) {
	f.departments[id] = models.Department{ID: id, CompanyID: companyID, Name: name, Status: models.StatusActive}
}

func (f *fixtures) addFolder(id, companyID, departmentID int64, name string) {
	f.folders[id] = models.Folder{ID: id, CompanyID: companyID, DepartmentID: departmentID, Name: name, Status: models.StatusActive}
}

func (f *fixtures) addDocument(id, companyID int64, departmentID, folderID *int64, name string) {
	f.documents[id] = models.Document{
		ID: id, CompanyID: companyID, DepartmentID: departmentID, FolderID: folderID,
		Name: name, OriginalFilename: name + ".pdf", Status: models.StatusActive, Version: 1,
	}
}

func allowed(ids []int64, id int64) bool {
	if ids == nil {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func matches(term string, fields ...string) bool {
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// --- company repo ---

type fakeCompanyRepo struct{ fx *fixtures }

func (r *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*models.Company, error) {
	if err := r.fx.errOn["company"]; err != nil {
		return nil, err
	}
	c, ok := r.fx.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeCompanyRepo) ListActive(_ context.Context, allowedIDs []int64) ([]models.Company, error) {
	if err := r.fx.errOn["company"]; err != nil {
		return nil, err
	}
	var out []models.Company
	for _, c := range r.fx.companies {
		if c.Status == models.StatusActive && allowed(allowedIDs, c.ID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeCompanyRepo) Search(_ context.Context, term string, allowedIDs []int64) ([]models.Company, error) {
	if err := r.fx.errOn["company"]; err != nil {
		return nil, err
	}
	var out []models.Company
	for _, c := range r.fx.companies {
		if c.Status == models.StatusActive && allowed(allowedIDs, c.ID) && matches(term, c.Name, c.Description) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// --- department repo ---

type fakeDepartmentRepo struct{ fx *fixtures }

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := r.fx.departments[id]
	if !ok {
		return nil, fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (r *fakeDepartmentRepo) ListByCompany(_ context.Context, companyID int64, allowedIDs []int64) ([]models.Department, error) {
	var out []models.Department
	for _, d := range r.fx.departments {
		if d.CompanyID == companyID && d.Status == models.StatusActive && allowed(allowedIDs, d.ID) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeDepartmentRepo) Search(_ context.Context, term string, allowedCompanies, allowedDepartments []int64) ([]models.Department, error) {
	var out []models.Department
	for _, d := range r.fx.departments {
		company, ok := r.fx.companies[d.CompanyID]
		if !ok || company.Status != models.StatusActive {
			continue
		}
		if d.Status == models.StatusActive &&
			allowed(allowedCompanies, d.CompanyID) &&
			allowed(allowedDepartments, d.ID) &&
			matches(term, d.Name, d.Description) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// --- folder repo ---

type fakeFolderRepo struct{ fx *fixtures }

func (r *fakeFolderRepo) GetByID(_ context.Context, id int64) (*models.Folder, error) {
	f, ok := r.fx.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *fakeFolderRepo) ListTopLevel(_ context.Context, departmentID int64) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.fx.folders {
		if f.DepartmentID == departmentID && f.ParentID == nil && f.Status == models.StatusActive {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeFolderRepo) ListByDepartment(_ context.Context, departmentID int64) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.fx.folders {
		if f.DepartmentID == departmentID && f.Status == models.StatusActive {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeFolderRepo) Search(_ context.Context, term string, allowedCompanies, allowedDepartments []int64) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.fx.folders {
		company, ok := r.fx.companies[f.CompanyID]
		if !ok || company.Status != models.StatusActive {
			continue
		}
		department, ok := r.fx.departments[f.DepartmentID]
		if !ok || department.Status != models.StatusActive {
			continue
		}
		if f.Status == models.StatusActive &&
			allowed(allowedCompanies, f.CompanyID) &&
			allowed(allowedDepartments, f.DepartmentID) &&
			matches(term, f.Name, f.Description) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// --- document repo ---

type fakeDocumentRepo struct{ fx *fixtures }

func (r *fakeDocumentRepo) GetByID(_ context.Context, id int64) (*models.Document, error) {
	if err := r.fx.errOn["document"]; err != nil {
		return nil, err
	}
	d, ok := r.fx.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	if err := r.fx.errOn["document_create"]; err != nil {
		return err
	}
	doc.ID = int64(len(r.fx.documents) + 1)
	doc.Version = 1
	r.fx.documents[doc.ID] = *doc
	return nil
}

func docTypeAllowed(allowedTypes []int64, typeID *int64) bool {
	if allowedTypes == nil || typeID == nil {
		return true
	}
	return allowed(allowedTypes, *typeID)
}

func (r *fakeDocumentRepo) ListRootless(_ context.Context, departmentID int64, allowedTypes []int64) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.fx.documents {
		if d.DepartmentID != nil && *d.DepartmentID == departmentID && d.FolderID == nil &&
			d.Status == models.StatusActive && docTypeAllowed(allowedTypes, d.DocumentTypeID) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeDocumentRepo) ListByFolder(_ context.Context, folderID int64, allowedTypes []int64) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.fx.documents {
		if d.FolderID != nil && *d.FolderID == folderID &&
			d.Status == models.StatusActive && docTypeAllowed(allowedTypes, d.DocumentTypeID) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeDocumentRepo) Search(_ context.Context, term string, filter repositories.DocumentSearchFilter) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.fx.documents {
		company, ok := r.fx.companies[d.CompanyID]
		if !ok || company.Status != models.StatusActive {
			continue
		}
		if d.DepartmentID != nil {
			department, ok := r.fx.departments[*d.DepartmentID]
			if !ok || department.Status != models.StatusActive {
				continue
			}
		}
		if d.Status != models.StatusActive ||
			!allowed(filter.Companies, d.CompanyID) ||
			(d.DepartmentID != nil && !allowed(filter.Departments, *d.DepartmentID)) ||
			!docTypeAllowed(filter.DocumentTypes, d.DocumentTypeID) {
			continue
		}
		if matches(term, d.Name, d.Description, d.OriginalFilename) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *fakeDocumentRepo) Move(_ context.Context, id, folderID, departmentID, expectedVersion int64) (bool, error) {
	if err := r.fx.errOn["document_move"]; err != nil {
		return false, err
	}
	if r.fx.forceMoveConflict {
		return false, nil
	}
	d, ok := r.fx.documents[id]
	if !ok || d.Status != models.StatusActive || d.Version != expectedVersion {
		return false, nil
	}
	d.FolderID = &folderID
	d.DepartmentID = &departmentID
	d.Version++
	r.fx.documents[id] = d
	return true, nil
}

// --- activity repo ---

type fakeActivityRepo struct {
	entries []models.ActivityEntry
	err     error
}

func (r *fakeActivityRepo) Record(_ context.Context, entry *models.ActivityEntry) error {
	if r.err != nil {
		return r.err
	}
	entry.ID = int64(len(r.entries) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) RecordIfUnderLimit(_ context.Context, entry *models.ActivityEntry, limit int, from, to time.Time) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	count := 0
	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.Action == entry.Action &&
			!e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			count++
		}
	}
	if count >= limit {
		return false, nil
	}
	entry.ID = int64(len(r.entries) + 1)
	if entry.CreatedAt.IsZero() {
		// Pin the entry inside the window it was counted against.
		entry.CreatedAt = from
	}
	r.entries = append(r.entries, *entry)
	return true, nil
}

// --- transaction manager ---

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// --- blob store ---

type fakeBlobStore struct {
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (b *fakeBlobStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := b.objects[key]
	if !ok {
		return nil, fmt.Errorf("blob %q: %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *fakeBlobStore) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}

// --- usage limiter ---

type fakeUsageLimiter struct {
	allow   bool
	err     error
	actions []models.ActionType
}

func (u *fakeUsageLimiter) CheckAndRecord(_ context.Context, _ *models.PermissionContext, _ int64, action models.ActionType, _ int64) (bool, error) {
	if u.err != nil {
		return false, u.err
	}
	u.actions = append(u.actions, action)
	return u.allow, nil
}

// --- permission context helpers ---

func allCaps() models.CapabilitySet {
	caps := make(models.CapabilitySet)
	for _, c := range models.AllCapabilities {
		caps[c] = true
	}
	return caps
}

func openContext() *models.PermissionContext {
	return &models.PermissionContext{
		Capabilities:  allCaps(),
		Companies:     models.Unrestricted(),
		Departments:   models.Unrestricted(),
		DocumentTypes: models.Unrestricted(),
		DownloadLimit: models.UnlimitedQuota,
		UploadLimit:   models.UnlimitedQuota,
		HasGroups:     true,
	}
}

func id64(v int64) *int64 { return &v }
