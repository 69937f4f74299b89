package service

import (
	"context"
	"fmt"
	"log/slog"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type dependentLookups struct {
	companies   repositories.CompanyRepository
	departments repositories.DepartmentRepository
	folders     repositories.FolderRepository
	logger      *slog.Logger
}

// NewDependentLookups creates the cascading form-list service used by the
// upload and creation flows.
func NewDependentLookups(
	companies repositories.CompanyRepository,
	departments repositories.DepartmentRepository,
	folders repositories.FolderRepository,
	logger *slog.Logger,
) services.DependentLookups {
	return &dependentLookups{
		companies:   companies,
		departments: departments,
		folders:     folders,
		logger:      logger,
	}
}

// DepartmentsForCompany lists the company's active departments visible to
// the caller. A restricted or missing company yields an empty list.
func (s *dependentLookups) DepartmentsForCompany(ctx context.Context, pctx *models.PermissionContext, companyID int64) ([]services.DepartmentOption, error) {
	if !pctx.Companies.Allows(companyID) || pctx.Departments.DenyAll {
		return []services.DepartmentOption{}, nil
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if isNotFound(err) {
			return []services.DepartmentOption{}, nil
		}
		return nil, fmt.Errorf("resolve company: %w", err)
	}
	if !company.Active() {
		return []services.DepartmentOption{}, nil
	}

	departments, err := s.departments.ListByCompany(ctx, companyID, pctx.Departments.AllowedIDs())
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	options := make([]services.DepartmentOption, 0, len(departments))
	for _, d := range departments {
		options = append(options, services.DepartmentOption{ID: d.ID, Name: d.Name})
	}
	return options, nil
}

// FoldersForDepartment lists the department's active folders visible to the
// caller, with their colors for the picker.
func (s *dependentLookups) FoldersForDepartment(ctx context.Context, pctx *models.PermissionContext, departmentID int64) ([]services.FolderOption, error) {
	if !pctx.Departments.Allows(departmentID) {
		return []services.FolderOption{}, nil
	}

	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if isNotFound(err) {
			return []services.FolderOption{}, nil
		}
		return nil, fmt.Errorf("resolve department: %w", err)
	}
	if !department.Active() || !pctx.Companies.Allows(department.CompanyID) {
		return []services.FolderOption{}, nil
	}

	folders, err := s.folders.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	options := make([]services.FolderOption, 0, len(folders))
	for _, f := range folders {
		options = append(options, services.FolderOption{ID: f.ID, Name: f.Name, Color: f.Color})
	}
	return options, nil
}
