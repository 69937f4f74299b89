package services

import (
	"context"

	"docvault/internal/domain/models"
)

// DepartmentOption is a dependent-list row for upload and creation forms.
type DepartmentOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FolderOption is a dependent-list row for upload and creation forms.
type FolderOption struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"folder_color"`
}

// DependentLookups serves the cascading form lists through the same
// restriction filters as navigation: a restricted parent yields an empty
// list, not an error.
type DependentLookups interface {
	DepartmentsForCompany(ctx context.Context, pctx *models.PermissionContext, companyID int64) ([]DepartmentOption, error)
	FoldersForDepartment(ctx context.Context, pctx *models.PermissionContext, departmentID int64) ([]FolderOption, error)
}
