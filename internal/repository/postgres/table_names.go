package postgres

import "fmt"

// TableNames holds dynamically prefixed table names so dev, test and prod
// environments can share one database.
type TableNames struct {
	Users         string
	Groups        string
	GroupMembers  string
	Companies     string
	Departments   string
	Folders       string
	Documents     string
	DocumentTypes string
	ActivityLog   string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:         fmt.Sprintf("%susers", prefix),
		Groups:        fmt.Sprintf("%sgroups", prefix),
		GroupMembers:  fmt.Sprintf("%sgroup_members", prefix),
		Companies:     fmt.Sprintf("%scompanies", prefix),
		Departments:   fmt.Sprintf("%sdepartments", prefix),
		Folders:       fmt.Sprintf("%sfolders", prefix),
		Documents:     fmt.Sprintf("%sdocuments", prefix),
		DocumentTypes: fmt.Sprintf("%sdocument_types", prefix),
		ActivityLog:   fmt.Sprintf("%sactivity_log", prefix),
	}
}
