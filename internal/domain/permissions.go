package domain

// Permissions is the fixed capability set of a role. The mapping is a
// version-controlled constant: it never depends on user data.
type Permissions struct {
	CanViewCatalog     bool `json:"can_view_catalog"`
	CanSubmitAnswers   bool `json:"can_submit_answers"`
	CanCreateCourse    bool `json:"can_create_course"`
	CanEditCourse      bool `json:"can_edit_course"`
	CanCreateLab       bool `json:"can_create_lab"`
	CanGradeUploads    bool `json:"can_grade_uploads"`
	CanViewUnpublished bool `json:"can_view_unpublished"`
	CanApproveUsers    bool `json:"can_approve_users"`
	CanManageUsers     bool `json:"can_manage_users"`
	CanAssignCourse    bool `json:"can_assign_course"`
	CanViewReports     bool `json:"can_view_reports"`
}

var rolePermissions = map[Role]Permissions{
	RoleStudent: {
		CanViewCatalog:   true,
		CanSubmitAnswers: true,
	},
	RoleInstructor: {
		CanViewCatalog:     true,
		CanCreateCourse:    true,
		CanEditCourse:      true,
		CanCreateLab:       true,
		CanGradeUploads:    true,
		CanViewUnpublished: true,
		CanViewReports:     true,
	},
	RoleStaff: {
		CanViewCatalog:     true,
		CanViewUnpublished: true,
		CanApproveUsers:    true,
		CanManageUsers:     true,
		CanAssignCourse:    true,
		CanViewReports:     true,
	},
	RoleAdmin: {
		CanViewCatalog:     true,
		CanCreateCourse:    true,
		CanEditCourse:      true,
		CanCreateLab:       true,
		CanGradeUploads:    true,
		CanViewUnpublished: true,
		CanApproveUsers:    true,
		CanManageUsers:     true,
		CanAssignCourse:    true,
		CanViewReports:     true,
	},
}

// RolePermissions returns the capability set for a role. Unknown roles get
// the zero set.
func RolePermissions(role Role) Permissions {
	return rolePermissions[role]
}

// CanEditUserData applies the role hierarchy: admin may act on anyone,
// staff only on instructors and students, everyone else on no one.
func CanEditUserData(actor, target Role) bool {
	switch actor {
	case RoleAdmin:
		return true
	case RoleStaff:
		return target == RoleInstructor || target == RoleStudent
	default:
		return false
	}
}

// CanCreateUser follows the same hierarchy as CanEditUserData.
func CanCreateUser(actor, target Role) bool {
	return CanEditUserData(actor, target)
}
